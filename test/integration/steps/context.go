// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taxfolio/backend/internal/application/usecase/auth"
	"github.com/taxfolio/backend/internal/application/usecase/expense"
	"github.com/taxfolio/backend/internal/application/usecase/export"
	"github.com/taxfolio/backend/internal/application/usecase/income"
	"github.com/taxfolio/backend/internal/application/usecase/tax"
	"github.com/taxfolio/backend/internal/application/usecase/ucreport"
	"github.com/taxfolio/backend/internal/application/usecase/user"
	"github.com/taxfolio/backend/internal/infra/server/router"
	"github.com/taxfolio/backend/internal/integration/adapters"
	"github.com/taxfolio/backend/internal/integration/cache"
	"github.com/taxfolio/backend/internal/integration/email"
	"github.com/taxfolio/backend/internal/integration/entrypoint/controller"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
	"github.com/taxfolio/backend/internal/integration/persistence"
	"github.com/taxfolio/backend/internal/integration/persistence/model"
	"github.com/taxfolio/backend/test/integration/mock"
)

const (
	testJWTSecret  = "test-jwt-secret-key-for-testing-purposes"
	testAppBaseURL = "http://localhost:3000"
)

// testContext holds the per-scenario test state.
type testContext struct {
	uri     string
	headers map[string]string
	client  *http.Client

	response *response

	db    *mock.Db
	redis *redis.Client

	accessToken  string
	refreshToken string
	resetToken   string
	expiredToken string

	currentUserID uuid.UUID
	lastID        uuid.UUID
}

type response struct {
	status int
	body   any
}

// testRegistry mirrors the ruleset table the server runs with, so seeded
// records carry the same tax year labels and ruleset versions the API stamps.
var testRegistry = tax.DefaultRegistry()

var (
	serverInit     sync.Once
	testDB         *mock.Db
	testRedis      *redis.Client
	testServerPort int
	portInit       sync.Once
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		redis:  mock.NewRedis(),
		db: mock.NewDb("taxfolio", map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"incomes":               &model.IncomeModel{},
			"expenses":              &model.ExpenseModel{},
			"tax_snapshots":         &model.TaxSnapshotModel{},
			"uc_reports":            &model.UCReportModel{},
			"email_queue":           &model.EmailQueueModel{},
		}),
	}

	testDB = test.db
	testRedis = test.redis

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)
	ctx.Given(`^the user has a trading start date of "([^"]*)"$`, test.theUserHasATradingStartDateOf)
	ctx.Given(`^Universal Credit is enabled with assessment day (\d+)$`, test.universalCreditIsEnabledWithAssessmentDay)
	ctx.Given(`^a password reset token exists for "([^"]*)"$`, test.aPasswordResetTokenExistsFor)
	ctx.Given(`^an expired password reset token exists$`, test.anExpiredPasswordResetTokenExists)

	// Record setup steps
	ctx.Given(`^an income of "([^"]*)" on "([^"]*)" exists$`, test.anIncomeExists)
	ctx.Given(`^an expense of "([^"]*)" in category "([^"]*)" on "([^"]*)" exists$`, test.anExpenseExists)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.expiredToken = ""
	t.currentUserID = uuid.Nil
	t.lastID = uuid.Nil
	t.response = nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if t.redis != nil {
		_ = mock.ClearRedis(t.redis)
	}
}

// startServer wires the full application stack against the in-memory
// database and starts it once for the whole suite. Emails stop at the
// queue table; no worker runs.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			incomeRepo := persistence.NewIncomeRepository(testDB.DbConn)
			expenseRepo := persistence.NewExpenseRepository(testDB.DbConn)
			snapshotRepo := persistence.NewSnapshotRepository(testDB.DbConn)
			ucReportRepo := persistence.NewUCReportRepository(testDB.DbConn)
			emailQueueRepo := persistence.NewEmailQueueRepository(testDB.DbConn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
			emailService := email.NewService(emailQueueRepo, testAppBaseURL)
			summaryCache := cache.NewSummaryCache(testRedis, time.Minute)

			registry := tax.DefaultRegistry()

			// Create auth use cases
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
			forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, testAppBaseURL)
			resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)
			deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

			// Create income and expense use cases
			createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo, registry, summaryCache)
			listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
			updateIncomeUseCase := income.NewUpdateIncomeUseCase(incomeRepo, registry, summaryCache)
			deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo, summaryCache)

			createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, summaryCache)
			listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
			updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, summaryCache)
			deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, summaryCache)

			// Create tax use cases
			getSummaryUseCase := tax.NewGetSummaryUseCase(incomeRepo, expenseRepo, userRepo, registry, summaryCache)
			listYearsUseCase := tax.NewListYearsUseCase(registry)
			createSnapshotUseCase := tax.NewCreateSnapshotUseCase(incomeRepo, expenseRepo, snapshotRepo, registry)
			listSnapshotsUseCase := tax.NewListSnapshotsUseCase(snapshotRepo)

			// Create Universal Credit use cases
			currentPeriodUseCase := ucreport.NewGetCurrentPeriodUseCase(incomeRepo, expenseRepo, userRepo, ucReportRepo)
			generateReportUseCase := ucreport.NewGenerateReportUseCase(incomeRepo, expenseRepo, userRepo, ucReportRepo)
			listReportsUseCase := ucreport.NewListReportsUseCase(ucReportRepo)
			markReportedUseCase := ucreport.NewMarkReportedUseCase(ucReportRepo)

			// Create user and export use cases
			getProfileUseCase := user.NewGetProfileUseCase(userRepo)
			updateSettingsUseCase := user.NewUpdateSettingsUseCase(userRepo)
			exportUseCase := export.NewExportTransactionsUseCase(incomeRepo, expenseRepo)

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
				forgotPasswordUseCase,
				resetPasswordUseCase,
			)

			userController := controller.NewUserController(
				getProfileUseCase,
				updateSettingsUseCase,
				deleteAccountUseCase,
			)

			incomeController := controller.NewIncomeController(
				createIncomeUseCase,
				listIncomesUseCase,
				updateIncomeUseCase,
				deleteIncomeUseCase,
			)

			expenseController := controller.NewExpenseController(
				createExpenseUseCase,
				listExpensesUseCase,
				updateExpenseUseCase,
				deleteExpenseUseCase,
			)

			taxController := controller.NewTaxController(
				getSummaryUseCase,
				listYearsUseCase,
				createSnapshotUseCase,
				listSnapshotsUseCase,
			)

			ucController := controller.NewUCController(
				currentPeriodUseCase,
				generateReportUseCase,
				listReportsUseCase,
				markReportedUseCase,
			)

			exportController := controller.NewExportController(exportUseCase)

			// Create middleware. Rate limits are relaxed so scenarios never
			// trip the login limiter.
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				userController,
				incomeController,
				expenseController,
				taxController,
				ucController,
				exportController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
