// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/taxfolio/backend/config"
	"github.com/taxfolio/backend/internal/application/adapter"
	"github.com/taxfolio/backend/internal/application/usecase/auth"
	"github.com/taxfolio/backend/internal/application/usecase/expense"
	"github.com/taxfolio/backend/internal/application/usecase/export"
	"github.com/taxfolio/backend/internal/application/usecase/income"
	"github.com/taxfolio/backend/internal/application/usecase/reminder"
	"github.com/taxfolio/backend/internal/application/usecase/tax"
	"github.com/taxfolio/backend/internal/application/usecase/ucreport"
	"github.com/taxfolio/backend/internal/application/usecase/user"
	"github.com/taxfolio/backend/internal/infra/server/router"
	"github.com/taxfolio/backend/internal/integration/adapters"
	"github.com/taxfolio/backend/internal/integration/cache"
	"github.com/taxfolio/backend/internal/integration/email"
	"github.com/taxfolio/backend/internal/integration/email/templates"
	"github.com/taxfolio/backend/internal/integration/entrypoint/controller"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
	"github.com/taxfolio/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// EmailWorker processes the outgoing email queue; started by the caller.
	EmailWorker *email.Worker
	// DeadlineReminders is the daily registration deadline sweep; scheduled
	// by the caller.
	DeadlineReminders *reminder.SendDeadlineRemindersUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case summaries are recomputed on every
// request.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	incomeRepo := persistence.NewIncomeRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	snapshotRepo := persistence.NewSnapshotRepository(db)
	ucReportRepo := persistence.NewUCReportRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	var summaryCache adapter.SummaryCache
	if redisClient != nil {
		summaryCache = cache.NewSummaryCache(redisClient, cfg.Redis.SummaryTTL)
	}

	// The ruleset registry is shared by every tax-aware use case.
	registry := tax.DefaultRegistry()

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Create income use cases
	createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo, registry, summaryCache)
	listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
	updateIncomeUseCase := income.NewUpdateIncomeUseCase(incomeRepo, registry, summaryCache)
	deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo, summaryCache)

	// Create expense use cases
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

	// Create email worker and reminder sweep
	renderer, err := templates.NewRenderer()
	var emailWorker *email.Worker
	if err != nil {
		slog.Warn("Email templates failed to load, worker disabled", "error", err)
	} else if cfg.Email.ResendAPIKey != "" {
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		emailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}
	deadlineReminders := reminder.NewSendDeadlineRemindersUseCase(userRepo, emailService)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
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

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
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

	return &Injector{
		Config:            cfg,
		DB:                db,
		Router:            r,
		EmailWorker:       emailWorker,
		DeadlineReminders: deadlineReminders,
	}
}
