// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/taxfolio/backend/internal/integration/entrypoint/controller"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	userController    *controller.UserController
	incomeController  *controller.IncomeController
	expenseController *controller.ExpenseController
	taxController     *controller.TaxController
	ucController      *controller.UCController
	exportController  *controller.ExportController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	incomeController *controller.IncomeController,
	expenseController *controller.ExpenseController,
	taxController *controller.TaxController,
	ucController *controller.UCController,
	exportController *controller.ExportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		userController:    userController,
		incomeController:  incomeController,
		expenseController: expenseController,
		taxController:     taxController,
		ucController:      ucController,
		exportController:  exportController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// Income routes (require authentication)
		if r.incomeController != nil && r.authMiddleware != nil {
			incomes := v1.Group("/incomes")
			incomes.Use(r.authMiddleware.Authenticate())
			{
				incomes.GET("", r.incomeController.List)
				incomes.POST("", r.incomeController.Create)
				incomes.PUT("/:id", r.incomeController.Update)
				incomes.DELETE("/:id", r.incomeController.Delete)
			}
		}

		// Expense routes (require authentication)
		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.GET("", r.expenseController.List)
				expenses.POST("", r.expenseController.Create)
				expenses.PUT("/:id", r.expenseController.Update)
				expenses.DELETE("/:id", r.expenseController.Delete)
			}
		}

		// Tax summary and snapshot routes (require authentication)
		if r.taxController != nil && r.authMiddleware != nil {
			tax := v1.Group("/tax")
			tax.Use(r.authMiddleware.Authenticate())
			{
				tax.GET("/summary", r.taxController.GetSummary)
				tax.GET("/years", r.taxController.ListYears)
				tax.GET("/snapshots", r.taxController.ListSnapshots)
				tax.POST("/snapshots", r.taxController.CreateSnapshot)
			}
		}

		// Universal Credit routes (require authentication)
		if r.ucController != nil && r.authMiddleware != nil {
			uc := v1.Group("/uc")
			uc.Use(r.authMiddleware.Authenticate())
			{
				uc.GET("/current-period", r.ucController.GetCurrentPeriod)
				uc.GET("/reports", r.ucController.ListReports)
				uc.POST("/reports", r.ucController.GenerateReport)
				uc.POST("/reports/:id/reported", r.ucController.MarkReported)
			}
		}

		// Export routes (require authentication)
		if r.exportController != nil && r.authMiddleware != nil {
			export := v1.Group("/export")
			export.Use(r.authMiddleware.Authenticate())
			{
				export.GET("/transactions", r.exportController.ExportTransactions)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdateSettings)
				users.DELETE("/me", r.userController.DeleteAccount)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
