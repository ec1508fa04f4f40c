package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/finflowhq/finflow-api/handlers"
	"github.com/finflowhq/finflow-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupUserRoutes sets up protected user profile and 2FA routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
}

// SetupTransactionRoutes sets up protected transaction routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	txHandler := &handlers.TransactionHandler{DB: db, WS: ws}

	rg.GET("/transactions", txHandler.GetTransactions)
	rg.POST("/transactions", txHandler.CreateTransaction)
	rg.PUT("/transactions/:id", txHandler.UpdateTransaction)
	rg.DELETE("/transactions/:id", txHandler.DeleteTransaction)
	rg.DELETE("/transactions", txHandler.BulkDeleteTransactions)
}

// SetupCategoryRoutes sets up protected category routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	categoryHandler := &handlers.CategoryHandler{DB: db, WS: ws}

	rg.GET("/categories", categoryHandler.GetCategories)
	rg.POST("/categories", categoryHandler.CreateCategory)
	rg.PUT("/categories/:id", categoryHandler.UpdateCategory)
	rg.DELETE("/categories/:id", categoryHandler.DeleteCategory)
}

// SetupBudgetRoutes sets up protected budget routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	budgetService := services.NewBudgetService(db)
	h := handlers.NewBudgetHandler(budgetService, ws)

	rg.GET("/budgets", h.GetBudgets)
	rg.POST("/budgets", h.CreateBudget)
	rg.PUT("/budgets/:id", h.UpdateBudget)
	rg.DELETE("/budgets/:id", h.DeleteBudget)
	rg.GET("/budgets/spent", h.GetSpentAmount)
}

// SetupInvestmentRoutes sets up protected investment routes.
func SetupInvestmentRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	investmentService := services.NewInvestmentService(db)
	h := handlers.NewInvestmentHandler(investmentService, ws)

	rg.GET("/investments", h.GetInvestments)
	rg.GET("/investments/summary", h.GetSummary)
	rg.PUT("/investments/update-state", h.UpdateState)
}

// SetupStatsRoutes sets up protected statistics routes.
func SetupStatsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	statsService := services.NewStatsService(db)
	h := handlers.NewStatsHandler(statsService)

	rg.GET("/stats/overview", h.GetOverview)
	rg.GET("/stats/history", h.GetHistory)
}

// SetupUserSettingsRoutes sets up protected user settings routes.
func SetupUserSettingsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	settingsHandler := &handlers.UserSettingsHandler{DB: db}

	rg.GET("/user-settings", settingsHandler.GetSettings)
	rg.PUT("/user-settings", settingsHandler.UpdateSettings)
}
