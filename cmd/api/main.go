package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"splitledger/internal/config"
	"splitledger/internal/database"
	"splitledger/internal/handlers"
	"splitledger/internal/logger"
	"splitledger/internal/middleware"
	"splitledger/internal/services"
	"splitledger/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	expenseService := services.NewExpenseService(db)
	budgetService := services.NewBudgetService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)

	// Register custom request validators
	validator.Register()

	// Initialize Gin router
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and directory
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)
	protected.GET("/users", authHandler.ListUsers)

	// Personal transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.GET("/categories", transactionHandler.Categories)

	// Group expense routes
	expenses := protected.Group("/group-expenses")
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.POST("/shares/:id/settle", expenseHandler.SettleShare)
	expenses.GET("/balance", expenseHandler.GetBalance)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.Upsert)
	budgets.GET("", budgetHandler.Get)

	log.Infof("Starting splitledger backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
