// Ledgerlens API server.
//
// @title Ledgerlens API
// @version 1.0
// @description Ledger classification and cash-flow forecasting for small-business bank ledgers.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"ledgerlens/internal/config"
	"ledgerlens/internal/database"
	_ "ledgerlens/internal/docs"
	"ledgerlens/internal/handlers"
	"ledgerlens/internal/logger"
	"ledgerlens/internal/middleware"
	"ledgerlens/internal/services"
	"ledgerlens/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(envName())
	defer logger.Sync()
	log := logger.Get()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}

	validator.Register()

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	importService := services.NewImportService(db, categoryService, auditService)
	payrollService := services.NewPayrollService(db, categoryService, userService, auditService)
	employeeService := services.NewEmployeeService(db)
	forecastService := services.NewForecastService(transactionService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	importHandler := handlers.NewImportHandler(importService)
	payrollHandler := handlers.NewPayrollHandler(payrollService, employeeService)
	forecastHandler := handlers.NewForecastHandler(forecastService)
	auditHandler := handlers.NewAuditHandler(auditService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())

	r.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		protected := v1.Group("", middleware.AuthMiddleware())
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/auth/me", authHandler.Me)

			protected.GET("/categories", categoryHandler.List)
			protected.POST("/categories", categoryHandler.Create)
			protected.GET("/categories/:id", categoryHandler.Get)
			protected.PUT("/categories/:id", categoryHandler.Update)
			protected.DELETE("/categories/:id", categoryHandler.Delete)

			protected.GET("/transactions", transactionHandler.List)
			protected.GET("/transactions/uncategorized", transactionHandler.ListUncategorized)
			protected.GET("/transactions/:id", transactionHandler.Get)
			protected.DELETE("/transactions/:id", transactionHandler.Delete)

			protected.POST("/imports/ledger", importHandler.ImportLedger)
			protected.POST("/imports/report", importHandler.ImportReport)
			protected.GET("/imports/runs", importHandler.ListRuns)
			protected.GET("/imports/runs/:id", importHandler.GetRun)

			protected.POST("/payroll/sync", payrollHandler.Sync)
			protected.GET("/payroll/logs", payrollHandler.ListLogs)

			protected.GET("/employees", payrollHandler.ListEmployees)
			protected.GET("/employees/:id", payrollHandler.GetEmployee)
			protected.PUT("/employees/:id", payrollHandler.UpdateEmployee)
			protected.DELETE("/employees/:id", payrollHandler.DeleteEmployee)

			protected.GET("/forecast", forecastHandler.Get)

			protected.GET("/audit", auditHandler.List)
		}
	}

	log.Infow("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func envName() string {
	if gin.Mode() == gin.ReleaseMode {
		return "production"
	}
	return "development"
}
