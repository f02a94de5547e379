package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/ledgerly/bookkeeping-api/internal/api/handler"
	"github.com/ledgerly/bookkeeping-api/internal/api/middleware"
	"github.com/ledgerly/bookkeeping-api/internal/core/service"
	"github.com/ledgerly/bookkeeping-api/internal/infrastructure/config"
	mongostore "github.com/ledgerly/bookkeeping-api/internal/infrastructure/db/mongo"
	redisstore "github.com/ledgerly/bookkeeping-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongodriver.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	accountRepo := mongostore.NewAccountRepository(db)
	transactionRepo := mongostore.NewTransactionRepository(db)
	budgetRepo := mongostore.NewBudgetRepository(db)
	goalRepo := mongostore.NewGoalRepository(db)
	auditRepo := mongostore.NewAuditRepository(db)

	exportStorage, err := mongostore.NewExportStorage(db, cfg.ExportBucket)
	if err != nil {
		return nil, err
	}
	summaryCache := redisstore.NewSummaryCache(rdb, cfg.SummaryCacheTTL)

	// --- Services ---
	userService := service.NewUserService(userRepo, log)
	accountService := service.NewAccountService(accountRepo, auditRepo, log)
	transactionService := service.NewTransactionService(transactionRepo, log)
	budgetService := service.NewBudgetService(budgetRepo, log)
	goalService := service.NewGoalService(goalRepo, log)
	analyticsService := service.NewAnalyticsService(transactionRepo, budgetRepo, goalRepo, summaryCache, log)
	exportService := service.NewExportService(transactionRepo, exportStorage, log)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(accountService, cfg.DefaultPageSize)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	goalHandler := handler.NewGoalHandler(goalService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	exportHandler := handler.NewExportHandler(exportService)

	// --- Authenticated API routes ---
	auth := middleware.Auth(cfg.JWTSecret)
	api := e.Group("", auth)

	api.POST("/users", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	api.POST("/accounts", accountHandler.Create)
	api.GET("/accounts", accountHandler.List)
	api.GET("/accounts/:id", accountHandler.Get)
	api.PUT("/accounts/:id", accountHandler.Update)
	api.DELETE("/accounts/:id", accountHandler.Delete)

	api.POST("/transactions", transactionHandler.Create)
	api.GET("/transactions", transactionHandler.List)
	api.GET("/transactions/:id", transactionHandler.Get)
	api.PUT("/transactions/:id", transactionHandler.Update)
	api.DELETE("/transactions/:id", transactionHandler.Delete)

	api.POST("/budgets", budgetHandler.Create)
	api.GET("/budgets", budgetHandler.List)
	api.GET("/budgets/:id", budgetHandler.Get)
	api.PUT("/budgets/:id", budgetHandler.Update)
	api.DELETE("/budgets/:id", budgetHandler.Delete)

	api.POST("/goals", goalHandler.Create)
	api.GET("/goals", goalHandler.List)
	api.GET("/goals/:id", goalHandler.Get)
	api.PUT("/goals/:id", goalHandler.Update)
	api.DELETE("/goals/:id", goalHandler.Delete)

	api.GET("/analytics/summary", analyticsHandler.Summary)
	api.GET("/export", exportHandler.Export)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e, nil
}
