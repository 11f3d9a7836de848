package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/taller/backend/internal/application/catalog"
	financeapp "github.com/taller/backend/internal/application/finance"
	reportapp "github.com/taller/backend/internal/application/report"
	workshopapp "github.com/taller/backend/internal/application/workshop"
	"github.com/taller/backend/internal/domain/shared/localtime"
	"github.com/taller/backend/internal/infrastructure/config"
	"github.com/taller/backend/internal/infrastructure/logger"
	"github.com/taller/backend/internal/infrastructure/persistence"
	"github.com/taller/backend/internal/interfaces/http/handler"
	"github.com/taller/backend/internal/interfaces/http/middleware"
	"github.com/taller/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Taller Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// The normalizer fixes the workshop's local calendar. Every day
	// resolution in the application layer goes through this one instance.
	clock := localtime.NewNormalizer(cfg.Workshop.UTCOffsetHours)

	// Initialize repositories
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	closingRepo := persistence.NewGormDailyClosingRepository(db.DB)
	dashboardRepo := persistence.NewGormDashboardRepository(db.DB)

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(serviceRepo)
	workOrderService := workshopapp.NewWorkOrderService(workOrderRepo, serviceRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo, clock)
	closingService := financeapp.NewCashClosingService(closingRepo, expenseRepo, dashboardRepo, clock)
	dashboardService := reportapp.NewDashboardService(dashboardRepo, clock)

	// Seed the default catalog on an empty database
	if cfg.Workshop.SeedCatalog {
		if err := catalogService.Seed(context.Background()); err != nil {
			log.Fatal("Failed to seed service catalog", zap.Error(err))
		}
		log.Info("Service catalog ready")
	}

	// Initialize handlers
	serviceHandler := handler.NewServiceHandler(catalogService)
	workOrderHandler := handler.NewWorkOrderHandler(workOrderService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	closingHandler := handler.NewCashClosingHandler(closingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler()

	// Setup gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	// Configure CORS from config
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(serviceHandler).
		Register(workOrderHandler).
		Register(expenseHandler).
		Register(closingHandler).
		Register(dashboardHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
