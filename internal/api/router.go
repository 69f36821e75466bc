package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/jneverifica/firmas-system/internal/api/handler"
	"github.com/jneverifica/firmas-system/internal/api/middleware"
	"github.com/jneverifica/firmas-system/internal/core/domain"
	"github.com/jneverifica/firmas-system/internal/core/service"
	"github.com/jneverifica/firmas-system/internal/infrastructure/catalog"
	"github.com/jneverifica/firmas-system/internal/infrastructure/config"
	"github.com/jneverifica/firmas-system/internal/infrastructure/db/postgres"
	redisdb "github.com/jneverifica/firmas-system/internal/infrastructure/db/redis"
	"github.com/jneverifica/firmas-system/internal/infrastructure/export"
	"github.com/jneverifica/firmas-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("firmas"))

	// --- Dependencies ---
	accountRepo := postgres.NewAccountRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	catalogSource := catalog.NewLoader(cfg.CatalogPath)
	dedup := redisdb.NewDedupChecker(rdb)
	snapshotWriter := export.NewSnapshotWriter(cfg.ExportDir)

	accountService := service.NewAccountService(accountRepo, cfg.JWTSecret, 24*time.Hour, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, accountRepo, catalogSource, log)
	reviewService := service.NewReviewService(reviewRepo, assignmentService, dedup, log)
	reportService := service.NewReportService(reportRepo, snapshotWriter, cfg.TotalRecords, log)

	authHandler := handler.NewAuthHandler(accountService)
	userHandler := handler.NewUserHandler(accountService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	reportHandler := handler.NewReportHandler(reportService)

	auth := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Admin panel ---
	admin := e.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PATCH("/users/:id/active", userHandler.SetActive)
	admin.POST("/assignments/bulk", assignmentHandler.BulkAssign)
	admin.GET("/reports/workers", reportHandler.Workers)
	admin.POST("/reports/export", reportHandler.Export)

	// --- Analyst workspace ---
	screenings := e.Group("/screenings", auth, middleware.RBAC(domain.RoleAnalyst))
	screenings.GET("/pending", assignmentHandler.PendingScreenings)
	screenings.POST("", reviewHandler.SubmitScreenings)

	// --- Expert workspace ---
	verdicts := e.Group("/verdicts", auth, middleware.RBAC(domain.RoleExpert))
	verdicts.GET("/pending", assignmentHandler.PendingVerdicts)
	verdicts.POST("", reviewHandler.SubmitVerdicts)

	// --- Shared ---
	e.GET("/progress", reportHandler.Progress, auth)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)                // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness)     // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	if cfg.Env != "production" {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}
