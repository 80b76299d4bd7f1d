package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/database"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/logging"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/routes"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/services"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	level := logging.ParseLevel(cfg.LogLevel)
	logging.Setup(level)

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewStdoutHandler(level),
		pgLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)

	// Services
	var serviceOpts []services.Option
	if cfg.PhotoBucket != "" {
		photoStore, err := storage.NewS3PhotoStore(context.Background(), cfg.PhotoBucket, cfg.PhotoPublicBaseURL)
		if err != nil {
			slog.Error("photo store init failed", "bucket", cfg.PhotoBucket, "error", err)
			os.Exit(1)
		}
		serviceOpts = append(serviceOpts, services.WithPhotoStore(photoStore))
		slog.Info("photo offload enabled", "bucket", cfg.PhotoBucket)
	}
	reportService := services.NewReportService(db, cfg, serviceOpts...)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	reportHandler := handlers.NewReportHandler(reportService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitBytes,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${locals:requestid} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, healthHandler, reportHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
