package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/plantlady/plantlady-api/internal/config"
	"github.com/plantlady/plantlady-api/internal/database"
	"github.com/plantlady/plantlady-api/internal/handlers"
	"github.com/plantlady/plantlady-api/internal/logging"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/routes"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/plantlady/plantlady-api/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Photo blob storage
	photoStore, err := storage.NewPhotoStore(cfg.PhotosDir)
	if err != nil {
		slog.Error("photo storage init failed", "dir", cfg.PhotosDir, "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	analyticsService := services.NewAnalyticsService(database.DB)
	plantService := services.NewPlantService(database.DB)
	eventService := services.NewEventService(database.DB)
	seasonService := services.NewSeasonService(database.DB)
	costService := services.NewCostService(database.DB)
	distributionService := services.NewDistributionService(database.DB)
	photoService := services.NewPhotoService(database.DB, photoStore)
	careService := services.NewCareService(database.DB)
	identifyService := services.NewIdentifyService(database.DB, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, analyticsService)
	healthHandler := handlers.NewHealthHandler()
	plantHandler := handlers.NewPlantHandler(plantService, eventService, photoService)
	eventHandler := handlers.NewEventHandler(eventService)
	seasonHandler := handlers.NewSeasonHandler(seasonService, analyticsService)
	costHandler := handlers.NewCostHandler(costService)
	distributionHandler := handlers.NewDistributionHandler(distributionService, analyticsService)
	photoHandler := handlers.NewPhotoHandler(photoService, photoStore)
	careHandler := handlers.NewCareHandler(careService, photoStore)
	identifyHandler := handlers.NewIdentifyHandler(identifyService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    16 * 1024 * 1024, // photo uploads
		ErrorHandler: customErrorHandler,
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
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg,
		authHandler, healthHandler, plantHandler, eventHandler,
		seasonHandler, costHandler, distributionHandler, photoHandler,
		careHandler, identifyHandler)

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

	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
