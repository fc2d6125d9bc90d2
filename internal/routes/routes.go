package routes

import (
	"time"

	"github.com/plantlady/plantlady-api/internal/config"
	"github.com/plantlady/plantlady-api/internal/handlers"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plantHandler *handlers.PlantHandler,
	eventHandler *handlers.EventHandler,
	seasonHandler *handlers.SeasonHandler,
	costHandler *handlers.CostHandler,
	distributionHandler *handlers.DistributionHandler,
	photoHandler *handlers.PhotoHandler,
	careHandler *handlers.CareHandler,
	identifyHandler *handlers.IdentifyHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit on PIN attempts
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)

	// User picker is public; the login screen needs it
	api.Get("/users", authHandler.ListUsers)

	// Everything below requires a valid token
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/users/:id/stats", authHandler.UserStats)

	// Variety catalog
	protected.Post("/varieties", plantHandler.CreateVariety)
	protected.Get("/varieties", plantHandler.ListVarieties)
	protected.Get("/varieties/:id", plantHandler.GetVariety)
	protected.Put("/varieties/:id", plantHandler.UpdateVariety)
	protected.Delete("/varieties/:id", plantHandler.DeleteVariety)

	// Plant batches
	protected.Post("/batches", plantHandler.CreateBatch)
	protected.Get("/batches", plantHandler.ListBatches)
	protected.Get("/batches/:id", plantHandler.GetBatch)
	protected.Put("/batches/:id", plantHandler.UpdateBatch)
	protected.Delete("/batches/:id", plantHandler.DeleteBatch)
	protected.Get("/batches/:id/status", plantHandler.BatchStatus)
	protected.Get("/batches/:id/timeline", eventHandler.Timeline)
	protected.Get("/batches/:id/photos", photoHandler.Gallery)
	protected.Get("/batches/:id/distributions/summary", distributionHandler.BatchSummary)

	// Event log
	protected.Post("/events", eventHandler.Create)
	protected.Get("/events", eventHandler.List)
	protected.Get("/events/:id", eventHandler.Get)
	protected.Put("/events/:id", eventHandler.Update)
	protected.Delete("/events/:id", eventHandler.Delete)

	// Seasons
	protected.Post("/seasons", seasonHandler.Create)
	protected.Get("/seasons", seasonHandler.List)
	protected.Get("/seasons/year/:year", seasonHandler.GetByYear)
	protected.Get("/seasons/:id", seasonHandler.Get)
	protected.Put("/seasons/:id", seasonHandler.Update)
	protected.Delete("/seasons/:id", seasonHandler.Delete)
	protected.Get("/seasons/:id/costs/total", seasonHandler.CostTotal)

	// Season costs
	protected.Post("/costs", costHandler.Create)
	protected.Get("/costs", costHandler.List)
	protected.Get("/costs/:id", costHandler.Get)
	protected.Put("/costs/:id", costHandler.Update)
	protected.Delete("/costs/:id", costHandler.Delete)

	// Distributions
	protected.Post("/distributions", distributionHandler.Create)
	protected.Get("/distributions", distributionHandler.List)
	protected.Get("/distributions/:id", distributionHandler.Get)
	protected.Put("/distributions/:id", distributionHandler.Update)
	protected.Delete("/distributions/:id", distributionHandler.Delete)

	// Photos
	protected.Post("/photos", photoHandler.Upload)
	protected.Get("/photos", photoHandler.List)
	protected.Get("/photos/:id", photoHandler.Get)
	protected.Get("/photos/:id/file", photoHandler.File)
	protected.Put("/photos/:id", photoHandler.Update)
	protected.Delete("/photos/:id", photoHandler.Delete)

	// Houseplants and care
	protected.Post("/plants", careHandler.CreatePlant)
	protected.Get("/plants", careHandler.ListPlants)
	protected.Get("/plants/:id", careHandler.GetPlant)
	protected.Put("/plants/:id", careHandler.UpdatePlant)
	protected.Delete("/plants/:id", careHandler.DeletePlant)
	protected.Put("/plants/:id/schedules", careHandler.UpsertSchedule)
	protected.Get("/plants/:id/schedules", careHandler.ListSchedules)
	protected.Post("/plants/:id/care-events", careHandler.LogCareEvent)
	protected.Get("/plants/:id/care-events", careHandler.ListCareEvents)
	protected.Post("/plants/:id/care-events/:eventId/photo", careHandler.AttachCarePhoto)
	protected.Get("/plants/:id/care-status", careHandler.DueStatus)

	// Plant identification (vision)
	protected.Post("/identify", identifyHandler.Identify)
}
