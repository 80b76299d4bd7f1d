package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/config"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/dto"
	"github.com/ahmetcoskunkizilkaya/curbwatch/internal/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	reportHandler *handlers.ReportHandler,
) {
	api := app.Group("/api")

	// Health (not rate limited)
	api.Get("/health", healthHandler.Check)

	// Per-IP sliding window on submissions
	submitLimiter := limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMin,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Too many requests",
			})
		},
	})

	api.Post("/reports", submitLimiter, reportHandler.CreateReport)
}
