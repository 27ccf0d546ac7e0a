package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/dmedina-dev/consultorio-backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	healthHandler *handlers.HealthHandler,
	patientHandler *handlers.PatientHandler,
) {
	// Liveness endpoints live outside the versioned prefix.
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	patients := api.Group("/v1/patients")
	patients.Get("/", patientHandler.List)
	patients.Get("/search", patientHandler.Search)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Post("/", patientHandler.Create)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", patientHandler.Delete)
}
