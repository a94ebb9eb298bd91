package rest

import (
	"github.com/gofiber/fiber/v2"
)

// InitRestHealth exposes a liveness endpoint for load balancers. It reports
// process health only, not session state; /app/status covers the session.
func InitRestHealth(app fiber.Router) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
}
