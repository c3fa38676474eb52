package routes

import "github.com/gofiber/fiber/v2"

// PublicRoutes registers liveness plus the informational pages the hosted
// payment flow redirects back to.
func PublicRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/return", func(c *fiber.Ctx) error {
		return c.SendString("✅ Pago procesado, revisa tu backend para el estado final (webhook).")
	})

	app.Get("/cancel", func(c *fiber.Ctx) error {
		return c.SendString("❌ Pago cancelado por el usuario.")
	})
}
