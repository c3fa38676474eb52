package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jpavezc/khipu_checkout/handlers"
)

func PaymentRoutes(app *fiber.App, paymentHandler *handlers.PaymentHandler, bankHandler *handlers.BankHandler) {
	api := app.Group("/api")

	api.Get("/banks", bankHandler.ListBanks)
	api.Post("/payments", paymentHandler.CreatePayment)
	api.Get("/payments/:id", paymentHandler.GetPayment)
}

func WebhookRoutes(app *fiber.App, webhookHandler *handlers.WebhookHandler) {
	app.Post("/webhooks/khipu", webhookHandler.HandleKhipuWebhook)
}
