package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jpavezc/khipu_checkout/services"
	"github.com/jpavezc/khipu_checkout/store"
)

type WebhookHandler struct {
	Provider services.Provider
	Orders   *store.OrderStore
}

type khipuNotification struct {
	PaymentID string `json:"payment_id"`
}

// HandleKhipuWebhook acknowledges every notification with a 200 so the
// provider never burns its retry budget on our failures. The notification
// payload is untrusted; the authoritative status is always re-fetched.
func (h *WebhookHandler) HandleKhipuWebhook(c *fiber.Ctx) error {
	deliveryID := uuid.NewString()

	var payload khipuNotification
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Webhook %s: cannot parse payload: %v", deliveryID, err)
		return c.SendString("ok")
	}
	if payload.PaymentID == "" {
		log.Printf("Webhook %s: notification without payment_id", deliveryID)
		return c.SendString("ok")
	}

	payment, err := h.Provider.GetPaymentByID(context.Background(), payload.PaymentID)
	if err != nil {
		// Reconciliation is deferred to the cron sweep; never bounce the provider.
		log.Printf("Webhook %s: could not confirm payment %s: %v", deliveryID, payload.PaymentID, err)
		return c.SendString("ack")
	}

	h.Orders.Merge(payment.TransactionID, payment.PaymentID, payment.Status)
	log.Printf("Webhook %s: order %s is now %s (payment %s)", deliveryID, payment.TransactionID, payment.Status, payment.PaymentID)

	return c.SendString("ok")
}
