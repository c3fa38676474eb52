package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jpavezc/khipu_checkout/models"
	"github.com/jpavezc/khipu_checkout/payments"
	"github.com/jpavezc/khipu_checkout/services"
)

var validate = validator.New()

type PaymentHandler struct {
	Service  *services.PaymentService
	Provider services.Provider
}

type createPaymentRequest struct {
	Subject       string  `json:"subject"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency"`
	TransactionID string  `json:"transaction_id" validate:"required"`
	ReturnURL     string  `json:"return_url"`
	CancelURL     string  `json:"cancel_url"`
	NotifyURL     string  `json:"notify_url"`
	BankID        string  `json:"bank_id"`
}

func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount_and_transaction_id_required"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount_and_transaction_id_required"})
	}

	// The store write must survive a caller disconnect, so the provider call
	// is not tied to the request context; the client carries its own timeout.
	result, err := h.Service.CreateOrGetPayment(context.Background(), models.CreatePaymentBody{
		Subject:       req.Subject,
		Amount:        req.Amount,
		Currency:      req.Currency,
		TransactionID: req.TransactionID,
		ReturnURL:     req.ReturnURL,
		CancelURL:     req.CancelURL,
		NotifyURL:     req.NotifyURL,
		BankID:        req.BankID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount_and_transaction_id_required"})
		case errors.Is(err, services.ErrAmountLimit):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "demo_amount_limit_5000"})
		default:
			log.Printf("🔥 Create payment failed for order %s: %v", req.TransactionID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":   "create_payment_failed",
				"details": providerDetails(err),
			})
		}
	}

	return c.JSON(result)
}

func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.Provider.GetPaymentByID(context.Background(), c.Params("id"))
	if err != nil {
		log.Printf("Get payment %s failed: %v", c.Params("id"), err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "payment_not_found"})
	}

	return c.JSON(payment)
}

// providerDetails keeps the provider's raw error body in the 502 response for
// diagnostics.
func providerDetails(err error) string {
	var rejected *payments.RejectedError
	if errors.As(err, &rejected) {
		return rejected.Body
	}
	return err.Error()
}
