package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jpavezc/khipu_checkout/services"
)

type BankHandler struct {
	Provider services.Provider
}

// ListBanks proxies the provider's bank list. Banks are reference data and are
// fetched fresh on every request, never cached here.
func (h *BankHandler) ListBanks(c *fiber.Ctx) error {
	banks, err := h.Provider.ListBanks(context.Background())
	if err != nil {
		log.Printf("List banks failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "banks_failed"})
	}

	return c.JSON(banks)
}
