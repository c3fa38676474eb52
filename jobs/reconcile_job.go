package jobs

import (
	"context"
	"log"

	"github.com/jpavezc/khipu_checkout/services"
	"github.com/jpavezc/khipu_checkout/store"
)

// ReconcilePendingOrders re-fetches every non-terminal order from the provider
// and records the fresh status. This is the deferred-retry path the webhook
// handler relies on when it swallows a failed confirmation fetch.
func ReconcilePendingOrders(orders *store.OrderStore, provider services.Provider) {
	log.Println("Running job: ReconcilePendingOrders...")

	for transactionID, order := range orders.Snapshot() {
		if order.PaymentID == "" || order.Status.Terminal() {
			continue
		}

		payment, err := provider.GetPaymentByID(context.Background(), order.PaymentID)
		if err != nil {
			log.Printf("Error reconciling order %s (payment %s): %v", transactionID, order.PaymentID, err)
			continue
		}

		if payment.Status != order.Status {
			orders.Merge(transactionID, payment.PaymentID, payment.Status)
			log.Printf("Reconciled order %s: %s -> %s", transactionID, order.Status, payment.Status)
		}
	}
}
