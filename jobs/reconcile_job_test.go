package jobs

import (
	"context"
	"sync"
	"testing"

	"github.com/jpavezc/khipu_checkout/models"
	"github.com/jpavezc/khipu_checkout/payments"
	"github.com/jpavezc/khipu_checkout/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcileProvider struct {
	mu       sync.Mutex
	fetched  []string
	statuses map[string]models.PaymentStatus
}

func (p *reconcileProvider) ListBanks(ctx context.Context) ([]models.Bank, error) {
	return nil, nil
}

func (p *reconcileProvider) CreatePayment(ctx context.Context, body models.CreatePaymentBody) (*models.Payment, error) {
	return nil, payments.ErrUnavailable
}

func (p *reconcileProvider) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	p.mu.Lock()
	p.fetched = append(p.fetched, paymentID)
	p.mu.Unlock()

	status, ok := p.statuses[paymentID]
	if !ok {
		return nil, payments.ErrPaymentNotFound
	}
	return &models.Payment{PaymentID: paymentID, Status: status, TransactionID: "orden-" + paymentID}, nil
}

func TestReconcilePendingOrders(t *testing.T) {
	orders := store.NewOrderStore()
	orders.Set("orden-pay-1", models.Order{PaymentID: "pay-1", Status: models.StatusPending})
	orders.Set("orden-pay-2", models.Order{PaymentID: "pay-2", Status: models.StatusDone})
	orders.Set("orden-pay-3", models.Order{PaymentID: "pay-3", Status: models.StatusVerifying})
	orders.Set("orden-new", models.Order{})

	provider := &reconcileProvider{statuses: map[string]models.PaymentStatus{
		"pay-1": models.StatusDone,
		"pay-3": models.StatusVerifying,
	}}

	ReconcilePendingOrders(orders, provider)

	// Terminal and payment-less entries are never re-fetched.
	assert.ElementsMatch(t, []string{"pay-1", "pay-3"}, provider.fetched)

	order, ok := orders.Get("orden-pay-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, order.Status)

	order, _ = orders.Get("orden-pay-2")
	assert.Equal(t, models.StatusDone, order.Status)

	order, _ = orders.Get("orden-pay-3")
	assert.Equal(t, models.StatusVerifying, order.Status)
}

func TestReconcilePendingOrders_FetchErrorSkipsEntry(t *testing.T) {
	orders := store.NewOrderStore()
	orders.Set("orden-1", models.Order{PaymentID: "gone", Status: models.StatusPending})

	provider := &reconcileProvider{statuses: map[string]models.PaymentStatus{}}

	ReconcilePendingOrders(orders, provider)

	order, ok := orders.Get("orden-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, order.Status)
}
