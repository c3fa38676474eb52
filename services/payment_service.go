package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/jpavezc/khipu_checkout/models"
	"github.com/jpavezc/khipu_checkout/store"
)

// Provider is the capability the orchestrator needs from the payment provider.
type Provider interface {
	ListBanks(ctx context.Context) ([]models.Bank, error)
	CreatePayment(ctx context.Context, body models.CreatePaymentBody) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
}

var (
	ErrInvalidRequest = errors.New("amount and transaction_id are required")
	ErrAmountLimit    = errors.New("amount exceeds the demo limit of 5000 CLP")
)

const demoAmountLimit = 5000

var (
	httpBaseRegex = regexp.MustCompile(`^https?://`)
	loopbackRegex = regexp.MustCompile(`localhost|127(?:\.\d+){3}|\.local(?::|$)`)
)

type CreatePaymentResult struct {
	PaymentID  string               `json:"paymentId"`
	PaymentURL string               `json:"paymentUrl"`
	Status     models.PaymentStatus `json:"status"`
}

// PaymentService validates checkout requests, creates payments idempotently
// and keeps the order store up to date.
type PaymentService struct {
	provider   Provider
	orders     *store.OrderStore
	publicBase string
	recovery   RecoveryPolicy
}

func NewPaymentService(provider Provider, orders *store.OrderStore, publicBaseURL string) *PaymentService {
	return &PaymentService{
		provider:   provider,
		orders:     orders,
		publicBase: publicBaseURL,
		recovery:   RetryWithoutBank,
	}
}

// CreateOrGetPayment creates at most one provider payment per transaction_id.
// A repeated call for an order that already holds a paymentId re-fetches that
// payment instead of creating a second one.
func (s *PaymentService) CreateOrGetPayment(ctx context.Context, req models.CreatePaymentBody) (*CreatePaymentResult, error) {
	if req.Amount <= 0 || req.TransactionID == "" {
		return nil, ErrInvalidRequest
	}
	if req.Amount > demoAmountLimit {
		return nil, ErrAmountLimit
	}

	// Serializes check-then-create per transaction_id; without it two
	// concurrent submissions of a new order would both reach CreatePayment.
	unlock := s.orders.LockKey(req.TransactionID)
	defer unlock()

	if existing, ok := s.orders.Get(req.TransactionID); ok && existing.PaymentID != "" {
		payment, err := s.provider.GetPaymentByID(ctx, existing.PaymentID)
		if err != nil {
			return nil, err
		}
		return &CreatePaymentResult{
			PaymentID:  payment.PaymentID,
			PaymentURL: payment.PaymentURL,
			Status:     payment.Status,
		}, nil
	}

	payload := s.buildPayload(req)

	payment, err := s.provider.CreatePayment(ctx, payload)
	if err != nil {
		retry := s.recovery(err, payload)
		if retry == nil {
			return nil, err
		}
		log.Printf("Khipu rejected bank_id %q for order %s, retrying without it", payload.BankID, req.TransactionID)
		payment, err = s.provider.CreatePayment(ctx, *retry)
		if err != nil {
			return nil, err
		}
	}

	s.orders.Set(req.TransactionID, models.Order{PaymentID: payment.PaymentID, Status: payment.Status})

	return &CreatePaymentResult{
		PaymentID:  payment.PaymentID,
		PaymentURL: payment.PaymentURL,
		Status:     payment.Status,
	}, nil
}

func (s *PaymentService) buildPayload(req models.CreatePaymentBody) models.CreatePaymentBody {
	payload := req

	if payload.Subject == "" {
		payload.Subject = fmt.Sprintf("Orden %s", req.TransactionID)
	}
	if payload.Currency == "" {
		payload.Currency = "CLP"
	}
	if payload.ReturnURL == "" {
		payload.ReturnURL = s.publicBase + "/return"
	}
	if payload.CancelURL == "" {
		payload.CancelURL = s.publicBase + "/cancel"
	}
	// Only hand the provider a notify_url it can actually reach: the public
	// base must be an http(s) URL and not a loopback or .local address.
	if payload.NotifyURL == "" && httpBaseRegex.MatchString(s.publicBase) && !loopbackRegex.MatchString(s.publicBase) {
		payload.NotifyURL = s.publicBase + "/webhooks/khipu"
	}

	return payload
}
