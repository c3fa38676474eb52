package models

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusVerifying PaymentStatus = "verifying"
	StatusDone      PaymentStatus = "done"
	StatusError     PaymentStatus = "error"
	StatusCanceled  PaymentStatus = "canceled"
)

// Terminal reports whether no further status transitions are expected.
func (s PaymentStatus) Terminal() bool {
	return s == StatusDone || s == StatusError || s == StatusCanceled
}

// Payment mirrors the provider-side resource created per checkout attempt.
type Payment struct {
	PaymentID             string        `json:"payment_id"`
	PaymentURL            string        `json:"payment_url"`
	SimplifiedTransferURL string        `json:"simplified_transfer_url,omitempty"`
	Status                PaymentStatus `json:"status"`
	TransactionID         string        `json:"transaction_id"`
	Amount                float64       `json:"amount"`
	Currency              string        `json:"currency"`
	StatusDetail          string        `json:"status_detail,omitempty"`
}

// CreatePaymentBody is the payload for POST /v3/payments. Optional fields are
// omitted from the JSON so the provider never sees an empty notify_url or bank_id.
type CreatePaymentBody struct {
	Subject       string  `json:"subject"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency,omitempty"`
	TransactionID string  `json:"transaction_id"`
	ReturnURL     string  `json:"return_url,omitempty"`
	CancelURL     string  `json:"cancel_url,omitempty"`
	NotifyURL     string  `json:"notify_url,omitempty"`
	BankID        string  `json:"bank_id,omitempty"`
}
