package models

// Order is the merchant-side record keyed by transaction_id, tracking the last
// known payment outcome. Lives only as long as the process does.
type Order struct {
	PaymentID string        `json:"paymentId,omitempty"`
	Status    PaymentStatus `json:"status,omitempty"`
}
