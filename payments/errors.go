package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures and unexpected provider responses.
	ErrUnavailable = errors.New("khipu unavailable")

	ErrPaymentNotFound = errors.New("payment not found")
)

// RejectedError is returned when the provider answers a create with a non-2xx
// status. Callers inspect StatusCode and Body to decide whether to retry.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("khipu rejected payment: status %d: %s", e.StatusCode, e.Body)
}
