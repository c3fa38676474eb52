package services

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/jpavezc/khipu_checkout/models"
	"github.com/jpavezc/khipu_checkout/payments"
)

// RecoveryPolicy inspects a failed payment creation and, when the failure is
// recoverable, returns a modified payload to retry exactly once with. A nil
// result means the error stands.
type RecoveryPolicy func(err error, payload models.CreatePaymentBody) *models.CreatePaymentBody

var bankRejectionRegex = regexp.MustCompile(`(?i)bank_id|bank|unknown|invalid`)

// RetryWithoutBank handles providers that reject unrecognized bank identifiers:
// a 400 whose body mentions the bank field gets one retry with bank_id dropped.
// Failures unrelated to the bank field are never masked.
func RetryWithoutBank(err error, payload models.CreatePaymentBody) *models.CreatePaymentBody {
	if payload.BankID == "" {
		return nil
	}
	var rejected *payments.RejectedError
	if !errors.As(err, &rejected) || rejected.StatusCode != http.StatusBadRequest {
		return nil
	}
	if !bankRejectionRegex.MatchString(rejected.Body) {
		return nil
	}

	retry := payload
	retry.BankID = ""
	return &retry
}
