package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jpavezc/khipu_checkout/models"
	"github.com/jpavezc/khipu_checkout/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithoutBank(t *testing.T) {
	payload := models.CreatePaymentBody{
		Amount:        1000,
		TransactionID: "orden-1",
		BankID:        "demobank",
	}

	t.Run("recovers bank rejection", func(t *testing.T) {
		err := &payments.RejectedError{StatusCode: http.StatusBadRequest, Body: `{"message":"invalid bank_id: demobank"}`}

		retry := RetryWithoutBank(err, payload)

		require.NotNil(t, retry)
		assert.Empty(t, retry.BankID)
		assert.Equal(t, payload.TransactionID, retry.TransactionID)
		assert.Equal(t, payload.Amount, retry.Amount)
	})

	t.Run("case insensitive match", func(t *testing.T) {
		err := &payments.RejectedError{StatusCode: http.StatusBadRequest, Body: "UNKNOWN BANK"}
		assert.NotNil(t, RetryWithoutBank(err, payload))
	})

	t.Run("declines without bank_id", func(t *testing.T) {
		err := &payments.RejectedError{StatusCode: http.StatusBadRequest, Body: "invalid bank_id"}
		noBank := payload
		noBank.BankID = ""
		assert.Nil(t, RetryWithoutBank(err, noBank))
	})

	t.Run("declines non-400 rejections", func(t *testing.T) {
		err := &payments.RejectedError{StatusCode: http.StatusUnprocessableEntity, Body: "invalid bank_id"}
		assert.Nil(t, RetryWithoutBank(err, payload))
	})

	t.Run("declines unrelated 400s", func(t *testing.T) {
		err := &payments.RejectedError{StatusCode: http.StatusBadRequest, Body: "amount too small"}
		assert.Nil(t, RetryWithoutBank(err, payload))
	})

	t.Run("declines transport errors", func(t *testing.T) {
		assert.Nil(t, RetryWithoutBank(errors.New("connection refused"), payload))
	})
}
