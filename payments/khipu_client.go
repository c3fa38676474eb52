package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jpavezc/khipu_checkout/models"
)

const requestTimeout = 10 * time.Second

// KhipuClient is a thin wrapper over Khipu's v3 REST API. It does not retry;
// recovery decisions belong to the caller.
type KhipuClient struct {
	apiBase string
	apiKey  string
	http    *http.Client
}

func NewKhipuClient(apiBase, apiKey string) *KhipuClient {
	return &KhipuClient{
		apiBase: strings.TrimRight(apiBase, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *KhipuClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *KhipuClient) ListBanks(ctx context.Context) ([]models.Bank, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/banks", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Khipu banks API returned %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("%w: banks API returned status %d", ErrUnavailable, resp.StatusCode)
	}

	// Khipu wraps the list as {"banks":[...]}; DemoBank answers with a bare array.
	var wrapped struct {
		Banks []models.Bank `json:"banks"`
	}
	if err := json.Unmarshal(respBody, &wrapped); err == nil && wrapped.Banks != nil {
		return wrapped.Banks, nil
	}
	var banks []models.Bank
	if err := json.Unmarshal(respBody, &banks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal banks response: %v", err)
	}
	return banks, nil
}

func (c *KhipuClient) CreatePayment(ctx context.Context, body models.CreatePaymentBody) (*models.Payment, error) {
	if body.Currency == "" {
		body.Currency = "CLP"
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment payload: %v", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v3/payments", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RejectedError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var payment models.Payment
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %v", err)
	}
	return &payment, nil
}

func (c *KhipuClient) GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPaymentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Khipu payment API returned %d for %s: %s", resp.StatusCode, paymentID, string(respBody))
		return nil, fmt.Errorf("%w: payment API returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var payment models.Payment
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment response: %v", err)
	}
	return &payment, nil
}
