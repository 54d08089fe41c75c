// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/storefront-api/internal/config"
)

var (
	// ErrGatewayUnavailable signals that the payment gateway cannot be
	// used: credentials are missing or the gateway did not respond in
	// time. Callers fall back to the demo-order path.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrInvalidSignature signals a payment callback whose signature
	// does not match the HMAC computed from the shared secret.
	ErrInvalidSignature = errors.New("invalid payment signature")
)

// Intent is a provisional payment request registered with Razorpay.
// The client completes it in the browser using KeyID.
type Intent struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	KeyID    string `json:"key"`
}

// Client wraps all interaction with the Razorpay API.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Razorpay client from configuration. A client built
// without credentials is valid but reports Configured() == false and
// returns ErrGatewayUnavailable from CreateIntent.
func NewClient(cfg config.RazorpayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether gateway credentials are present.
func (c *Client) Configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

// CreateIntent registers a payment order with Razorpay and returns the
// details the client needs to open the checkout widget. No local state
// is created. Missing credentials or a gateway failure surface as
// ErrGatewayUnavailable.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (*Intent, error) {
	if !c.Configured() {
		return nil, ErrGatewayUnavailable
	}

	reqBody, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: gateway returned status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var gwOrder gatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&gwOrder); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &Intent{
		OrderID:  gwOrder.ID,
		Amount:   gwOrder.Amount,
		Currency: gwOrder.Currency,
		KeyID:    c.keyID,
	}, nil
}

// VerifySignature checks a payment-completion callback. Razorpay signs
// "<order_id>|<payment_id>" with the key secret using HMAC-SHA256; the
// comparison is constant-time. Purely local, no network calls.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if !c.Configured() {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// createOrderRequest is the payload for the Razorpay orders API.
type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// gatewayOrder is the subset of the Razorpay order entity we consume.
type gatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}
