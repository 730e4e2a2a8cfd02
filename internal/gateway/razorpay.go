// Package gateway is the Razorpay integration: hosted-checkout session
// creation plus verification of the two signature schemes Razorpay uses (one
// for client-relayed confirmations, one for webhooks).
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

// Client talks to Razorpay. It is constructed once in main and injected into
// the handlers; no package-level state.
type Client struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

// CheckoutSession is what the storefront needs to open the hosted checkout.
type CheckoutSession struct {
	Type     string `json:"type"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type Option func(*Client)

// WithBaseURL points the client somewhere else, for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout overrides the outbound call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient builds a Razorpay client. The webhook secret is a separate
// credential from the key secret; the two verification paths must never share
// one.
func NewClient(keyID, keySecret, webhookSecret string, opts ...Option) *Client {
	c := &Client{
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		baseURL:       defaultBaseURL,
		// A stuck gateway call must not hold a checkout request open forever.
		// On timeout the outcome is unknown: the order stays unpaid and the
		// webhook remains the source of truth.
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder opens a hosted-checkout session for the given amount in paise.
// The receipt carries our internal order id, which doubles as the idempotency
// correlator: the webhook hands it back so the confirmation can find the
// order.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*CheckoutSession, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway order creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway order creation failed: status %d: %s", resp.StatusCode, raw)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &CheckoutSession{
		Type:     "razorpay",
		OrderID:  out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Key:      c.keyID,
	}, nil
}

// VerifyPaymentSignature checks a client-relayed confirmation: HMAC-SHA256
// over "<gateway order id>|<gateway payment id>" keyed by the key secret.
// This is the forgery defense; without it any client could claim a payment
// succeeded.
func (c *Client) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks a webhook delivery: HMAC-SHA256 over the exact
// raw request bytes keyed by the webhook secret. The body must not have been
// parsed or rewritten before it gets here.
func (c *Client) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// KeyID is exposed so the checkout response can hand the public key to the
// frontend.
func (c *Client) KeyID() string { return c.keyID }
