package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/circuitbreaker"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/metrics"
)

// Client talks to the payment provider REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

// Intent provider payment intent
type Intent struct {
	Id           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"` // requires_payment_method, processing, succeeded, failed
	ClientSecret string `json:"client_secret"`
}

// Transfer provider payout to a team account
type Transfer struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"` // pending, paid, failed
}

type createIntentRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type createTransferRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Destination string            `json:"destination"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cb: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

// CreateIntent creates a payment intent for a milestone funding. The
// idempotency key makes retried calls safe.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string, metadata map[string]string) (*Intent, error) {
	var intent Intent
	err := c.do(ctx, http.MethodPost, "/v1/payment_intents", idempotencyKey, createIntentRequest{
		Amount:   amount,
		Currency: currency,
		Metadata: metadata,
	}, &intent)
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// GetIntent fetches the current provider state of an intent. Used by the
// reconciliation job when a webhook never arrived.
func (c *Client) GetIntent(ctx context.Context, intentId string) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+intentId, "", nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateTransfer pays out a released milestone to the team.
func (c *Client) CreateTransfer(ctx context.Context, amount int64, currency, destination, idempotencyKey string, metadata map[string]string) (*Transfer, error) {
	var transfer Transfer
	err := c.do(ctx, http.MethodPost, "/v1/transfers", idempotencyKey, createTransferRequest{
		Amount:      amount,
		Currency:    currency,
		Destination: destination,
		Metadata:    metadata,
	}, &transfer)
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (c *Client) do(ctx context.Context, method, path, idempotencyKey string, in, out any) error {
	return c.cb.Execute(func() error {
		start := time.Now()

		var body *bytes.Reader
		if in != nil {
			b, err := json.Marshal(in)
			if err != nil {
				return err
			}
			body = bytes.NewReader(b)
		} else {
			body = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.ProviderCallDuration.WithLabelValues(path, "error").Observe(time.Since(start).Seconds())
			return err
		}
		defer resp.Body.Close()

		metrics.ProviderCallDuration.WithLabelValues(path, resp.Status).Observe(time.Since(start).Seconds())

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var apiErr struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&apiErr)
			return fmt.Errorf("provider returned %d: %s", resp.StatusCode, apiErr.Error.Message)
		}

		return json.NewDecoder(resp.Body).Decode(out)
	})
}
