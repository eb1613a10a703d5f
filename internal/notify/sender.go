package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/circuitbreaker"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
)

// EmailSender delivers mail through the provider's HTTP API.
type EmailSender struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	return &EmailSender{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		from:    cfg.FromAddress,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cb: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send delivers one email. Errors are retryable; the queue redelivers.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.cb.Execute(func() error {
		payload, err := json.Marshal(sendRequest{
			From:    s.from,
			To:      to,
			Subject: subject,
			HTML:    body,
		})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/send", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.apiKey)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return fmt.Errorf("email provider returned %d", resp.StatusCode)
		}
		return nil
	})
}
