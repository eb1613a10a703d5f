package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/circuitbreaker"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/metrics"
)

// Client calls the LLM provider's chat completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
}

// Message one chat turn
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(cfg config.AIConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

// Complete runs one chat completion and returns the assistant text.
func (c *Client) Complete(ctx context.Context, operation string, messages []Message) (string, error) {
	var result string

	err := c.cb.Execute(func() error {
		start := time.Now()

		body, err := json.Marshal(completionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.7,
		})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.AICallDuration.WithLabelValues(operation, "error").Observe(time.Since(start).Seconds())
			return err
		}
		defer resp.Body.Close()

		metrics.AICallDuration.WithLabelValues(operation, resp.Status).Observe(time.Since(start).Seconds())

		var out completionResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			msg := "unknown error"
			if out.Error != nil {
				msg = out.Error.Message
			}
			return fmt.Errorf("llm provider returned %d: %s", resp.StatusCode, msg)
		}
		if len(out.Choices) == 0 {
			return errors.New("llm provider returned no choices")
		}

		result = out.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}
