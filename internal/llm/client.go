// Package llm talks to an OpenAI-compatible chat-completions endpoint to
// draft the assistant reply, and carries the deterministic fallback used
// when that endpoint is down, slow, or tripped. Reply generation as a whole
// never fails; callers always get text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ayurmitra/wellness-backend/internal/breaker"
)

// DefaultTimeout bounds one completion round trip.
const DefaultTimeout = 30 * time.Second

const breakerName = "llm-completions"

// ErrEmptyCompletion reports an upstream 200 with no usable text.
var ErrEmptyCompletion = errors.New("llm: empty upstream completion")

// Message is one turn of the completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles accepted by the completions API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is a minimal OpenAI-compatible chat-completions client. A nil
// Client (or one with an empty BaseURL) is a valid "LLM disabled" state;
// Complete then reports an error and the caller falls back.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	HTTPClient *http.Client
	Breakers   *breaker.Registry
}

// NewClient wires a client for the given endpoint. An empty baseURL yields
// a disabled client.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, reg *breaker.Registry) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIKey:     strings.TrimSpace(apiKey),
		Model:      model,
		Timeout:    timeout,
		HTTPClient: &http.Client{Transport: tr},
		Breakers:   reg,
	}
}

// Enabled reports whether a completion endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != ""
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content,omitempty"`
		} `json:"message,omitempty"`
		Text string `json:"text,omitempty"`
	} `json:"choices"`
}

// Complete sends the conversation and returns the first non-empty choice.
// Calls route through a circuit breaker so a flapping upstream is skipped
// fast instead of eating the full timeout every turn.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.Enabled() {
		return "", errors.New("llm: no endpoint configured")
	}
	if len(messages) == 0 {
		return "", errors.New("llm: no messages")
	}

	do := func() (string, error) { return c.complete(ctx, messages) }
	if c.Breakers != nil {
		cb := c.Breakers.Get(breakerName)
		out, err := cb.Execute(func() (any, error) { return do() })
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return "", fmt.Errorf("llm: circuit open: %w", err)
			}
			return "", err
		}
		return out.(string), nil
	}
	return do()
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := json.Marshal(completionRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   512,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm: upstream status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	for _, choice := range parsed.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
		if text := strings.TrimSpace(choice.Text); text != "" {
			return text, nil
		}
	}
	return "", ErrEmptyCompletion
}
