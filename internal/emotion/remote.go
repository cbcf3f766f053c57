// Remote emotion classification client.
//
// Speaks a small JSON contract with an external inference service:
//
//	POST {baseURL}/v1/classify   {"text": "..."}
//	200  {"primary_emotion": "...", "confidence": 0.x,
//	      "all_emotions": {"label": 0.x, ...}, "intensity": n}
//
// Calls run through a circuit breaker so a flapping service stops being
// probed on every chat turn; an open breaker surfaces as an error and the
// caller's keyword fallback takes over.
package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ayurmitra/wellness-backend/internal/breaker"
)

// breakerName identifies this service in the breaker registry.
const breakerName = "emotion-classifier"

// HTTPRemote is a Remote backed by an HTTP inference endpoint.
type HTTPRemote struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewHTTPRemote constructs a remote classifier client. baseURL must be
// non-empty; breakers is required so the client participates in service
// health tracking.
func NewHTTPRemote(baseURL, apiKey string, timeout time.Duration, breakers *breaker.Registry) *HTTPRemote {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &HTTPRemote{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cb:         breakers.Get(breakerName),
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

// Classify calls the remote service through the circuit breaker.
func (r *HTTPRemote) Classify(ctx context.Context, text string) (Result, error) {
	out, err := r.cb.Execute(func() (any, error) {
		return r.classify(ctx, text)
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

func (r *HTTPRemote) classify(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/classify", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("emotion classifier http %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, err
	}
	if res.Primary == "" {
		return Result{}, fmt.Errorf("emotion classifier returned empty label")
	}
	return res, nil
}
