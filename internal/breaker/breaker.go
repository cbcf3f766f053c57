// Package breaker provides per-downstream-service circuit breakers built on
// sony/gobreaker. Each remote dependency (language model, emotion
// classifier) gets its own named breaker with explicit closed/open/half-open
// state, held in a scoped registry that is injected where needed rather than
// living in package-level mutable state.
package breaker

import (
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Settings tunes breaker behavior for all services in a registry.
type Settings struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counters reset.
	Interval time.Duration
	// Timeout before an open breaker transitions to half-open.
	Timeout time.Duration
	// ConsecutiveFailures that trip the breaker open.
	ConsecutiveFailures uint32
	// OnStateChange is invoked on every transition (optional).
	OnStateChange func(name string, from, to gobreaker.State)
}

// DefaultSettings are conservative values suited to the pipeline's remote
// calls: trip after 5 consecutive failures, probe again after 30 seconds.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// Registry holds one circuit breaker per named downstream service.
// It is safe for concurrent use.
type Registry struct {
	settings Settings

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewRegistry constructs a Registry applying the given settings to every
// breaker it creates.
func NewRegistry(s Settings) *Registry {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = DefaultSettings().ConsecutiveFailures
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultSettings().Timeout
	}
	return &Registry{
		settings: s,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Get returns the breaker for a service name, creating it on first use.
func (r *Registry) Get(name string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[name]; ok {
		return cb
	}
	s := r.settings
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if s.OnStateChange != nil {
				s.OnStateChange(name, from, to)
			}
		},
	})
	r.breakers[name] = cb
	return cb
}
