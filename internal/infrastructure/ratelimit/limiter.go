// Package ratelimit throttles calls to the remote flight service.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config holds the token bucket settings of one endpoint.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultConfig returns a conservative limit for the lookup endpoints.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         5,
	}
}

// EndpointLimiter keeps one limiter per endpoint name.
type EndpointLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

// NewEndpointLimiter creates a limiter set using cfg for every endpoint.
// A non-positive rate disables limiting.
func NewEndpointLimiter(cfg Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// Limiter returns the limiter of endpoint, creating it on first use.
func (l *EndpointLimiter) Limiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[endpoint]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists = l.limiters[endpoint]; exists {
		return limiter
	}

	limiter = newLimiter(l.defaults.RequestsPerSecond, l.defaults.BurstSize)
	l.limiters[endpoint] = limiter
	return limiter
}

// SetLimit overrides the limit of one endpoint.
func (l *EndpointLimiter) SetLimit(endpoint string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[endpoint] = newLimiter(rps, burst)
}

// Wait blocks until endpoint may be called or ctx is done.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	return l.Limiter(endpoint).Wait(ctx)
}

func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
