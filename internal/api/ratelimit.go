package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// EndpointLimiter enforces a minimum interval between requests to the same
// endpoint. Calls inside the window are rejected immediately, not queued.
type EndpointLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	limit    rate.Limit
	burst    int
}

// NewEndpointLimiter creates a limiter with the given minimum inter-request
// interval per endpoint key.
func NewEndpointLimiter(minInterval time.Duration, burst int) *EndpointLimiter {
	if minInterval <= 0 {
		minInterval = 500 * time.Millisecond
	}
	if burst <= 0 {
		burst = 1
	}

	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(minInterval),
		burst:    burst,
	}
}

// Allow reports whether a request to the endpoint may proceed now.
func (l *EndpointLimiter) Allow(endpoint string) bool {
	return l.getLimiter(endpoint).Allow()
}

// getLimiter returns the rate limiter for an endpoint key.
func (l *EndpointLimiter) getLimiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[endpoint]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[endpoint]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.limit, l.burst)
	l.limiters[endpoint] = limiter
	return limiter
}
