package enrich

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces secondary fetches per target host so enriching many
// cards from one site stays polite. Each host gets its own token bucket;
// fetches to distinct hosts never wait on each other.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// HostLimiterOption configures a HostLimiter.
type HostLimiterOption func(*HostLimiter)

// WithBurst allows up to n immediate fetches per host before the rate takes
// over. When several extracted cards share a host, a burst matching the
// worker pool keeps the workers from serializing on the first card's wait.
// Defaults to 1.
func WithBurst(n int) HostLimiterOption {
	return func(h *HostLimiter) {
		if n > 0 {
			h.burst = n
		}
	}
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host.
func NewHostLimiter(rps float64, opts ...HostLimiterOption) *HostLimiter {
	h := &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Wait blocks until the host's bucket has a token.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiterFor(host).Wait(ctx)
}

// limiterFor returns the host's bucket, creating it on first use.
func (h *HostLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(h.rps), h.burst)
		h.limiters[host] = l
	}
	return l
}
