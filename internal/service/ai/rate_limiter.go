package ai

import (
	"context"

	"golang.org/x/time/rate"

	"alpine/translate/internal/logger"
)

// DefaultRateLimit is the default QPS limit.
const DefaultRateLimit = 10

// RateLimiter caps the rate of outbound model calls across all requests.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new rate limiter with the given QPS; the burst
// equals the QPS.
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		logger.Warn("ai rate limit wait failed", "module", "ai", "action", "wait", "resource", "ai", "result", "failed", "error", err)
		return err
	}
	return nil
}

// Limit returns the configured QPS.
func (r *RateLimiter) Limit() int {
	return int(r.limiter.Limit())
}
