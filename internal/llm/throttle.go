package llm

import (
	"context"

	"halluclean/internal/worker"
)

// Throttled wraps a Provider with per-model rate limiting, respecting
// the endpoint's throughput limits across concurrent workers
type Throttled struct {
	next    Provider
	limiter *worker.Limiter
}

// NewThrottled creates a rate-limited wrapper around a provider
func NewThrottled(next Provider, limiter *worker.Limiter) *Throttled {
	return &Throttled{
		next:    next,
		limiter: limiter,
	}
}

// Name returns the underlying provider name
func (t *Throttled) Name() string {
	return t.next.Name()
}

// IsAvailable delegates to the underlying provider
func (t *Throttled) IsAvailable(ctx context.Context) bool {
	return t.next.IsAvailable(ctx)
}

// Generate waits for rate limit clearance for the requested model, then
// delegates
func (t *Throttled) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := t.limiter.Wait(ctx, req.Model); err != nil {
		return nil, err
	}
	return t.next.Generate(ctx, req)
}
