package llm

import (
	"context"
	"fmt"
	"time"
)

// Retrier wraps a Provider with bounded retries for transient failures.
// Permanent failures propagate immediately; the delay doubles per
// attempt starting from BaseDelay.
type Retrier struct {
	next        Provider
	maxAttempts int
	baseDelay   time.Duration
}

// NewRetrier creates a retrying wrapper around a provider
func NewRetrier(next Provider, maxAttempts int, baseDelay time.Duration) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &Retrier{
		next:        next,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Name returns the underlying provider name
func (r *Retrier) Name() string {
	return r.next.Name()
}

// IsAvailable delegates to the underlying provider
func (r *Retrier) IsAvailable(ctx context.Context) bool {
	return r.next.IsAvailable(ctx)
}

// Generate calls the underlying provider, retrying transient failures
// with exponential backoff until the attempt bound is exhausted
func (r *Retrier) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		resp, err := r.next.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !IsTransient(err) {
			return nil, err
		}
		if attempt == r.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", r.maxAttempts, lastErr)
}
