package llm

import (
	"context"
	"encoding/json"
	"time"

	"halluclean/internal/cache"
)

// Cached wraps a Provider with a generation cache so identical stage
// calls are served without touching the endpoint. The key covers
// provider, model, temperature and the full prompt.
type Cached struct {
	next  Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCached creates a caching wrapper around a provider
func NewCached(next Provider, c cache.Cache, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the underlying provider name
func (c *Cached) Name() string {
	return c.next.Name()
}

// IsAvailable delegates to the underlying provider
func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.next.IsAvailable(ctx)
}

// Generate serves from cache when possible, storing fresh responses
func (c *Cached) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	key := cache.GenerationKey(c.next.Name(), req.Model, req.Temperature, req.Prompt)

	if data, found := c.cache.Get(key); found {
		var resp GenerateResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry: fall through to a fresh call
		_ = c.cache.Delete(key)
	}

	resp, err := c.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = c.cache.Set(key, data, c.ttl)
	}

	return resp, nil
}
