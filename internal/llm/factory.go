package llm

import (
	"fmt"
	"strings"
	"time"

	"halluclean/internal/cache"
	"halluclean/internal/worker"
)

// NewProvider creates a bare provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// Build assembles the full provider stack: base adapter wrapped with
// retry, then rate limiting, then an optional generation cache. The
// result is what the pipeline calls for every stage.
func Build(config Config, generationCache cache.Cache, cacheTTL time.Duration) (Provider, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	var p Provider = NewRetrier(provider, config.MaxAttempts, time.Duration(config.BackoffMS)*time.Millisecond)
	p = NewThrottled(p, newLimiter(config))

	if generationCache != nil {
		p = NewCached(p, generationCache, cacheTTL)
	}

	return p, nil
}

// newLimiter builds the per-model limiter, applying any configured
// per-model rate overrides over the default rate
func newLimiter(config Config) *worker.Limiter {
	limiter := worker.NewLimiter(config.RequestsPerSecond, config.Burst)
	for modelID, rps := range config.PerModelRates {
		limiter.SetKeyRate(modelID, rps, config.Burst)
	}
	return limiter
}
