// Package llm is the sole point of contact with a language model. The
// pipeline depends only on the Provider interface; which endpoint sits
// behind it (hosted API or local model) is a construction-time choice.
package llm

import (
	"context"

	"halluclean/internal/model"
)

// Provider defines the interface for model endpoints
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces raw text for a prompt
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one model call
type GenerateRequest struct {
	// Model is the model identifier, opaque to the pipeline
	Model string

	// Prompt is the fully-formed stage prompt
	Prompt string

	// Temperature controls stochasticity. Judge-stage calls use 0 to
	// maximize parse reliability.
	Temperature float64

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the model's output
type GenerateResponse struct {
	// Text is the raw generated text, surrounding whitespace trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (OpenAI-compatible services, Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens default response cap
	MaxTokens int

	// Retry policy for transient failures
	MaxAttempts int
	BackoffMS   int

	// Rate limiting per model id
	RequestsPerSecond float64
	Burst             int
	PerModelRates     map[string]float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts the runtime configuration into a provider Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:          cfg.Provider.Name,
		APIKey:            cfg.Provider.APIKey,
		BaseURL:           cfg.Provider.BaseURL,
		Timeout:           cfg.Provider.Timeout,
		MaxTokens:         cfg.Provider.MaxTokens,
		MaxAttempts:       cfg.Retry.MaxAttempts,
		BackoffMS:         cfg.Retry.BackoffMS,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		PerModelRates:     cfg.RateLimit.PerModel,
		HTTPProxy:         cfg.Provider.HTTPProxy,
		HTTPSProxy:        cfg.Provider.HTTPSProxy,
	}
}
