package model

// Config is the complete runtime configuration. It is assembled once at
// startup (flags > env > config file > defaults) and read-only afterwards.
type Config struct {
	Provider    ProviderConfig    `yaml:"provider" mapstructure:"provider"`
	Models      ModelsConfig      `yaml:"models" mapstructure:"models"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Judgement   JudgementConfig   `yaml:"judgement" mapstructure:"judgement"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ProviderConfig configures the model endpoint
type ProviderConfig struct {
	Name       string `yaml:"name" mapstructure:"name"`             // openai, anthropic, ollama
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`       // from env, not the config file
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`     // custom endpoints (DeepSeek-compatible, Ollama)
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"`       // seconds, per model call
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"` // response length cap per stage call
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// ModelsConfig names the model per stage role. The core treats these as
// opaque strings passed through to the provider.
type ModelsConfig struct {
	Detect string `yaml:"detect" mapstructure:"detect"`
	Revise string `yaml:"revise" mapstructure:"revise"` // empty = same as Detect

	// DetectTemperature applies to plan and reason calls. The judge call
	// always runs at temperature 0 to maximize parse reliability.
	DetectTemperature float64 `yaml:"detect_temperature" mapstructure:"detect_temperature"`
	ReviseTemperature float64 `yaml:"revise_temperature" mapstructure:"revise_temperature"`
}

// ReviseModel returns the revise-stage model id, defaulting to the
// detect-stage model when unset.
func (m ModelsConfig) ReviseModel() string {
	if m.Revise != "" {
		return m.Revise
	}
	return m.Detect
}

// ConcurrencyConfig bounds parallelism across a batch
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitConfig throttles model calls per model id
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`

	// PerModel overrides the request rate for specific model ids, e.g.
	// a slower rate for a premium revise model
	PerModel map[string]float64 `yaml:"per_model,omitempty" mapstructure:"per_model"`
}

// RetryConfig bounds transient-failure retries
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffMS   int `yaml:"backoff_ms" mapstructure:"backoff_ms"` // initial delay, doubles per attempt
}

// CacheConfig controls the generation cache
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"` // disk layer location
	TTL     int    `yaml:"ttl" mapstructure:"ttl"` // seconds
}

// JudgementConfig controls the ambiguous-judgement policy
type JudgementConfig struct {
	// OnAmbiguous is "fail" (default) or "not-hallucinated". The latter
	// marks the record with an explicit warning field, never silently.
	OnAmbiguous string `yaml:"on_ambiguous" mapstructure:"on_ambiguous"`
}

// OutputConfig controls progress reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:      "openai",
			Timeout:   60,
			MaxTokens: 512,
		},
		Models: ModelsConfig{
			Detect:            "gpt-4o-mini",
			DetectTemperature: 0.3,
			ReviseTemperature: 0.3,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4, // conservative default for hosted endpoints
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2.0,
			Burst:             5,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BackoffMS:   500,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     86400,
		},
		Judgement: JudgementConfig{
			OnAmbiguous: "fail",
		},
	}
}
