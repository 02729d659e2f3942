package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  BackendConfig
	OpenAI     BackendConfig
	Gemini     BackendConfig
	OpenRouter BackendConfig

	Retry     RetryConfig
	RateLimit RateLimitConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// BackendConfig is the per-provider connection setting.
type BackendConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, OpenAI-compatible backends only
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// RateLimitConfig paces outgoing requests. Zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// DefaultConfig returns a Config with sensible defaults and no provider
// selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  BackendConfig{Model: "claude-haiku"},
		OpenAI:     BackendConfig{Model: "gpt-4o-mini"},
		Gemini:     BackendConfig{Model: "gemini-flash"},
		OpenRouter: BackendConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		RateLimit: RateLimitConfig{PerSecond: 1, Burst: 2},
		Timeout:   30 * time.Second,
	}
}

// backend returns the settings block for a provider name.
func (c *Config) backend(name string) *BackendConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// discoveryOrder is the order standard *_API_KEY variables are checked in.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// ConfigFromEnv builds a Config from PSYTESTS_* variables. When
// PSYTESTS_LLM_PROVIDER is unset the first provider with a standard API key
// in the environment (GEMINI_API_KEY, OPENAI_API_KEY, ...) is selected.
// The returned bool reports whether any provider was selected.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()

	for _, name := range discoveryOrder {
		b := cfg.backend(name)
		prefix := "PSYTESTS_" + strings.ToUpper(name) + "_"
		if k := os.Getenv(prefix + "API_KEY"); k != "" {
			b.APIKey = k
		}
		if m := os.Getenv(prefix + "MODEL"); m != "" {
			b.Model = m
		}
		if u := os.Getenv(prefix + "BASE_URL"); u != "" {
			b.BaseURL = u
		}
	}

	if v := os.Getenv("PSYTESTS_LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.PerSecond = f
		}
	}

	if p := os.Getenv("PSYTESTS_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
		return cfg, true
	}

	for _, name := range discoveryOrder {
		b := cfg.backend(name)
		if b.APIKey != "" {
			cfg.Provider = name
			return cfg, true
		}
		if k := os.Getenv(strings.ToUpper(name) + "_API_KEY"); k != "" {
			b.APIKey = k
			cfg.Provider = name
			return cfg, true
		}
	}
	return cfg, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case "":
		return ErrNotConfigured
	}
	b := (&c).backend(c.Provider)
	if b == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if b.APIKey == "" {
		return fmt.Errorf("PSYTESTS_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
