package insight

import "time"

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single Explain call.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for commentary generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
		Timeout:     45 * time.Second,
	}
}
