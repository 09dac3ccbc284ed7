// Package advisor implements the advisory client that consults an
// external generative-text service about a shopping cart. Everything
// that crosses this boundary is untrusted: replies are schema-validated
// and any violation surfaces as an *AdvisoryError for the engine to
// recover from.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client defines the interface for generative-text providers.
type Client interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Config holds configuration for the advisory client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// DefaultTimeout bounds the single outbound advisory request.
const DefaultTimeout = 30 * time.Second

// newClient creates the provider client named by the config.
func newClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return newGeminiClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported advisory provider: %s", cfg.Provider)
	}
}
