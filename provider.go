package main

import (
	"context"
	"fmt"
	"strings"
)

// ProviderType represents the LLM provider
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderBedrock   ProviderType = "bedrock"
)

// GenerateResult holds the text and token usage from a generator call
type GenerateResult struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// LLMProvider is the abstract interface for generation backends.
// cmdgen sends a single fully-templated prompt per call and never retries.
type LLMProvider interface {
	// Generate sends a prompt and returns the raw response text
	Generate(ctx context.Context, model, prompt string, maxTokens int) (*GenerateResult, error)

	// Name returns the provider name for display
	Name() string

	// DefaultModel returns the provider's default model ID
	DefaultModel() string
}

// ProviderConfig holds configuration for initializing providers
type ProviderConfig struct {
	Provider ProviderType
	APIKey   string // For non-Bedrock providers
	Region   string // For Bedrock
	Model    string // Provider-specific model ID, empty for default
}

// NewProvider creates an LLM provider based on configuration
func NewProvider(ctx context.Context, cfg *ProviderConfig) (LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderBedrock:
		return NewBedrockProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// ParseProviderType converts a string to ProviderType
func ParseProviderType(s string) ProviderType {
	switch strings.ToLower(s) {
	case "openai", "gpt":
		return ProviderOpenAI
	case "anthropic", "claude":
		return ProviderAnthropic
	case "bedrock", "aws":
		return ProviderBedrock
	case "gemini", "google":
		return ProviderGemini
	default:
		return ProviderGemini // Gemini is the default backend
	}
}

// Default model IDs per provider
const (
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	DefaultBedrockModel   = "global.anthropic.claude-haiku-4-5-20251001-v1:0"
)
