package main

import (
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultMaxTokens bounds a single generation response
	DefaultMaxTokens = 2048
	// DefaultScanDepth bounds the working-directory snapshot
	DefaultScanDepth = 2
)

// Config holds the resolved runtime configuration. Settings from
// ~/.cmdgen/settings.json provide the base layer; environment variables
// override it; command-line flags override both.
type Config struct {
	Provider  ProviderType
	APIKey    string
	Region    string
	Model     string
	MaxTokens int
	ScanDepth int

	Debug        bool
	Quiet        bool
	NoCopy       bool
	History      bool
	HistoryLimit int

	Theme *Theme
}

// LoadConfig resolves the configuration from settings and environment
func LoadConfig() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		// Corrupt settings shouldn't block the tool; fall back to defaults
		settings = DefaultSettings()
	}

	cfg := &Config{
		Provider:     ParseProviderType(settings.Provider),
		Model:        settings.Model,
		MaxTokens:    DefaultMaxTokens,
		ScanDepth:    DefaultScanDepth,
		History:      settings.History.Enabled,
		HistoryLimit: settings.History.MaxRecords,
		Theme:        NewTheme(&settings.Theme),
	}

	if v := os.Getenv("CMDGEN_PROVIDER"); v != "" {
		cfg.Provider = ParseProviderType(v)
	}
	if v := os.Getenv("CMDGEN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CMDGEN_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("CMDGEN_SCAN_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ScanDepth = n
		}
	}
	if v := os.Getenv("CMDGEN_HISTORY"); v != "" {
		cfg.History = v != "0" && !strings.EqualFold(v, "false")
	}
	if v := os.Getenv("CMDGEN_THEME"); v != "" {
		cfg.Theme = NewTheme(&ThemeSettings{Name: v})
	}

	cfg.APIKey = apiKeyFor(cfg.Provider)
	cfg.Region = resolveRegion()

	if cfg.Model == "" {
		cfg.Model = defaultModelFor(cfg.Provider)
	}

	return cfg, nil
}

// apiKeyFor reads the API key environment variable for the given provider
func apiKeyFor(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderBedrock:
		return "" // Bedrock uses the AWS credential chain
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func defaultModelFor(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderBedrock:
		return DefaultBedrockModel
	default:
		return DefaultGeminiModel
	}
}

func resolveRegion() string {
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return "us-east-1"
}

// ProviderConfigFrom builds the provider factory input from a resolved Config
func ProviderConfigFrom(cfg *Config) *ProviderConfig {
	return &ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Region:   cfg.Region,
		Model:    cfg.Model,
	}
}
