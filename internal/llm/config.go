package llm

import (
	"os"
	"strconv"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all generation provider configuration.
type Config struct {
	// Provider selects the backend: openai, anthropic, gemini, openrouter or mock.
	Provider string

	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// MaxTokens is the default response cap for requests that leave
	// Request.MaxTokens unset. Agent documents are long, so this is generous.
	MaxTokens int

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible gateways
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults: OpenAI gpt-4o-mini, three attempts.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOpenAI,
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens: 4096,
		Timeout:   2 * time.Minute,
	}
}

// ConfigFromEnv builds a Config from TEACHTEAM_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "TEACHTEAM_LLM_PROVIDER")

	setString(&cfg.OpenAI.APIKey, "TEACHTEAM_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "TEACHTEAM_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "TEACHTEAM_OPENAI_BASE_URL")

	setString(&cfg.Anthropic.APIKey, "TEACHTEAM_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "TEACHTEAM_ANTHROPIC_MODEL")

	setString(&cfg.Gemini.APIKey, "TEACHTEAM_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "TEACHTEAM_GEMINI_MODEL")

	setString(&cfg.OpenRouter.APIKey, "TEACHTEAM_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "TEACHTEAM_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "TEACHTEAM_OPENROUTER_BASE_URL")

	if v := os.Getenv("TEACHTEAM_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("TEACHTEAM_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard API key variables
// (OpenAI, Anthropic, Gemini, OpenRouter) and returns a Config for the first
// key found. It returns (Config{}, false) if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the TEACHTEAM_* configuration when it is complete,
// otherwise a discovered one, otherwise the (invalid) TEACHTEAM_* one so
// that Validate reports what is missing.
func ResolveConfig() Config {
	cfg := ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg
	}
	if os.Getenv("TEACHTEAM_LLM_PROVIDER") == "" {
		if discovered, ok := DiscoverConfig(); ok {
			discovered.MaxTokens = cfg.MaxTokens
			discovered.Timeout = cfg.Timeout
			return discovered
		}
	}
	return cfg
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "TEACHTEAM_OPENAI_API_KEY"}
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "TEACHTEAM_ANTHROPIC_API_KEY"}
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "TEACHTEAM_GEMINI_API_KEY"}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: "TEACHTEAM_OPENROUTER_API_KEY"}
		}
	case ProviderMock:
	default:
		return &ErrUnknownProvider{Name: c.Provider}
	}
	return nil
}
