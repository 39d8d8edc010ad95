package llm

import (
	"errors"
	"testing"
	"time"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TEACHTEAM_LLM_PROVIDER",
		"TEACHTEAM_OPENAI_API_KEY", "TEACHTEAM_OPENAI_MODEL", "TEACHTEAM_OPENAI_BASE_URL",
		"TEACHTEAM_ANTHROPIC_API_KEY", "TEACHTEAM_ANTHROPIC_MODEL",
		"TEACHTEAM_GEMINI_API_KEY", "TEACHTEAM_GEMINI_MODEL",
		"TEACHTEAM_OPENROUTER_API_KEY", "TEACHTEAM_OPENROUTER_MODEL", "TEACHTEAM_OPENROUTER_BASE_URL",
		"TEACHTEAM_LLM_MAX_TOKENS", "TEACHTEAM_LLM_TIMEOUT",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantEnv string
		wantErr bool
	}{
		{"openai without key", Config{Provider: ProviderOpenAI}, "TEACHTEAM_OPENAI_API_KEY", true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk"}}, "", false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "TEACHTEAM_ANTHROPIC_API_KEY", true},
		{"gemini without key", Config{Provider: ProviderGemini}, "TEACHTEAM_GEMINI_API_KEY", true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}, "", false},
		{"mock needs no key", Config{Provider: ProviderMock}, "", false},
		{"unknown provider", Config{Provider: "llama"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantEnv == "" {
				return
			}
			var missing *ErrMissingCredential
			if !errors.As(err, &missing) {
				t.Fatalf("expected ErrMissingCredential, got %T", err)
			}
			if missing.EnvVar != tt.wantEnv {
				t.Errorf("EnvVar = %q, want %q", missing.EnvVar, tt.wantEnv)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TEACHTEAM_LLM_PROVIDER", "anthropic")
	t.Setenv("TEACHTEAM_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("TEACHTEAM_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("TEACHTEAM_LLM_MAX_TOKENS", "1000")
	t.Setenv("TEACHTEAM_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" || cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.MaxTokens != 1000 || cfg.Timeout != 45*time.Second {
		t.Fatalf("limits = %d, %s", cfg.MaxTokens, cfg.Timeout)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("default OpenAI model lost: %q", cfg.OpenAI.Model)
	}
}

func TestConfigFromEnv_IgnoresBadNumbers(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TEACHTEAM_LLM_MAX_TOKENS", "lots")
	t.Setenv("TEACHTEAM_LLM_TIMEOUT", "-3s")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	if cfg.MaxTokens != def.MaxTokens || cfg.Timeout != def.Timeout {
		t.Fatalf("bad values should keep defaults, got %d, %s", cfg.MaxTokens, cfg.Timeout)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no discovered config")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("ANTHROPIC_API_KEY", "a")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderAnthropic {
		t.Fatalf("expected anthropic to win over gemini, got %q", cfg.Provider)
	}

	t.Setenv("OPENAI_API_KEY", "o")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("expected openai first, got %+v", cfg)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("TEACHTEAM_OPENAI_API_KEY", "explicit")
		t.Setenv("OPENAI_API_KEY", "standard")
		if cfg := ResolveConfig(); cfg.OpenAI.APIKey != "explicit" {
			t.Fatalf("APIKey = %q", cfg.OpenAI.APIKey)
		}
	})

	t.Run("falls back to discovery", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		cfg := ResolveConfig()
		if cfg.Provider != ProviderGemini || cfg.Validate() != nil {
			t.Fatalf("unexpected config %+v", cfg)
		}
	})

	t.Run("explicit provider is not overridden", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("TEACHTEAM_LLM_PROVIDER", "anthropic")
		t.Setenv("OPENAI_API_KEY", "o")
		cfg := ResolveConfig()
		var missing *ErrMissingCredential
		if !errors.As(cfg.Validate(), &missing) {
			t.Fatalf("expected missing anthropic key, got provider %q", cfg.Provider)
		}
	})
}
