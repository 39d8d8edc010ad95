package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → limits → retry → logging → base, so every attempt is audited.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewEchoProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, repo, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithLimits(retried, cfg.MaxTokens, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the provider. A missing credential is returned as *ErrMissingCredential.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo, log *logger.Logger) (Provider, error) {
	return NewProvider(ctx, ResolveConfig(), repo, log)
}
