// Package search builds the web-search tool the Research Librarian and the
// Teaching Assistant consult before writing.
package search

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/duckduckgo"
	"github.com/tmc/langchaingo/tools/serpapi"
)

// Provider names accepted by Config.Provider. An empty Provider picks
// SerpApi when a key is present and DuckDuckGo otherwise.
const (
	ProviderSerpAPI    = "serpapi"
	ProviderDuckDuckGo = "duckduckgo"
	ProviderNone       = "none"
)

// ErrMissingKey means SerpApi was requested explicitly without a key.
var ErrMissingKey = errors.New("TEACHTEAM_SERPAPI_API_KEY (or SERPAPI_API_KEY) is required for the serpapi search provider")

// Config selects and configures the search backend.
type Config struct {
	Provider   string
	SerpAPIKey string
	MaxResults int
}

// DefaultConfig returns automatic provider selection with five results.
func DefaultConfig() Config {
	return Config{MaxResults: 5}
}

// ConfigFromEnv reads TEACHTEAM_SEARCH_* variables. The vendor's own
// SERPAPI_API_KEY is honoured when the prefixed one is unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("TEACHTEAM_SEARCH_PROVIDER")

	cfg.SerpAPIKey = os.Getenv("TEACHTEAM_SERPAPI_API_KEY")
	if cfg.SerpAPIKey == "" {
		cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	}

	if v := os.Getenv("TEACHTEAM_SEARCH_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxResults = n
		}
	}
	return cfg
}

// Resolved returns the backend that will actually be used.
func (c Config) Resolved() string {
	if c.Provider != "" {
		return c.Provider
	}
	if c.SerpAPIKey != "" {
		return ProviderSerpAPI
	}
	return ProviderDuckDuckGo
}

// Validate reports configuration that can never work.
func (c Config) Validate() error {
	switch c.Resolved() {
	case ProviderSerpAPI:
		if c.SerpAPIKey == "" {
			return ErrMissingKey
		}
	case ProviderDuckDuckGo, ProviderNone:
	default:
		return fmt.Errorf("unknown search provider: %q", c.Provider)
	}
	return nil
}

// New builds the configured tool. It returns a nil tool for ProviderNone.
func New(cfg Config) (tools.Tool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Resolved() {
	case ProviderSerpAPI:
		tool, err := serpapi.New(serpapi.WithAPIKey(cfg.SerpAPIKey))
		if err != nil {
			return nil, fmt.Errorf("create serpapi tool: %w", err)
		}
		return tool, nil
	case ProviderDuckDuckGo:
		n := cfg.MaxResults
		if n < 1 {
			n = DefaultConfig().MaxResults
		}
		tool, err := duckduckgo.New(n, duckduckgo.DefaultUserAgent)
		if err != nil {
			return nil, fmt.Errorf("create duckduckgo tool: %w", err)
		}
		return tool, nil
	default:
		return nil, nil
	}
}
