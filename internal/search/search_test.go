package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TEACHTEAM_SEARCH_PROVIDER", "TEACHTEAM_SERPAPI_API_KEY", "SERPAPI_API_KEY", "TEACHTEAM_SEARCH_RESULTS"} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderDuckDuckGo, cfg.Resolved())
	assert.Equal(t, 5, cfg.MaxResults)

	t.Setenv("SERPAPI_API_KEY", "vendor")
	assert.Equal(t, "vendor", ConfigFromEnv().SerpAPIKey)
	assert.Equal(t, ProviderSerpAPI, ConfigFromEnv().Resolved())

	t.Setenv("TEACHTEAM_SERPAPI_API_KEY", "prefixed")
	t.Setenv("TEACHTEAM_SEARCH_RESULTS", "8")
	cfg = ConfigFromEnv()
	assert.Equal(t, "prefixed", cfg.SerpAPIKey)
	assert.Equal(t, 8, cfg.MaxResults)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
		bad  bool
	}{
		{"auto without key", Config{}, nil, false},
		{"auto with key", Config{SerpAPIKey: "k"}, nil, false},
		{"explicit serpapi without key", Config{Provider: ProviderSerpAPI}, ErrMissingKey, true},
		{"duckduckgo", Config{Provider: ProviderDuckDuckGo}, nil, false},
		{"none", Config{Provider: ProviderNone}, nil, false},
		{"unknown", Config{Provider: "bing"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.bad {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
			}
		})
	}
}

func TestNew(t *testing.T) {
	tool, err := New(Config{SerpAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "GoogleSearch", tool.Name())

	tool, err = New(Config{Provider: ProviderDuckDuckGo})
	require.NoError(t, err)
	assert.Equal(t, "DuckDuckGo Search", tool.Name())

	tool, err = New(Config{Provider: ProviderNone})
	require.NoError(t, err)
	assert.Nil(t, tool)

	_, err = New(Config{Provider: ProviderSerpAPI})
	assert.ErrorIs(t, err, ErrMissingKey)
}
