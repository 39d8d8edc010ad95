package llm

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q", p.ModelID())
	}

	resp, err := p.Generate(WithPurpose(context.Background(), "professor"), Request{Messages: UserPrompt("Go")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Text(), "## professor") {
		t.Fatalf("Text() = %q", resp.Text())
	}
}

func TestNewProvider_MissingCredential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini

	_, err := NewProvider(context.Background(), cfg, nil, nil)
	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if !strings.Contains(err.Error(), "TEACHTEAM_GEMINI_API_KEY") {
		t.Fatalf("error should name the variable: %v", err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("Cost = %f, want 0.75", got)
	}

	if LookupCost("openai/gpt-4o-mini") == nil {
		t.Fatal("OpenRouter IDs should resolve by model part")
	}
	if LookupCost("mock") != nil {
		t.Fatal("mock has no pricing")
	}
}
