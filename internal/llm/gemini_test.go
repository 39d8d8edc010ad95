package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(quizSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %v", s.Type)
	}
	if len(s.Required) != 2 || s.Required[0] != "question" {
		t.Fatalf("Required = %v", s.Required)
	}
	if s.Properties["question"] == nil || s.Properties["question"].Type != genai.TypeString {
		t.Fatalf("question property = %+v", s.Properties["question"])
	}
}

func TestGeminiSchema_DecodedJSON(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
			},
			"score": map[string]any{"type": "integer", "description": "0-100"},
		},
		"required": []any{"tags"},
	}

	s := geminiSchema(def)
	tags := s.Properties["tags"]
	if tags.Type != genai.TypeArray || tags.Items == nil || len(tags.Items.Enum) != 2 {
		t.Fatalf("tags = %+v", tags)
	}
	if s.Properties["score"].Type != genai.TypeInteger || s.Properties["score"].Description != "0-100" {
		t.Fatalf("score = %+v", s.Properties["score"])
	}
	if len(s.Required) != 1 || s.Required[0] != "tags" {
		t.Fatalf("Required = %v", s.Required)
	}
}

func TestGeminiContents_Roles(t *testing.T) {
	contents := geminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	if contents[0].Role != genai.RoleUser || contents[1].Role != genai.RoleModel {
		t.Fatalf("roles = %q, %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "hello" {
		t.Fatalf("text = %q", contents[1].Parts[0].Text)
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
	}
	if got := mapGeminiStopReason(truncated); got != "max_tokens" {
		t.Errorf("got %q, want max_tokens", got)
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Errorf("got %q, want end", got)
	}
}

func TestMapGeminiError(t *testing.T) {
	rate := fmt.Errorf("call: %w", genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"})
	var rl *ErrRateLimit
	if !errors.As(mapGeminiError(rate), &rl) {
		t.Fatal("expected ErrRateLimit for 429")
	}

	var unavail *ErrProviderUnavailable
	if !errors.As(mapGeminiError(errors.New("dial tcp")), &unavail) {
		t.Fatal("expected ErrProviderUnavailable for network error")
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
