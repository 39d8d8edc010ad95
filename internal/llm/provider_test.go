package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		TextResponse("# Knowledge Base"),
		MockResponse{Content: json.RawMessage(`{"b":2}`), Usage: Usage{InputTokens: 12, OutputTokens: 3, TotalTokens: 15}},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: UserPrompt("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "# Knowledge Base" {
		t.Fatalf("Text() = %q", resp.Text())
	}
	if resp.StopReason != "end" || resp.Model != "mock" {
		t.Fatalf("unexpected metadata: %+v", resp)
	}

	resp, err = mock.Generate(context.Background(), Request{Messages: UserPrompt("second")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 12 {
		t.Fatalf("InputTokens = %d, want 12", resp.Usage.InputTokens)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable from empty queue, got %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("CallCount = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_Respond(t *testing.T) {
	mock := &MockProvider{
		Respond: func(ctx context.Context, req Request) MockResponse {
			return TextResponse("for " + PurposeFrom(ctx))
		},
	}
	ctx := WithPurpose(context.Background(), "professor")
	resp, err := mock.Generate(ctx, Request{System: "sys"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "for professor" {
		t.Fatalf("Text() = %q", resp.Text())
	}
	if calls := mock.CallsSnapshot(); len(calls) != 1 || calls[0].System != "sys" {
		t.Fatalf("calls = %+v", calls)
	}
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"question":""}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: quizSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestEchoProvider(t *testing.T) {
	p := NewEchoProvider()
	ctx := WithPurpose(context.Background(), "roadmap")

	resp, err := p.Generate(ctx, Request{Messages: UserPrompt("the topic is: Go")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Text(), "roadmap") || !strings.Contains(resp.Text(), "the topic is: Go") {
		t.Fatalf("Text() = %q", resp.Text())
	}

	resp, err = p.Generate(ctx, Request{Schema: quizSchema()})
	if err != nil {
		t.Fatalf("structured echo: %v", err)
	}
	var q struct{ Question string }
	if err := resp.Decode(&q); err != nil || q.Question == "" {
		t.Fatalf("Decode: %v, %+v", err, q)
	}
}

func TestResponseText_Nil(t *testing.T) {
	var r *Response
	if r.Text() != "" {
		t.Fatal("nil response should have empty text")
	}
}

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("PurposeFrom = %q, want unknown", p)
	}
	if s := SessionFrom(ctx); s != "" {
		t.Fatalf("SessionFrom = %q, want empty", s)
	}

	ctx = WithSession(WithPurpose(ctx, "chat"), "abc")
	if PurposeFrom(ctx) != "chat" || SessionFrom(ctx) != "abc" {
		t.Fatalf("labels = %q, %q", PurposeFrom(ctx), SessionFrom(ctx))
	}
}
