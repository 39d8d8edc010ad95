package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/store"
)

// recordingRepo captures appended events. Only AppendLLMRequest is used.
type recordingRepo struct {
	store.EventRepo

	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: []byte("## Roadmap"),
		Usage:   Usage{InputTokens: 10, OutputTokens: 4},
	})
	p := WithLogging(mock, ProviderMock, repo, logger.Nop())

	ctx := WithSession(WithPurpose(context.Background(), "academic-advisor"), "sess-1")
	if _, err := p.Generate(ctx, Request{System: "advisor", Messages: UserPrompt("Go")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "mock" || ev.Model != "mock" {
		t.Errorf("provider/model = %q/%q", ev.Provider, ev.Model)
	}
	if ev.Purpose != "academic-advisor" || ev.SessionID != "sess-1" {
		t.Errorf("purpose/session = %q/%q", ev.Purpose, ev.SessionID)
	}
	if !ev.Success || ev.InputTokens != 10 || ev.ResponseBody != "## Roadmap" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "advisor") {
		t.Errorf("RequestBody = %q", ev.RequestBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, ProviderMock, repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	ev := repo.events[0]
	if ev.Success || !strings.Contains(ev.ErrorMessage, "down") {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestLoggingProvider_AuditFailureIsSwallowed(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(TextResponse("ok")), ProviderMock, repo, logger.Nop())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("audit failure must not fail the call: %v", err)
	}
	if resp.Text() != "ok" {
		t.Fatalf("Text() = %q", resp.Text())
	}
}

func TestLoggingProvider_NoRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(TextResponse("ok")), ProviderMock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
