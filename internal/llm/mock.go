package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// TextResponse is a canned free-text reply.
func TextResponse(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockProvider is a deterministic Provider for tests and offline demos.
// By default it returns canned responses in FIFO order. When Respond is
// set it is called instead, which keeps concurrent callers deterministic.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Respond, if non-nil, computes the response for each request.
	Respond func(ctx context.Context, req Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewEchoProvider returns a mock that answers every request with a short
// Markdown note naming the call's purpose. It backs the "mock" provider so
// the application runs without credentials.
func NewEchoProvider() *MockProvider {
	m := &MockProvider{}
	m.Respond = func(ctx context.Context, req Request) MockResponse {
		if req.Schema != nil && req.Schema.Name == "quiz-question" {
			return MockResponse{Content: json.RawMessage(`{"question":"Which idea from today would you explain to a friend first?","section":"Review"}`)}
		}
		prompt := ""
		if n := len(req.Messages); n > 0 {
			prompt = req.Messages[n-1].Content
		}
		return TextResponse("## " + PurposeFrom(ctx) + "\n\n(offline mock reply)\n\n> " + prompt)
	}
	return m
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case m.Respond != nil:
		respond := m.Respond
		m.mu.Unlock()
		resp = respond(ctx, req)
	case len(m.responses) == 0:
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	default:
		resp = m.responses[0]
		m.responses = m.responses[1:]
		m.mu.Unlock()
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if req.Schema != nil {
		if err := validateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsSnapshot returns a copy of the recorded requests.
func (m *MockProvider) CallsSnapshot() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.Calls...)
}
