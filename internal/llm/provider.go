package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the generation service every agent talks to.
type Provider interface {
	// Generate sends a prompt to the model. When req.Schema is set the
	// provider asks for JSON matching it and validates the result;
	// otherwise Content holds the model's Markdown/plain text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System carries the agent persona: name, role and instructions.
	System string

	// Messages is the conversation. Agents send a single user message;
	// the transcript of a chat is flattened into that message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to, or nil for
	// free text.
	Schema *Schema

	// MaxTokens caps the response length. Zero uses Config.MaxTokens.
	MaxTokens int

	// Temperature controls randomness in 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt is shorthand for a single-message conversation.
func UserPrompt(text string) []Message {
	return []Message{{Role: RoleUser, Content: text}}
}

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "quiz-question". It is
	// the tool name for Anthropic and the schema name for OpenAI.
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object for schema requests and the raw
	// reply text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as trimmed text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Decode unmarshals a structured response into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Content, v)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
