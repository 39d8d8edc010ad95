package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/tools"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/logger"
	"github.com/abhisek/teachteam/internal/session"
)

// Blank input is refused with a session.Warning so callers can match
// session.ErrEmptyInput.
var (
	ErrEmptyTopic    error = &session.Warning{Message: session.WarnEmptyTopic}
	ErrEmptyQuestion error = &session.Warning{Message: "Please enter a question."}
	ErrUnknownAgent        = errors.New("unknown agent")
)

// Brief is what the learner tells the team before content generation.
type Brief struct {
	Topic    string
	Style    session.LearningStyle
	Progress int
}

// Prompt renders the brief as the user message every agent receives.
func (b Brief) Prompt() string {
	return fmt.Sprintf("the topic is: %s, user learning style: %s, user progress: %d%%.",
		strings.TrimSpace(b.Topic), b.Style, b.Progress)
}

// Team sends agents to a generation provider. The search tool may be nil,
// in which case search-backed agents work from the model's own knowledge.
type Team struct {
	provider llm.Provider
	search   tools.Tool
	log      *logger.Logger
}

// NewTeam creates a Team. log may be nil.
func NewTeam(provider llm.Provider, search tools.Tool, log *logger.Logger) *Team {
	if log == nil {
		log = logger.Nop()
	}
	return &Team{provider: provider, search: search, log: log}
}

// SearchEnabled reports whether a search tool is attached.
func (t *Team) SearchEnabled() bool {
	return t.search != nil
}

// Invoke sends prompt to agent and returns the Markdown reply. Search-backed
// agents first look the prompt up on the web.
func (t *Team) Invoke(ctx context.Context, agent Agent, prompt string) (string, error) {
	return t.invoke(ctx, agent, prompt, prompt)
}

func (t *Team) invoke(ctx context.Context, agent Agent, prompt, query string) (string, error) {
	start := time.Now()
	log := t.log.With("agent", agent.ID, "session_id", llm.SessionFrom(ctx))

	user := prompt
	if agent.UsesSearch && t.search != nil {
		results, err := t.search.Call(ctx, query)
		if err != nil {
			log.Warn("search failed", "query", query, "error", err)
			return "", fmt.Errorf("%s search: %w", agent.Name, err)
		}
		user = prompt + "\n\nSearch results:\n" + results
	}

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, agent.Purpose), llm.Request{
		System:      agent.SystemPrompt(),
		Messages:    llm.UserPrompt(user),
		Temperature: agent.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", agent.Name, err)
	}

	text := resp.Text()
	log.Debug("agent replied", "chars", len(text), "elapsed", time.Since(start))
	return text, nil
}

// GenerateAll asks all four agents about the brief at once. The first
// failure cancels the remaining calls and is returned.
func (t *Team) GenerateAll(ctx context.Context, brief Brief) (*session.Content, error) {
	topic := strings.TrimSpace(brief.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	prompt := brief.Prompt()
	queries := map[ID]string{
		ResearchLibrarian: topic + " tutorials documentation courses",
		TeachingAssistant: topic + " exercises practice problems projects",
	}

	roster := Roster()
	out := make([]string, len(roster))

	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range roster {
		query, ok := queries[agent.ID]
		if !ok {
			query = topic
		}
		g.Go(func() error {
			text, err := t.invoke(gctx, agent, prompt, query)
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.log.Info("content generated", "topic", topic, "session_id", llm.SessionFrom(ctx))
	return &session.Content{
		Topic:         topic,
		KnowledgeBase: out[0],
		Roadmap:       out[1],
		Resources:     out[2],
		Practice:      out[3],
		GeneratedAt:   time.Now().UTC(),
	}, nil
}

// AssignmentFeedback has the Professor review a submitted assignment.
func (t *Team) AssignmentFeedback(ctx context.Context, content string) (string, error) {
	prof, _ := Lookup(string(Professor))
	prof.Purpose = "assignment-feedback"
	prompt := "Please provide detailed, constructive feedback and improvement suggestions for this assignment/essay:\n\n" + content
	return t.Invoke(ctx, prof, prompt)
}

// ContinueChat produces the assistant's next turn for a flattened transcript.
func (t *Team) ContinueChat(ctx context.Context, transcript string) (string, error) {
	prompt := "Continue this conversation as a helpful AI assistant.\n\n" + transcript + "\nAI:"
	return t.Invoke(ctx, chatAgent, prompt)
}

// Ask sends a live question straight to one agent.
func (t *Team) Ask(ctx context.Context, agentID, question string) (string, error) {
	agent, ok := Lookup(agentID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAgent, agentID)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	agent.Purpose = "ask-" + string(agent.ID)
	return t.Invoke(ctx, agent, question)
}
