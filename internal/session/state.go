package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/teachteam/internal/badges"
)

// LearningStyle is the learner's preferred presentation of material.
// It is passed to the agents as context and is not used algorithmically.
type LearningStyle string

const (
	StyleVisual         LearningStyle = "Visual"
	StyleAuditory       LearningStyle = "Auditory"
	StyleReadingWriting LearningStyle = "Reading/Writing"
	StyleKinesthetic    LearningStyle = "Kinesthetic"
)

// AllLearningStyles returns the learning styles in display order.
func AllLearningStyles() []LearningStyle {
	return []LearningStyle{StyleVisual, StyleAuditory, StyleReadingWriting, StyleKinesthetic}
}

// ParseLearningStyle parses a learning style name, ignoring case.
// "reading", "writing" and "reading-writing" are accepted for Reading/Writing.
func ParseLearningStyle(s string) (LearningStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual":
		return StyleVisual, nil
	case "auditory":
		return StyleAuditory, nil
	case "reading/writing", "reading-writing", "reading", "writing":
		return StyleReadingWriting, nil
	case "kinesthetic":
		return StyleKinesthetic, nil
	}
	return "", fmt.Errorf("unknown learning style %q", s)
}

// DefaultQuizQuestion is shown until a topic-specific question is generated.
const DefaultQuizQuestion = "What is the most important concept you learned so far?"

// ChatRole identifies the author of a chat entry.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatEntry is one message in the chat transcript.
type ChatEntry struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Content holds the four documents generated by the teaching team for the
// current topic.
type Content struct {
	Topic         string    `json:"topic"`
	KnowledgeBase string    `json:"knowledge_base"`
	Roadmap       string    `json:"roadmap"`
	Resources     string    `json:"resources"`
	Practice      string    `json:"practice"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Session is the state of one learner's interaction. It lives only as long
// as the interaction and is never persisted.
//
// A Session is not safe for concurrent use; the owner of a session must
// serialize operations on it.
type Session struct {
	ID                string        `json:"id"`
	Topic             string        `json:"topic"`
	LearningStyle     LearningStyle `json:"learning_style"`
	Progress          int           `json:"progress"`
	CompletedSections []string      `json:"completed_sections"`
	CurrentSection    string        `json:"current_section,omitempty"`
	QuizQuestion      string        `json:"quiz_question"`
	LastQuizAnswer    string        `json:"last_quiz_answer,omitempty"`
	Points            int           `json:"points"`
	Badges            []badges.ID   `json:"badges"`
	ChatHistory       []ChatEntry   `json:"chat_history"`
	StudyGroup        string        `json:"study_group,omitempty"`
	Content           *Content      `json:"content,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`

	ruleSet *badges.Rules
}

// New creates an empty session using the given gamification rules.
func New(rules badges.Rules) *Session {
	now := time.Now()
	return &Session{
		ID:                uuid.New().String(),
		LearningStyle:     StyleVisual,
		QuizQuestion:      DefaultQuizQuestion,
		CompletedSections: []string{},
		Badges:            []badges.ID{},
		ChatHistory:       []ChatEntry{},
		CreatedAt:         now,
		UpdatedAt:         now,
		ruleSet:           &rules,
	}
}

// SetRules replaces the gamification rules, e.g. after a session was decoded
// from storage.
func (s *Session) SetRules(rules badges.Rules) {
	s.ruleSet = &rules
}

func (s *Session) rules() badges.Rules {
	if s.ruleSet == nil {
		return badges.DefaultRules()
	}
	return *s.ruleSet
}

// Level is derived from points on every read.
func (s *Session) Level() int {
	return s.rules().Level(s.Points)
}

// HasBadge reports whether the badge has been unlocked.
func (s *Session) HasBadge(id badges.ID) bool {
	return lo.Contains(s.Badges, id)
}

// SectionLabel returns the label the next quiz submission will complete.
func (s *Session) SectionLabel() string {
	if s.CurrentSection != "" {
		return s.CurrentSection
	}
	return fmt.Sprintf("Section %d", len(s.CompletedSections)+1)
}

// Clone returns a deep copy of the session, including its rules. Callers
// use it to run a slow operation without holding the original.
func (s *Session) Clone() *Session {
	c := *s
	c.CompletedSections = append([]string{}, s.CompletedSections...)
	c.Badges = append([]badges.ID{}, s.Badges...)
	c.ChatHistory = append([]ChatEntry{}, s.ChatHistory...)
	if s.Content != nil {
		content := *s.Content
		c.Content = &content
	}
	if s.ruleSet != nil {
		rules := *s.ruleSet
		c.ruleSet = &rules
	}
	return &c
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
