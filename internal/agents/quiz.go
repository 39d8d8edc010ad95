package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/teachteam/internal/llm"
)

// QuizQuestion is a generated check-in question for one roadmap section.
type QuizQuestion struct {
	Question string `json:"question"`
	Section  string `json:"section"`
}

var quizQuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "One open-ended quiz question about a section of the learning roadmap",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "A single open-ended question the learner answers in a sentence or two",
				"minLength":   1,
			},
			"section": map[string]any{
				"type":        "string",
				"description": "The roadmap section the question checks",
			},
		},
		"required":             []string{"question", "section"},
		"additionalProperties": false,
	},
}

// QuizQuestion asks the Teaching Assistant for a question on section of
// topic. An empty section means the topic as a whole.
func (t *Team) QuizQuestion(ctx context.Context, topic, section string) (QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return QuizQuestion{}, ErrEmptyTopic
	}
	section = strings.TrimSpace(section)
	if section == "" {
		section = topic
	}

	ta, _ := Lookup(string(TeachingAssistant))
	prompt := fmt.Sprintf("Write one quiz question for a learner studying %q. The question must check the section %q. Return the question and the section name.", topic, section)

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, "quiz-question"), llm.Request{
		System:      ta.SystemPrompt(),
		Messages:    llm.UserPrompt(prompt),
		Schema:      quizQuestionSchema,
		Temperature: ta.Temperature,
		MaxTokens:   512,
	})
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("quiz question: %w", err)
	}

	var q QuizQuestion
	if err := resp.Decode(&q); err != nil {
		return QuizQuestion{}, fmt.Errorf("decode quiz question: %w", err)
	}
	if q.Section == "" {
		q.Section = section
	}
	return q, nil
}
