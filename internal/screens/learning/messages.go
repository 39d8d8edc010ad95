package learning

import (
	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/session"
)

// contentMsg carries the team's documents for a topic.
type contentMsg struct {
	Content *session.Content
	Err     error
}

// sessionMsg carries a session clone that an action ran against, to be
// adopted as the live session.
type sessionMsg struct {
	Session *session.Session
	Outcome session.Outcome
	Err     error
}

// quizQuestionMsg carries a freshly generated quiz question.
type quizQuestionMsg struct {
	Question agents.QuizQuestion
	Err      error
}

// answerMsg carries a live Q&A reply.
type answerMsg struct {
	Agent    agents.Agent
	Question string
	Answer   string
	Err      error
}
