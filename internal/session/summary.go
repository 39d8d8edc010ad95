package session

import (
	"time"

	"github.com/abhisek/teachteam/internal/badges"
)

// View is a read-only snapshot of a session with derived values filled in.
type View struct {
	ID                string        `json:"id"`
	Topic             string        `json:"topic"`
	LearningStyle     LearningStyle `json:"learning_style"`
	Progress          int           `json:"progress"`
	Encouragement     Encouragement `json:"encouragement"`
	CompletedSections []string      `json:"completed_sections"`
	CurrentSection    string        `json:"current_section"`
	QuizQuestion      string        `json:"quiz_question"`
	Points            int           `json:"points"`
	Level             int           `json:"level"`
	PointsToNextLevel int           `json:"points_to_next_level"`
	Badges            []badges.ID   `json:"badges"`
	BadgeLabels       []string      `json:"badge_labels"`
	StudyGroup        string        `json:"study_group"`
	ChatHistory       []ChatEntry   `json:"chat_history"`
	HasContent        bool          `json:"has_content"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Snapshot returns a copy of the session's state for display.
func (s *Session) Snapshot() View {
	r := s.rules()
	level := r.Level(s.Points)

	group := s.StudyGroup
	if group == "" {
		group = MsgStudyGroupDefault
	}

	return View{
		ID:                s.ID,
		Topic:             s.Topic,
		LearningStyle:     s.LearningStyle,
		Progress:          s.Progress,
		Encouragement:     s.Encouragement(),
		CompletedSections: append([]string{}, s.CompletedSections...),
		CurrentSection:    s.SectionLabel(),
		QuizQuestion:      s.QuizQuestion,
		Points:            s.Points,
		Level:             level,
		PointsToNextLevel: level*r.PointsPerLevel - s.Points,
		Badges:            append([]badges.ID{}, s.Badges...),
		BadgeLabels:       badges.Labels(s.Badges),
		StudyGroup:        group,
		ChatHistory:       append([]ChatEntry{}, s.ChatHistory...),
		HasContent:        s.Content != nil,
		UpdatedAt:         s.UpdatedAt,
	}
}
