package badges

// Action identifies the learner action that earns points and may unlock a badge.
type Action string

const (
	ActionQuiz       Action = "quiz"
	ActionNote       Action = "note"
	ActionReview     Action = "review"
	ActionAssignment Action = "assignment"
)

// AllActions returns all point-earning actions in display order.
func AllActions() []Action {
	return []Action{ActionQuiz, ActionNote, ActionReview, ActionAssignment}
}

// ID identifies a badge. Badge IDs are the human-readable badge names.
type ID string

const (
	QuizMaster        ID = "Quiz Master"
	Collaborator      ID = "Collaborator"
	Reviewer          ID = "Reviewer"
	ConsistentLearner ID = "Consistent Learner"
)

// Icon returns the display icon for the badge.
func (id ID) Icon() string {
	switch id {
	case QuizMaster:
		return "🏆"
	case Collaborator:
		return "🤝"
	case Reviewer:
		return "📝"
	case ConsistentLearner:
		return "📚"
	default:
		return "✦"
	}
}

// Label returns the icon followed by the badge name, e.g. "🏆 Quiz Master".
func (id ID) Label() string {
	return id.Icon() + " " + string(id)
}

// Badge is a catalogue entry: the action that can unlock the badge and the
// cumulative point total at which it unlocks.
type Badge struct {
	ID        ID
	Action    Action
	Threshold int
}

// Labels maps badge IDs to their display labels, preserving order.
func Labels(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Label()
	}
	return out
}
