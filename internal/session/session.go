package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/teachteam/internal/badges"
)

// ErrEmptyInput is matched by every refusal caused by blank required input.
var ErrEmptyInput = errors.New("empty input")

// ErrProgressOutOfRange is returned when a progress value is outside 0..100.
var ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")

// Warning is a user-facing refusal of an action. It matches ErrEmptyInput.
type Warning struct {
	Message string
}

func (w *Warning) Error() string { return w.Message }

func (w *Warning) Is(target error) bool { return target == ErrEmptyInput }

// User-facing messages.
const (
	MsgQuizSubmitted     = "Progress updated! Your learning path will adapt accordingly."
	MsgNoteShared        = "Note shared with your group!"
	MsgReviewSubmitted   = "Your review has been submitted!"
	MsgFeedbackReady     = "Feedback ready."
	WarnEmptyAssignment  = "Please upload a file or enter your solution."
	WarnEmptyTopic       = "Please enter a topic."
	MsgProgressAdjusted  = "Progress updated."
	MsgChatCleared       = "Chat cleared."
	MsgStudyGroupJoined  = "Joined study group."
	MsgStudyGroupDefault = "None"
)

// FeedbackGenerator produces feedback text for a submitted assignment.
type FeedbackGenerator interface {
	AssignmentFeedback(ctx context.Context, content string) (string, error)
}

// ChatGenerator continues a flattened chat transcript.
type ChatGenerator interface {
	ContinueChat(ctx context.Context, transcript string) (string, error)
}

// Outcome describes the effect of a point-earning action.
type Outcome struct {
	Action        badges.Action `json:"action"`
	PointsAwarded int           `json:"points_awarded"`
	NewBadges     []badges.ID   `json:"new_badges,omitempty"`
	Level         int           `json:"level"`
	LeveledUp     bool          `json:"leveled_up"`
	Message       string        `json:"message"`
	Feedback      string        `json:"feedback,omitempty"`
}

// award adds the action's points, recomputes level and unlocks any badges
// owned by the action whose threshold is now met.
func (s *Session) award(a badges.Action) Outcome {
	r := s.rules()
	before := r.Level(s.Points)

	pts := r.PointsFor(a)
	s.Points += pts

	unlocked := r.Unlocked(a, s.Points, s.Badges)
	s.Badges = append(s.Badges, unlocked...)
	s.touch()

	after := r.Level(s.Points)
	return Outcome{
		Action:        a,
		PointsAwarded: pts,
		NewBadges:     unlocked,
		Level:         after,
		LeveledUp:     after > before,
	}
}

// SubmitQuizAnswer records a quiz answer. Any answer, including an empty
// one, is accepted: progress advances by the quiz step (capped at 100), the
// current section is marked complete and quiz points are awarded.
func (s *Session) SubmitQuizAnswer(answer string) Outcome {
	r := s.rules()
	s.Progress = min(100, s.Progress+r.QuizProgressStep)

	section := s.SectionLabel()
	if !lo.Contains(s.CompletedSections, section) {
		s.CompletedSections = append(s.CompletedSections, section)
	}
	s.LastQuizAnswer = answer

	out := s.award(badges.ActionQuiz)
	out.Message = MsgQuizSubmitted
	return out
}

// ShareNote awards points for sharing a note with the study group.
// The note itself is not kept.
func (s *Session) ShareNote(text string) Outcome {
	out := s.award(badges.ActionNote)
	out.Message = MsgNoteShared
	return out
}

// SubmitPeerReview awards points for reviewing a peer's work.
func (s *Session) SubmitPeerReview(text string) Outcome {
	out := s.award(badges.ActionReview)
	out.Message = MsgReviewSubmitted
	return out
}

// SubmitAssignmentForFeedback sends the assignment to gen and, on success,
// awards assignment points. Blank content is refused with a *Warning and
// a generation failure is returned; in both cases the session is unchanged.
func (s *Session) SubmitAssignmentForFeedback(ctx context.Context, gen FeedbackGenerator, content string) (Outcome, error) {
	if strings.TrimSpace(content) == "" {
		return Outcome{}, &Warning{Message: WarnEmptyAssignment}
	}

	feedback, err := gen.AssignmentFeedback(ctx, content)
	if err != nil {
		return Outcome{}, fmt.Errorf("assignment feedback: %w", err)
	}

	out := s.award(badges.ActionAssignment)
	out.Message = MsgFeedbackReady
	out.Feedback = feedback
	return out, nil
}

// SendChatMessage appends text as a user entry, asks gen to continue the
// transcript and appends the reply as an assistant entry. Blank text is a
// no-op returning ("", nil).
//
// If gen fails the user entry remains in the history and no assistant entry
// is added.
func (s *Session) SendChatMessage(ctx context.Context, gen ChatGenerator, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	s.ChatHistory = append(s.ChatHistory, ChatEntry{Role: RoleUser, Text: text})
	s.touch()

	reply, err := gen.ContinueChat(ctx, s.Transcript())
	if err != nil {
		return "", fmt.Errorf("continue chat: %w", err)
	}

	s.ChatHistory = append(s.ChatHistory, ChatEntry{Role: RoleAssistant, Text: reply})
	s.touch()
	return reply, nil
}

// ClearChat empties the chat history.
func (s *Session) ClearChat() {
	s.ChatHistory = []ChatEntry{}
	s.touch()
}

// AdjustProgress sets progress directly.
func (s *Session) AdjustProgress(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: got %d", ErrProgressOutOfRange, percent)
	}
	s.Progress = percent
	s.touch()
	return nil
}

// Transcript renders the chat history as "User: ..." / "AI: ..." lines.
func (s *Session) Transcript() string {
	lines := make([]string, len(s.ChatHistory))
	for i, e := range s.ChatHistory {
		if e.Role == RoleUser {
			lines[i] = "User: " + e.Text
		} else {
			lines[i] = "AI: " + e.Text
		}
	}
	return strings.Join(lines, "\n")
}

// SetTopic sets the topic being studied. A blank topic is refused.
// Changing the topic discards previously generated content.
func (s *Session) SetTopic(topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return &Warning{Message: WarnEmptyTopic}
	}
	if topic != s.Topic {
		s.Content = nil
		s.QuizQuestion = DefaultQuizQuestion
	}
	s.Topic = topic
	s.touch()
	return nil
}

// SetLearningStyle sets the learner's preferred style.
func (s *Session) SetLearningStyle(style LearningStyle) {
	s.LearningStyle = style
	s.touch()
}

// SetCurrentSection sets the label the next quiz answer completes. An empty
// label restores the "Section N" default.
func (s *Session) SetCurrentSection(label string) {
	s.CurrentSection = strings.TrimSpace(label)
	s.touch()
}

// JoinStudyGroup sets the study group name. An empty name leaves the group.
func (s *Session) JoinStudyGroup(name string) {
	s.StudyGroup = strings.TrimSpace(name)
	s.touch()
}

// SetQuizQuestion replaces the quiz question. A blank question restores the default.
func (s *Session) SetQuizQuestion(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		q = DefaultQuizQuestion
	}
	s.QuizQuestion = q
	s.touch()
}

// SetContent stores freshly generated content for the current topic.
func (s *Session) SetContent(c Content) {
	s.Content = &c
	s.touch()
}
