package session

import "math/rand/v2"

// Tone classifies an encouragement message for display.
type Tone string

const (
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
)

// Encouragement is the progress tracker's message for a progress value.
type Encouragement struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
}

// EncouragementFor returns the encouragement tier for a progress percentage.
func EncouragementFor(progress int) Encouragement {
	switch {
	case progress < 30:
		return Encouragement{Tone: ToneWarning, Message: "Keep going! Every step counts. 💪"}
	case progress < 70:
		return Encouragement{Tone: ToneInfo, Message: "Great progress! Stay consistent for best results."}
	default:
		return Encouragement{Tone: ToneSuccess, Message: "Amazing! You're close to mastering this topic."}
	}
}

// Encouragement returns the encouragement tier for the session's progress.
func (s *Session) Encouragement() Encouragement {
	return EncouragementFor(s.Progress)
}

// Reminders are the motivational nudges offered on request.
var Reminders = []string{
	"Remember to take short breaks for better retention!",
	"Share your progress with your study group for extra motivation.",
	"Try explaining a concept to someone else—it helps you learn!",
	"Stay curious and keep exploring new resources.",
	"Consistency is key. Even 10 minutes a day makes a difference!",
}

// Reminder returns a reminder chosen by pick, which must return a value in
// [0, n). A nil pick chooses uniformly at random.
func Reminder(pick func(n int) int) string {
	if pick == nil {
		pick = rand.IntN
	}
	return Reminders[pick(len(Reminders))]
}
