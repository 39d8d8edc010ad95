package badges

import (
	"fmt"

	"github.com/samber/lo"
)

// Rules holds the gamification constants: points per action, the progress
// step for a quiz submission, the level span and the badge catalogue.
type Rules struct {
	QuizPoints       int
	NotePoints       int
	ReviewPoints     int
	AssignmentPoints int

	// QuizProgressStep is the percentage added to progress per quiz answer.
	QuizProgressStep int

	// PointsPerLevel is the number of points between consecutive levels.
	PointsPerLevel int

	Catalogue []Badge
}

// DefaultRules returns the standard point values and badge thresholds.
func DefaultRules() Rules {
	return Rules{
		QuizPoints:       10,
		NotePoints:       5,
		ReviewPoints:     5,
		AssignmentPoints: 15,
		QuizProgressStep: 10,
		PointsPerLevel:   50,
		Catalogue: []Badge{
			{ID: QuizMaster, Action: ActionQuiz, Threshold: 100},
			{ID: Collaborator, Action: ActionNote, Threshold: 50},
			{ID: Reviewer, Action: ActionReview, Threshold: 75},
			{ID: ConsistentLearner, Action: ActionAssignment, Threshold: 125},
		},
	}
}

// Validate checks that the rules are usable.
func (r Rules) Validate() error {
	if r.PointsPerLevel <= 0 {
		return fmt.Errorf("points per level must be positive, got %d", r.PointsPerLevel)
	}
	for _, a := range AllActions() {
		if p := r.PointsFor(a); p < 0 {
			return fmt.Errorf("points for %s must not be negative, got %d", a, p)
		}
	}
	if r.QuizProgressStep < 0 || r.QuizProgressStep > 100 {
		return fmt.Errorf("quiz progress step must be within 0..100, got %d", r.QuizProgressStep)
	}
	seen := make(map[ID]bool, len(r.Catalogue))
	for _, b := range r.Catalogue {
		if seen[b.ID] {
			return fmt.Errorf("duplicate badge %q in catalogue", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}

// Level returns the level for a point total: 1 + points / PointsPerLevel.
func (r Rules) Level(points int) int {
	if points < 0 {
		points = 0
	}
	return 1 + points/r.PointsPerLevel
}

// PointsFor returns the points awarded for an action.
func (r Rules) PointsFor(a Action) int {
	switch a {
	case ActionQuiz:
		return r.QuizPoints
	case ActionNote:
		return r.NotePoints
	case ActionReview:
		return r.ReviewPoints
	case ActionAssignment:
		return r.AssignmentPoints
	default:
		return 0
	}
}

// Unlocked returns the badges newly unlocked by performing action a with the
// given point total. Only badges owned by that action are considered, and
// badges already in owned are never returned again.
func (r Rules) Unlocked(a Action, points int, owned []ID) []ID {
	var out []ID
	for _, b := range r.Catalogue {
		if b.Action != a || points < b.Threshold {
			continue
		}
		if lo.Contains(owned, b.ID) {
			continue
		}
		out = append(out, b.ID)
	}
	return out
}

// Lookup returns the catalogue entry for id.
func (r Rules) Lookup(id ID) (Badge, bool) {
	return lo.Find(r.Catalogue, func(b Badge) bool { return b.ID == id })
}
