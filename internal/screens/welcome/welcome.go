package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/router"
	"github.com/abhisek/teachteam/internal/screen"
	"github.com/abhisek/teachteam/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// The four seats of the team, lit one by one.
var seats = []string{"Professor", "Advisor", "Librarian", "Assistant"}

var sparkleFrames = []string{"·", "•"}

type tickMsg time.Time

// WelcomeScreen shows a short splash before the home screen. Any key skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// Phase 1+: seats light up in turn.
	lit := len(seats)
	if w.elapsed < phase1End {
		lit = int(w.elapsed * time.Duration(len(seats)) / phase1End)
	}
	sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
	parts := make([]string, len(seats))
	for i, name := range seats {
		style := lipgloss.NewStyle().Foreground(theme.Border)
		if i < lit {
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}
		parts[i] = style.Render(name)
	}
	sep := lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + sparkle + "  ")
	sections = append(sections, strings.Join(parts, sep))

	// Phase 2+: banner and tagline.
	if w.elapsed >= phase2End {
		sections = append(sections, "")
		sections = append(sections, RenderBanner(width))
		sections = append(sections, "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Your personal AI teaching team")
		sections = append(sections, tagline)

		sections = append(sections, "")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
