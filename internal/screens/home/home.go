package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/router"
	"github.com/abhisek/teachteam/internal/screen"
	"github.com/abhisek/teachteam/internal/screens/chat"
	"github.com/abhisek/teachteam/internal/screens/learning"
	teamscreen "github.com/abhisek/teachteam/internal/screens/team"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/components"
	"github.com/abhisek/teachteam/internal/ui/layout"
	"github.com/abhisek/teachteam/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
	sess *session.Session
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. All screens it opens share sess.
func New(team *agents.Team, sess *session.Session, exportDir string) *HomeScreen {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}

	items := []components.MenuItem{
		{
			Label:       "Learning Team",
			Key:         "l",
			Description: "Pick a topic and get a knowledge base, roadmap, resources and practice.",
			Action:      func() tea.Cmd { return push(learning.New(team, sess, exportDir)) },
		},
		{
			Label:       "Chat Assistant",
			Key:         "c",
			Description: "Talk through anything with a general AI assistant.",
			Action:      func() tea.Cmd { return push(chat.New(team, sess)) },
		},
		{
			Label:       "Meet the Team",
			Key:         "t",
			Description: "See what each agent does.",
			Action:      func() tea.Cmd { return push(teamscreen.New(team.SearchEnabled())) },
		},
		{
			Label:  "Quit",
			Key:    "q",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
		sess: sess,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	v := h.sess.Snapshot()
	cw := min(width-4, 64)

	var sections []string
	sections = append(sections, theme.Title.Render("AI Teaching Agent Team"))
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, theme.Subtitle.Render("Professor · Advisor · Librarian · Assistant"))
	}

	var card strings.Builder
	card.WriteString(theme.Body.Render(learning.Summary(v)))
	card.WriteString("\n")
	card.WriteString(components.NewProgressBar("Progress", v.Progress, true, cw-4).View())
	card.WriteString("\n")
	card.WriteString(theme.ToneStyle(v.Encouragement.Tone).Render(v.Encouragement.Message))
	sections = append(sections, theme.Card.Width(cw).Render(card.String()))

	sections = append(sections, h.menu.View())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
