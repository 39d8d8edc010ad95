// Package chat is the Chat Assistant screen.
package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/screen"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/components"
	"github.com/abhisek/teachteam/internal/ui/layout"
	"github.com/abhisek/teachteam/internal/ui/markdown"
	"github.com/abhisek/teachteam/internal/ui/theme"
)

// replyMsg carries the session clone the message was sent on.
type replyMsg struct {
	Session *session.Session
	Err     error
}

// Screen shows the chat transcript above an input line.
type Screen struct {
	team *agents.Team
	sess *session.Session

	input   components.TextInput
	view    viewport.Model
	spinner spinner.Model

	pending string
	status  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the chat screen over the shared session.
func New(team *agents.Team, sess *session.Session) *Screen {
	s := &Screen{
		team:    team,
		sess:    sess,
		input:   components.NewTextInput("", "Ask me anything...", 0),
		view:    viewport.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
	s.view.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Chat Assistant"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Busy reports a reply in flight.
func (s *Screen) Busy() bool {
	return s.pending != ""
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.Busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case replyMsg:
		s.pending = ""
		// The clone holds the user entry even when the reply failed.
		*s.sess = *msg.Session
		if msg.Err != nil {
			s.status = "Error: " + msg.Err.Error()
		}
		s.refresh()
		return s, nil

	case tea.KeyPressMsg:
		if s.Busy() {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "ctrl+l":
			s.sess.ClearChat()
			s.status = session.MsgChatCleared
			s.refresh()
			return s, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			s.view, cmd = s.view.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send runs the message against a clone so the live transcript only
// changes once the reply is in.
func (s *Screen) send() tea.Cmd {
	text := s.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	s.input.Reset()
	s.status = ""
	s.pending = text
	s.refresh()

	clone := s.sess.Clone()
	team := s.team
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		_, err := clone.SendChatMessage(context.Background(), team, text)
		return replyMsg{Session: clone, Err: err}
	})
}

func (s *Screen) refresh() {
	w := s.view.Width()
	if w <= 0 {
		return
	}
	s.view.SetContent(s.transcript(w))
	s.view.GotoBottom()
}

func (s *Screen) transcript(width int) string {
	you := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You")
	ai := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("AI")

	var parts []string
	for _, e := range s.sess.ChatHistory {
		if e.Role == session.RoleUser {
			parts = append(parts, you+"\n"+theme.Body.Width(width).Render(e.Text))
		} else {
			parts = append(parts, ai+"\n"+markdown.Render(e.Text, width-2))
		}
	}
	if s.pending != "" {
		parts = append(parts, you+"\n"+theme.Body.Width(width).Render(s.pending))
		parts = append(parts, ai+"\n"+s.spinner.View()+theme.Hint.Render(" thinking..."))
	}
	if len(parts) == 0 {
		return theme.Hint.Render("Start a conversation with your AI assistant.")
	}
	return strings.Join(parts, "\n\n")
}

func (s *Screen) View(width, height int) string {
	inputView := s.input.View()
	bottom := inputView
	if s.status != "" {
		style := theme.StatusOK
		if strings.HasPrefix(s.status, "Error:") {
			style = theme.StatusErr
		}
		bottom = style.Render(s.status) + "\n" + inputView
	}

	vpHeight := height - lipgloss.Height(bottom) - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	if s.view.Width() != width || s.view.Height() != vpHeight {
		s.view.SetWidth(width)
		s.view.SetHeight(vpHeight)
		s.refresh()
	}
	if s.Busy() {
		// Keep the spinner frame current.
		s.view.SetContent(s.transcript(width))
		s.view.GotoBottom()
	}

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
	return s.view.View() + "\n" + rule + "\n" + bottom
}
