// Package team is the Meet the Team screen.
package team

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/screen"
	"github.com/abhisek/teachteam/internal/ui/markdown"
)

// Screen describes the four agents.
type Screen struct {
	searchEnabled bool
	view          viewport.Model
	width         int
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen. searchEnabled reports whether the librarian and
// assistant have a web search tool.
func New(searchEnabled bool) *Screen {
	return &Screen{searchEnabled: searchEnabled, view: viewport.New()}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Meet the Team" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.view, cmd = s.view.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	s.view.SetHeight(height)
	if width != s.width {
		s.width = width
		s.view.SetWidth(width)
		s.view.SetContent(markdown.Render(Document(s.searchEnabled), width-2))
	}
	return s.view.View()
}

// Document renders the roster as Markdown.
func Document(searchEnabled bool) string {
	var b strings.Builder
	b.WriteString("# Your Teaching Team\n\n")
	for _, a := range agents.Roster() {
		fmt.Fprintf(&b, "## %s\n\n*%s*\n\n", a.Name, a.Role)
		for _, in := range a.Instructions {
			fmt.Fprintf(&b, "- %s\n", in)
		}
		if a.UsesSearch {
			if searchEnabled {
				b.WriteString("\nUses web search to find current material.\n")
			} else {
				b.WriteString("\nWeb search is disabled; answers come from the model alone.\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
