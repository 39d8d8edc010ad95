package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/ui/theme"
)

// Tabs is a horizontal tab strip.
type Tabs struct {
	Labels []string
	Active int
}

// Next selects the next tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active + 1) % len(t.Labels)
}

// Prev selects the previous tab, wrapping around.
func (t *Tabs) Prev() {
	if len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
}

// Select activates tab i when it exists.
func (t *Tabs) Select(i int) {
	if i >= 0 && i < len(t.Labels) {
		t.Active = i
	}
}

// View renders the strip followed by a rule of the given width.
func (t Tabs) View(width int) string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return strip + "\n" + rule
}
