package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/theme"
)

// ProgressBar shows topic progress. The fill takes the colour of the
// encouragement tier the percentage falls in.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

func (p ProgressBar) View() string {
	pct := min(max(p.Percent, 0), 100)

	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Label.Render(p.Label) + "  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", pct)
	}

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := cells * pct / 100

	tier := theme.ToneStyle(session.EncouragementFor(pct).Tone)
	b.WriteString(tier.Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)))
	if suffix != "" {
		b.WriteString(theme.Hint.Render(suffix))
	}
	return b.String()
}
