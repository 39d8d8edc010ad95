package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/ui/theme"
)

var teachArt = []string{
	"████████╗███████╗ █████╗  ██████╗██╗  ██╗",
	"╚══██╔══╝██╔════╝██╔══██╗██╔════╝██║  ██║",
	"   ██║   █████╗  ███████║██║     ███████║",
	"   ██║   ██╔══╝  ██╔══██║██║     ██╔══██║",
	"   ██║   ███████╗██║  ██║╚██████╗██║  ██║",
	"   ╚═╝   ╚══════╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝",
}

const bannerCompact = "T E A C H T E A M"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 46

// RenderBanner draws TEACH in block letters with a spaced TEAM beneath it.
// The top half is in the primary colour and the bottom half in the
// secondary one. Narrow terminals get a single-line fallback.
func RenderBanner(width int) string {
	if width < bannerMinWidth {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(bannerCompact)
	}

	top := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	bottom := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	lines := make([]string, 0, len(teachArt)+1)
	for i, row := range teachArt {
		style := top
		if i >= len(teachArt)/2 {
			style = bottom
		}
		lines = append(lines, style.Render(row))
	}
	team := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Width(lipgloss.Width(teachArt[0])).
		Align(lipgloss.Center).
		Render("T  E  A  M")
	lines = append(lines, team)
	return strings.Join(lines, "\n")
}
