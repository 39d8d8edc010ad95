package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Header is the learner's standing plus the navigation trail.
type Header struct {
	Trail  []string
	Points int
	Level  int
	Badges int
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Warning).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The team needs more room.\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// Render draws the header bar. Trail entries are joined left to right;
// when the bar is narrow only the last entry is kept.
func (h Header) Render(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  TeachTeam")

	stats := []string{
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ %d pts", h.Points)),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("Level %d", h.Level)),
	}
	if h.Badges > 0 {
		stats = append(stats, lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%d badges", h.Badges)))
	}
	right := strings.Join(stats, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · "))

	inner := max(width-4, 0)
	trail := h.trail(inner - lipgloss.Width(brand) - lipgloss.Width(right) - 4)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(trail)

	gap := inner - lipgloss.Width(brand) - lipgloss.Width(center) - lipgloss.Width(right)
	leftGap := max(gap/2, 1)
	rightGap := max(gap-leftGap, 1)

	content := brand + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return bar(content, width)
}

func (h Header) trail(room int) string {
	if len(h.Trail) == 0 {
		return ""
	}
	full := strings.Join(h.Trail, " › ")
	if lipgloss.Width(full) <= room {
		return full
	}
	return h.Trail[len(h.Trail)-1]
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// BodyHeight is what remains of height once header and footer are drawn.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(content)

	return header + "\n" + body + "\n" + footer
}
