package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestHeaderRender(t *testing.T) {
	out := Header{Trail: []string{"Home", "Chat Assistant"}, Points: 35, Level: 2}.Render(100)
	for _, want := range []string{"TeachTeam", "Home › Chat Assistant", "35 pts", "Level 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(out, "badges") {
		t.Error("badge count should be hidden when zero")
	}

	out = Header{Trail: []string{"Home"}, Points: 120, Level: 3, Badges: 1}.Render(100)
	if !strings.Contains(out, "1 badges") {
		t.Error("header missing badge count")
	}
}

func TestHeaderTrailCollapsesWhenNarrow(t *testing.T) {
	h := Header{Trail: []string{"Home", "Learning: A very long topic name about distributed consensus"}}
	if got := h.trail(20); got != h.Trail[1] {
		t.Errorf("trail(20) = %q, want last entry only", got)
	}
	if got := h.trail(200); !strings.HasPrefix(got, "Home › ") {
		t.Errorf("trail(200) = %q, want full trail", got)
	}
	if got := (Header{}).trail(50); got != "" {
		t.Errorf("empty trail = %q", got)
	}
}

func TestBodyHeight(t *testing.T) {
	header := Header{Trail: []string{"Home"}}.Render(90)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 90)

	want := 30 - lipgloss.Height(header) - lipgloss.Height(footer)
	if got := BodyHeight(header, footer, 30); got != want {
		t.Errorf("BodyHeight = %d, want %d", got, want)
	}
	if got := BodyHeight(header, footer, 2); got != 0 {
		t.Errorf("BodyHeight should clamp at zero, got %d", got)
	}
}

func TestSizeThresholds(t *testing.T) {
	if !IsTooSmall(79, 30) || !IsTooSmall(100, 23) || IsTooSmall(80, 24) {
		t.Error("unexpected minimum size check")
	}
	if !IsCompactWidth(99) || IsCompactWidth(100) {
		t.Error("unexpected compact width threshold")
	}
	if !IsCompactHeight(29) || IsCompactHeight(30) {
		t.Error("unexpected compact height threshold")
	}
}
