// Package screen declares what the router needs from a TUI screen, plus the
// optional capabilities the app frame looks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/teachteam/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body area only; the frame owns header and footer.
	View(width, height int) string

	// Title names the screen in the header trail. Empty hides it.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens receive Esc themselves while CapturingInput is true.
type InputCapturer interface {
	CapturingInput() bool
}

// BusyReporter screens are waiting on the teaching team. The frame will not
// navigate away from them, or the reply would land on another screen.
type BusyReporter interface {
	Busy() bool
}
