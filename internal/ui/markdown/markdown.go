// Package markdown renders agent output for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mu        sync.Mutex
	renderers = map[int]*glamour.TermRenderer{}
)

// renderer must be called with mu held.
func renderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = r
	return r, nil
}

// Render renders md wrapped at width. If rendering fails the source is
// returned unchanged. Renderers are cached per width and used one at a
// time.
func Render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	mu.Lock()
	defer mu.Unlock()

	r, err := renderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
