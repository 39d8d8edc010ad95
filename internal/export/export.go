// Package export renders a learning session as a Markdown document ready to
// paste into an external notes tool.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abhisek/teachteam/internal/session"
)

// Target is an external destination for exported content.
type Target string

const (
	GoogleDocs Target = "google-docs"
	Notion     Target = "notion"
)

var ErrUnknownTarget = errors.New("unknown export target")

// ParseTarget accepts the target names and a few spellings of them.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google-docs", "googledocs", "google", "gdocs", "docs":
		return GoogleDocs, nil
	case "notion":
		return Notion, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Label is the display name of the target.
func (t Target) Label() string {
	if t == Notion {
		return "Notion"
	}
	return "Google Docs"
}

// Hint tells the user how to finish the export by hand.
func (t Target) Hint() string {
	if t == Notion {
		return "Exporting to Notion... (Copy content and paste into your Notion page)"
	}
	return "Exporting to Google Docs... (Copy content and paste into your Google Doc)"
}

// Document is a rendered export.
type Document struct {
	Target   Target `json:"target"`
	Filename string `json:"filename"`
	Hint     string `json:"hint"`
	Markdown string `json:"markdown"`
}

// Markdown renders the learner summary followed by the generated documents.
// content may be nil when nothing has been generated yet.
func Markdown(view session.View, content *session.Content, target Target) Document {
	var b strings.Builder

	title := view.Topic
	if title == "" {
		title = "Learning Session"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Learner Summary\n\n")
	fmt.Fprintf(&b, "- **Learning style:** %s\n", view.LearningStyle)
	fmt.Fprintf(&b, "- **Progress:** %d%%\n", view.Progress)
	fmt.Fprintf(&b, "- **Points:** %d (Level %d)\n", view.Points, view.Level)
	if len(view.BadgeLabels) > 0 {
		fmt.Fprintf(&b, "- **Badges:** %s\n", strings.Join(view.BadgeLabels, ", "))
	} else {
		b.WriteString("- **Badges:** none yet\n")
	}
	fmt.Fprintf(&b, "- **Study group:** %s\n", view.StudyGroup)
	if len(view.CompletedSections) > 0 {
		b.WriteString("\n### Completed Sections\n\n")
		for _, s := range view.CompletedSections {
			fmt.Fprintf(&b, "- [x] %s\n", s)
		}
	}

	if content != nil {
		sections := []struct{ heading, body string }{
			{"Knowledge Base", content.KnowledgeBase},
			{"Learning Roadmap", content.Roadmap},
			{"Learning Resources", content.Resources},
			{"Practice Materials", content.Practice},
		}
		for _, s := range sections {
			fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.heading, strings.TrimSpace(s.body))
		}
	}

	return Document{
		Target:   target,
		Filename: Filename(title, target),
		Hint:     target.Hint(),
		Markdown: b.String(),
	}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds a file name such as "rust-basics-notion.md".
func Filename(topic string, target Target) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if slug == "" {
		slug = "learning-session"
	}
	return slug + "-" + string(target) + ".md"
}

// WriteFile writes doc into dir and returns the path written.
func WriteFile(dir string, doc Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, []byte(doc.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
