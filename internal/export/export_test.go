package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/session"
)

func sampleSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(badges.DefaultRules())
	require.NoError(t, s.SetTopic("Rust Basics"))
	s.SubmitQuizAnswer("ownership moves values")
	s.ShareNote("borrowing notes")
	return s
}

func TestParseTarget(t *testing.T) {
	for in, want := range map[string]Target{"google-docs": GoogleDocs, "GDocs": GoogleDocs, " notion ": Notion} {
		got, err := ParseTarget(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseTarget("dropbox")
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestMarkdown_WithContent(t *testing.T) {
	s := sampleSession(t)
	content := &session.Content{
		Topic:         "Rust Basics",
		KnowledgeBase: "Ownership is...",
		Roadmap:       "Week 1: syntax",
		Resources:     "- The Book",
		Practice:      "Exercise 1",
	}

	doc := Markdown(s.Snapshot(), content, Notion)

	assert.Equal(t, "rust-basics-notion.md", doc.Filename)
	assert.Equal(t, "Exporting to Notion... (Copy content and paste into your Notion page)", doc.Hint)
	assert.True(t, strings.HasPrefix(doc.Markdown, "# Rust Basics\n"))
	assert.Contains(t, doc.Markdown, "- **Progress:** 10%")
	assert.Contains(t, doc.Markdown, "- **Points:** 15 (Level 1)")
	assert.Contains(t, doc.Markdown, "- [x] Section 1")
	assert.Contains(t, doc.Markdown, "## Learning Roadmap\n\nWeek 1: syntax")

	order := []string{"## Knowledge Base", "## Learning Roadmap", "## Learning Resources", "## Practice Materials"}
	last := -1
	for _, h := range order {
		i := strings.Index(doc.Markdown, h)
		require.Greater(t, i, last, h)
		last = i
	}
}

func TestMarkdown_WithoutContent(t *testing.T) {
	doc := Markdown(session.New(badges.DefaultRules()).Snapshot(), nil, GoogleDocs)

	assert.Equal(t, "learning-session-google-docs.md", doc.Filename)
	assert.Contains(t, doc.Hint, "Google Doc")
	assert.Contains(t, doc.Markdown, "- **Badges:** none yet")
	assert.NotContains(t, doc.Markdown, "## Knowledge Base")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	doc := Markdown(sampleSession(t).Snapshot(), nil, GoogleDocs)

	path, err := WriteFile(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rust-basics-google-docs.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Markdown, string(data))
}
