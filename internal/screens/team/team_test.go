package team

import (
	"strings"
	"testing"
)

func TestDocumentListsAgents(t *testing.T) {
	doc := Document(true)
	for _, name := range []string{"Professor", "Academic Advisor", "Research Librarian", "Teaching Assistant"} {
		if !strings.Contains(doc, "## "+name) {
			t.Errorf("missing %s", name)
		}
	}
	if strings.Count(doc, "Uses web search") != 2 {
		t.Errorf("expected two search-backed agents:\n%s", doc)
	}
	if !strings.Contains(Document(false), "Web search is disabled") {
		t.Error("disabled search should be noted")
	}
}

func TestViewRenders(t *testing.T) {
	s := New(false)
	if out := s.View(90, 30); !strings.Contains(out, "Teaching Team") {
		t.Errorf("view missing heading: %q", out)
	}
}
