package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/router"
	"github.com/abhisek/teachteam/internal/session"
)

func newTestHome(t *testing.T) *HomeScreen {
	t.Helper()
	team := agents.NewTeam(llm.NewEchoProvider(), nil, nil)
	return New(team, session.New(badges.DefaultRules()), t.TempDir())
}

func TestMenuPushesScreens(t *testing.T) {
	tests := []struct {
		downs int
		title string
	}{
		{0, "Learning Team"},
		{1, "Chat Assistant"},
		{2, "Meet the Team"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			h := newTestHome(t)
			for i := 0; i < tt.downs; i++ {
				h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
			}
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("enter should produce a command")
			}
			push, ok := cmd().(router.PushScreenMsg)
			if !ok {
				t.Fatalf("expected PushScreenMsg, got %T", cmd())
			}
			if push.Screen.Title() != tt.title {
				t.Errorf("pushed %q, want %q", push.Screen.Title(), tt.title)
			}
		})
	}
}

func TestShortcutKeys(t *testing.T) {
	h := newTestHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if cmd == nil {
		t.Fatal("c should open the chat assistant")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok || push.Screen.Title() != "Chat Assistant" {
		t.Fatalf("expected chat push, got %T", cmd())
	}

	_, cmd = h.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestViewShowsSummary(t *testing.T) {
	h := newTestHome(t)
	h.sess.SetTopic("Go")
	h.sess.SubmitQuizAnswer("x")

	out := h.View(100, 30)
	for _, want := range []string{"Go", "10 pts", "Keep going!"} {
		if !strings.Contains(out, want) {
			t.Errorf("home view missing %q", want)
		}
	}
}
