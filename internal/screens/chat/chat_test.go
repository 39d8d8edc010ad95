package chat

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/session"
)

func replyFrom(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			if m, ok := c().(replyMsg); ok {
				return m
			}
		}
	}
	t.Fatal("command did not produce a reply")
	return replyMsg{}
}

func newTestScreen(p llm.Provider) (*Screen, *session.Session) {
	sess := session.New(badges.DefaultRules())
	s := New(agents.NewTeam(p, nil, nil), sess)
	s.View(100, 30)
	return s, sess
}

func TestSendAndReply(t *testing.T) {
	s, sess := newTestScreen(llm.NewMockProvider(llm.TextResponse("A slice is a view over an array.")))

	s.input.Model.SetValue("What is a slice?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.Busy() {
		t.Fatal("screen should wait for the reply")
	}
	if len(sess.ChatHistory) != 0 {
		t.Fatal("live session must not change before the reply arrives")
	}
	if !strings.Contains(s.View(100, 30), "thinking") {
		t.Error("pending message should show a thinking indicator")
	}

	s.Update(replyFrom(t, cmd))
	if s.Busy() {
		t.Error("screen should be idle after the reply")
	}
	if len(sess.ChatHistory) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(sess.ChatHistory))
	}
	if sess.ChatHistory[1].Text != "A slice is a view over an array." {
		t.Errorf("reply = %q", sess.ChatHistory[1].Text)
	}
}

func TestBlankMessageIgnored(t *testing.T) {
	s, _ := newTestScreen(llm.NewMockProvider())
	s.input.Model.SetValue("   ")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || s.Busy() {
		t.Error("blank message should not be sent")
	}
}

func TestFailedReplyKeepsUserEntry(t *testing.T) {
	s, sess := newTestScreen(llm.NewMockProvider(llm.MockResponse{Err: errors.New("offline")}))

	s.input.Model.SetValue("hello")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(replyFrom(t, cmd))

	if len(sess.ChatHistory) != 1 || sess.ChatHistory[0].Role != session.RoleUser {
		t.Fatalf("history = %+v", sess.ChatHistory)
	}
	if !strings.HasPrefix(s.status, "Error:") {
		t.Errorf("status = %q", s.status)
	}
}

func TestCtrlLClears(t *testing.T) {
	s, sess := newTestScreen(llm.NewMockProvider())
	sess.ChatHistory = []session.ChatEntry{{Role: session.RoleUser, Text: "hi"}}

	s.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if len(sess.ChatHistory) != 0 {
		t.Errorf("history not cleared: %+v", sess.ChatHistory)
	}
	if s.status != session.MsgChatCleared {
		t.Errorf("status = %q", s.status)
	}
}
