// Package learning is the Learning Team screen: topic entry, the four
// generated documents and the progress tracker actions.
package learning

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/export"
	"github.com/abhisek/teachteam/internal/screen"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/components"
	"github.com/abhisek/teachteam/internal/ui/layout"
	"github.com/abhisek/teachteam/internal/ui/theme"
	"github.com/abhisek/teachteam/internal/upload"
)

type mode int

const (
	modeTopic mode = iota
	modeBrowse
	modePrompt
)

// prompt identifies what the input line is collecting.
type prompt int

const (
	promptQuiz prompt = iota
	promptNote
	promptReview
	promptAssignment
	promptAsk
	promptGroup
	promptSection
)

var promptLabels = map[prompt]string{
	promptQuiz:       "Your answer",
	promptNote:       "Share a note with your study group",
	promptReview:     "Peer review",
	promptAssignment: "Assignment (text, or @path to a .txt/.md/.pdf file)",
	promptAsk:        "Ask the team (agent: question)",
	promptGroup:      "Study group name",
	promptSection:    "Section you are working on",
}

const progressStep = 5

var tabLabels = []string{"Professor", "Advisor", "Librarian", "Assistant"}

// Screen is the Learning Team screen.
type Screen struct {
	team      *agents.Team
	sess      *session.Session
	exportDir string

	mode    mode
	prompt  prompt
	input   components.TextInput
	tabs    components.Tabs
	view    viewport.Model
	spinner spinner.Model

	busy    bool
	working string
	status  string
	tone    session.Tone
	answer  string

	// rendered caches tab bodies at renderedWidth.
	rendered      map[int]string
	renderedWidth int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

// New creates the screen. Exports are written to exportDir.
func New(team *agents.Team, sess *session.Session, exportDir string) *Screen {
	s := &Screen{
		team:      team,
		sess:      sess,
		exportDir: exportDir,
		tabs:      components.Tabs{Labels: append([]string{}, tabLabels...)},
		view:      viewport.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		rendered:  map[int]string{},
	}
	s.view.KeyMap = scrollKeys()

	if sess.Content != nil && sess.Content.Topic == sess.Topic {
		s.mode = modeBrowse
	} else {
		s.startTopicInput()
	}
	return s
}

// scrollKeys limits the viewport to keys that do not collide with actions.
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
		Left:         key.NewBinding(key.WithKeys("left")),
		Right:        key.NewBinding(key.WithKeys("right")),
	}
}

func (s *Screen) Init() tea.Cmd {
	if s.mode == modeTopic {
		return s.input.Init()
	}
	return nil
}

func (s *Screen) Title() string {
	if s.sess.Topic != "" {
		return "Learning: " + s.sess.Topic
	}
	return "Learning Team"
}

func (s *Screen) Busy() bool { return s.busy }

func (s *Screen) CapturingInput() bool {
	return s.mode == modePrompt || (s.mode == modeTopic && s.sess.Content != nil)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.busy:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.mode == modeTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generate"},
			{Key: "Tab", Description: "Learning style"},
			{Key: "Esc", Description: "Back"},
		}
	case s.mode == modePrompt:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Agent"},
		{Key: "q/x", Description: "Quiz/New Q"},
		{Key: "n/r/a", Description: "Note/Review/Assignment"},
		{Key: "k", Description: "Ask"},
		{Key: "+/-", Description: "Progress"},
		{Key: "s/c/l", Description: "Group/Section/Style"},
		{Key: "m", Description: "Motivate"},
		{Key: "e/E", Description: "Export"},
		{Key: "t", Description: "Topic"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case contentMsg:
		return s.handleContent(msg)

	case sessionMsg:
		return s.handleSession(msg)

	case quizQuestionMsg:
		s.busy = false
		if msg.Err != nil {
			s.setError(msg.Err)
			return s, nil
		}
		s.sess.SetQuizQuestion(msg.Question.Question)
		s.setStatus("New quiz question: "+msg.Question.Question, session.ToneInfo)
		return s, nil

	case answerMsg:
		s.busy = false
		if msg.Err != nil {
			s.setError(msg.Err)
			return s, nil
		}
		s.answer = fmt.Sprintf("## %s\n\n**Q:** %s\n\n%s", msg.Agent.Name, msg.Question, msg.Answer)
		s.showAnswerTab()
		s.setStatus("Answer from the "+msg.Agent.Name+".", session.ToneSuccess)
		return s, nil

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch s.mode {
		case modeTopic:
			return s.handleTopicKey(msg)
		case modePrompt:
			return s.handlePromptKey(msg)
		default:
			return s.handleBrowseKey(msg)
		}
	}

	if s.mode != modeBrowse {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.view, cmd = s.view.Update(msg)
	return s, cmd
}

func (s *Screen) startTopicInput() {
	s.mode = modeTopic
	s.input = components.NewTextInput("What would you like to learn?", "e.g. Rust ownership, linear algebra", 120)
	if s.sess.Topic != "" {
		s.input.Model.SetValue(s.sess.Topic)
	}
}

func (s *Screen) startPrompt(p prompt) tea.Cmd {
	s.mode = modePrompt
	s.prompt = p
	label := promptLabels[p]
	if p == promptQuiz {
		label = s.sess.QuizQuestion
	}
	s.input = components.NewTextInput(label, "", 0)
	return s.input.Init()
}

func (s *Screen) handleTopicKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.cycleStyle()
		return s, nil
	case "esc":
		if s.sess.Content != nil {
			s.mode = modeBrowse
		}
		return s, nil
	case "enter":
		if err := s.sess.SetTopic(s.input.Value()); err != nil {
			s.setError(err)
			return s, nil
		}
		return s, s.startGenerate()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handlePromptKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeBrowse
		return s, nil
	case "enter":
		s.mode = modeBrowse
		return s.submitPrompt(s.prompt, s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleBrowseKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.tabs.Next()
		s.refreshView()
		return s, nil
	case "shift+tab":
		s.tabs.Prev()
		s.refreshView()
		return s, nil
	case "1", "2", "3", "4", "5":
		s.tabs.Select(int(msg.String()[0] - '1'))
		s.refreshView()
		return s, nil
	case "q":
		return s, s.startPrompt(promptQuiz)
	case "n":
		return s, s.startPrompt(promptNote)
	case "r":
		return s, s.startPrompt(promptReview)
	case "a":
		return s, s.startPrompt(promptAssignment)
	case "k":
		return s, s.startPrompt(promptAsk)
	case "s":
		return s, s.startPrompt(promptGroup)
	case "c":
		return s, s.startPrompt(promptSection)
	case "x":
		return s, s.startQuizQuestion()
	case "t":
		s.startTopicInput()
		return s, s.input.Init()
	case "l":
		s.cycleStyle()
		return s, nil
	case "+", "=":
		s.adjustProgress(progressStep)
		return s, nil
	case "-":
		s.adjustProgress(-progressStep)
		return s, nil
	case "m":
		s.setStatus(session.Reminder(nil), session.ToneInfo)
		return s, nil
	case "e":
		s.export(export.GoogleDocs)
		return s, nil
	case "E":
		s.export(export.Notion)
		return s, nil
	}

	var cmd tea.Cmd
	s.view, cmd = s.view.Update(msg)
	return s, cmd
}

func (s *Screen) submitPrompt(p prompt, value string) (screen.Screen, tea.Cmd) {
	switch p {
	case promptQuiz:
		out := s.sess.SubmitQuizAnswer(value)
		s.setOutcome(out)
	case promptNote:
		s.setOutcome(s.sess.ShareNote(value))
	case promptReview:
		s.setOutcome(s.sess.SubmitPeerReview(value))
	case promptGroup:
		s.sess.JoinStudyGroup(value)
		s.setStatus(session.MsgStudyGroupJoined, session.ToneSuccess)
	case promptSection:
		s.sess.SetCurrentSection(value)
		s.setStatus("Working on "+s.sess.SectionLabel()+".", session.ToneInfo)
	case promptAssignment:
		return s, s.startAssignment(value)
	case promptAsk:
		return s, s.startAsk(value)
	}
	return s, nil
}

func (s *Screen) cycleStyle() {
	styles := session.AllLearningStyles()
	next := styles[0]
	for i, st := range styles {
		if st == s.sess.LearningStyle {
			next = styles[(i+1)%len(styles)]
			break
		}
	}
	s.sess.SetLearningStyle(next)
	s.setStatus("Learning style: "+string(next), session.ToneInfo)
}

func (s *Screen) adjustProgress(delta int) {
	p := min(max(s.sess.Progress+delta, 0), 100)
	if err := s.sess.AdjustProgress(p); err != nil {
		s.setError(err)
		return
	}
	s.setStatus(session.MsgProgressAdjusted, session.ToneInfo)
}

func (s *Screen) export(target export.Target) {
	doc := export.Markdown(s.sess.Snapshot(), s.sess.Content, target)
	path, err := export.WriteFile(s.exportDir, doc)
	if err != nil {
		s.setError(fmt.Errorf("export: %w", err))
		return
	}
	s.setStatus(doc.Hint+" Saved to "+path, session.ToneSuccess)
}

// async marks the screen busy and runs fn alongside the spinner.
func (s *Screen) async(label string, fn tea.Cmd) tea.Cmd {
	s.busy = true
	s.working = label
	return tea.Batch(s.spinner.Tick, fn)
}

func (s *Screen) startGenerate() tea.Cmd {
	brief := agents.Brief{Topic: s.sess.Topic, Style: s.sess.LearningStyle, Progress: s.sess.Progress}
	team := s.team
	return s.async("The team is preparing your materials...", func() tea.Msg {
		content, err := team.GenerateAll(context.Background(), brief)
		return contentMsg{Content: content, Err: err}
	})
}

func (s *Screen) handleContent(msg contentMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.setError(msg.Err)
		return s, nil
	}
	if msg.Content.Topic != s.sess.Topic {
		return s, nil
	}
	s.sess.SetContent(*msg.Content)
	s.mode = modeBrowse
	s.answer = ""
	s.tabs = components.Tabs{Labels: append([]string{}, tabLabels...)}
	s.rendered = map[int]string{}
	s.refreshView()
	s.setStatus("Your learning materials are ready.", session.ToneSuccess)
	return s, nil
}

func (s *Screen) startQuizQuestion() tea.Cmd {
	if strings.TrimSpace(s.sess.Topic) == "" {
		s.setError(agents.ErrEmptyTopic)
		return nil
	}
	topic, section := s.sess.Topic, s.sess.SectionLabel()
	team := s.team
	return s.async("Writing a quiz question...", func() tea.Msg {
		q, err := team.QuizQuestion(context.Background(), topic, section)
		return quizQuestionMsg{Question: q, Err: err}
	})
}

// startAssignment runs feedback against a clone so the live session is
// untouched until the result arrives.
func (s *Screen) startAssignment(value string) tea.Cmd {
	content := value
	if path, ok := strings.CutPrefix(strings.TrimSpace(value), "@"); ok {
		text, decoded := readUpload(path)
		if !decoded {
			s.setStatus(upload.Placeholder, session.ToneWarning)
		}
		content = text
	}

	if strings.TrimSpace(content) == "" {
		_, err := s.sess.SubmitAssignmentForFeedback(context.Background(), s.team, content)
		s.setError(err)
		return nil
	}

	clone := s.sess.Clone()
	team := s.team
	return s.async("The Professor is reviewing your work...", func() tea.Msg {
		out, err := clone.SubmitAssignmentForFeedback(context.Background(), team, content)
		return sessionMsg{Session: clone, Outcome: out, Err: err}
	})
}

func readUpload(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > upload.MaxSize {
		return upload.Placeholder, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return upload.Placeholder, false
	}
	return upload.ExtractText(path, data)
}

func (s *Screen) handleSession(msg sessionMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.setError(msg.Err)
		return s, nil
	}
	*s.sess = *msg.Session
	s.answer = "## Assignment Feedback\n\n" + msg.Outcome.Feedback
	s.showAnswerTab()
	s.setOutcome(msg.Outcome)
	return s, nil
}

func (s *Screen) startAsk(value string) tea.Cmd {
	name, question, ok := strings.Cut(value, ":")
	if !ok {
		s.setStatus("Use the form agent: question, e.g. professor: what is a closure?", session.ToneWarning)
		return nil
	}
	agent, found := agents.Lookup(name)
	if !found {
		s.setError(fmt.Errorf("%w %q", agents.ErrUnknownAgent, strings.TrimSpace(name)))
		return nil
	}
	question = strings.TrimSpace(question)
	if question == "" {
		s.setError(agents.ErrEmptyQuestion)
		return nil
	}

	team := s.team
	return s.async("Asking the "+agent.Name+"...", func() tea.Msg {
		answer, err := team.Ask(context.Background(), string(agent.ID), question)
		return answerMsg{Agent: agent, Question: question, Answer: answer, Err: err}
	})
}

// showAnswerTab adds or refreshes the fifth tab and switches to it.
func (s *Screen) showAnswerTab() {
	if len(s.tabs.Labels) == len(tabLabels) {
		s.tabs.Labels = append(s.tabs.Labels, "Answer")
	}
	delete(s.rendered, len(tabLabels))
	s.tabs.Select(len(tabLabels))
	s.refreshView()
}

func (s *Screen) setOutcome(out session.Outcome) {
	msg := out.Message
	if out.PointsAwarded > 0 {
		msg += fmt.Sprintf(" +%d points.", out.PointsAwarded)
	}
	if out.LeveledUp {
		msg += fmt.Sprintf(" Level %d!", out.Level)
	}
	if len(out.NewBadges) > 0 {
		msg += " New badge unlocked!"
	}
	s.setStatus(msg, session.ToneSuccess)
}

func (s *Screen) setStatus(msg string, tone session.Tone) {
	s.status = msg
	s.tone = tone
}

func (s *Screen) setError(err error) {
	if err == nil {
		return
	}
	var w *session.Warning
	if errors.As(err, &w) {
		s.setStatus(w.Message, session.ToneWarning)
		return
	}
	s.status = "Error: " + err.Error()
	s.tone = ""
}
