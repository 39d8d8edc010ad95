package learning

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/ui/components"
	"github.com/abhisek/teachteam/internal/ui/layout"
	"github.com/abhisek/teachteam/internal/ui/markdown"
	"github.com/abhisek/teachteam/internal/ui/theme"
)

const panelWidth = 34

// tabBody returns the Markdown shown on tab i.
func (s *Screen) tabBody(i int) string {
	c := s.sess.Content
	if i == len(tabLabels) {
		return s.answer
	}
	if c == nil {
		return ""
	}
	switch i {
	case 0:
		return c.KnowledgeBase
	case 1:
		return c.Roadmap
	case 2:
		return c.Resources
	case 3:
		return c.Practice
	}
	return ""
}

// refreshView loads the active tab into the viewport.
func (s *Screen) refreshView() {
	w := s.view.Width()
	if w <= 0 {
		return
	}
	if w != s.renderedWidth {
		s.rendered = map[int]string{}
		s.renderedWidth = w
	}
	body, ok := s.rendered[s.tabs.Active]
	if !ok {
		body = markdown.Render(s.tabBody(s.tabs.Active), w-2)
		s.rendered[s.tabs.Active] = body
	}
	s.view.SetContent(body)
	s.view.GotoTop()
}

func (s *Screen) View(width, height int) string {
	if s.mode == modeTopic && !s.busy {
		return s.renderTopicInput(width, height)
	}

	panelW := panelWidth
	if layout.IsCompactWidth(width) {
		panelW = 0
	}
	mainW := width - panelW - 1

	bottom := s.renderBottom(mainW)
	vpHeight := height - 2 - lipgloss.Height(bottom) - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	if s.view.Width() != mainW || s.view.Height() != vpHeight {
		s.view.SetWidth(mainW)
		s.view.SetHeight(vpHeight)
		s.refreshView()
	}

	var main string
	if s.busy && s.sess.Content == nil {
		main = lipgloss.Place(mainW, vpHeight+2, lipgloss.Center, lipgloss.Center, s.spinner.View()+" "+s.working)
	} else {
		main = s.tabs.View(mainW) + "\n" + s.view.View()
	}
	main = lipgloss.JoinVertical(lipgloss.Left, main, "", bottom)

	if panelW == 0 {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, " ", s.renderPanel(panelW, height))
}

func (s *Screen) renderTopicInput(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Meet your teaching team"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Four AI agents will build a knowledge base, a roadmap, resources and practice for you."))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Learning style: "))
	b.WriteString(theme.Body.Render(string(s.sess.LearningStyle)))
	b.WriteString(theme.Hint.Render("  (Tab to change)"))
	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(s.renderStatus())
	}

	card := theme.Card.Width(min(width-4, 80)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) renderBottom(width int) string {
	var lines []string
	switch {
	case s.busy:
		lines = append(lines, s.spinner.View()+" "+theme.Hint.Render(s.working))
	case s.mode == modePrompt:
		lines = append(lines, s.input.View())
	}
	if s.status != "" {
		lines = append(lines, s.renderStatus())
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("Quiz: "+s.sess.QuizQuestion))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (s *Screen) renderStatus() string {
	if s.tone == "" {
		return theme.StatusErr.Render(s.status)
	}
	return theme.ToneStyle(s.tone).Render(s.status)
}

func (s *Screen) renderPanel(width, height int) string {
	v := s.sess.Snapshot()
	inner := width - 4

	var b strings.Builder
	b.WriteString(theme.Label.Render("Progress"))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", v.Progress, true, inner).View())
	b.WriteString("\n")
	b.WriteString(theme.ToneStyle(v.Encouragement.Tone).Width(inner).Render(v.Encouragement.Message))
	b.WriteString("\n\n")

	b.WriteString(field("Points", fmt.Sprintf("%d", v.Points)))
	b.WriteString(field("Level", fmt.Sprintf("%d (%d to next)", v.Level, v.PointsToNextLevel)))
	b.WriteString(field("Style", string(v.LearningStyle)))
	b.WriteString(field("Group", v.StudyGroup))
	b.WriteString(field("Section", v.CurrentSection))
	b.WriteString("\n")

	b.WriteString(theme.Label.Render("Badges"))
	b.WriteString("\n")
	if len(v.BadgeLabels) == 0 {
		b.WriteString(theme.Hint.Render("none yet"))
		b.WriteString("\n")
	}
	for _, l := range v.BadgeLabels {
		b.WriteString(theme.Body.Render(l))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Label.Render("Completed"))
	b.WriteString("\n")
	if len(v.CompletedSections) == 0 {
		b.WriteString(theme.Hint.Render("nothing yet"))
		b.WriteString("\n")
	}
	for _, c := range v.CompletedSections {
		b.WriteString(theme.StatusOK.Render("✓ ") + theme.Body.Render(c))
		b.WriteString("\n")
	}

	return theme.Panel.Width(width - 2).MaxHeight(height).Render(strings.TrimRight(b.String(), "\n"))
}

func field(label, value string) string {
	return theme.Subtitle.Render(fmt.Sprintf("%-8s", label)) + theme.Body.Render(value) + "\n"
}

// Summary is the one-line tracker summary used on the home screen.
func Summary(v session.View) string {
	topic := v.Topic
	if topic == "" {
		topic = "no topic yet"
	}
	return fmt.Sprintf("%s · %d%% · %d pts · level %d", topic, v.Progress, v.Points, v.Level)
}
