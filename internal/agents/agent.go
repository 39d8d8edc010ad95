// Package agents defines the teaching team and the calls that put it to
// work against a generation provider.
package agents

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ID identifies a team member.
type ID string

const (
	Professor         ID = "professor"
	AcademicAdvisor   ID = "academic-advisor"
	ResearchLibrarian ID = "research-librarian"
	TeachingAssistant ID = "teaching-assistant"
	ChatAssistant     ID = "assistant"
)

// Agent is a named persona with fixed instructions.
type Agent struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Instructions []string `json:"instructions"`
	Temperature  float64  `json:"temperature"`
	UsesSearch   bool     `json:"uses_search"`

	// Purpose labels the agent's calls in the audit log.
	Purpose string `json:"-"`
}

const defaultTemperature = 0.2

// Roster returns the four teaching agents in presentation order.
func Roster() []Agent {
	return []Agent{
		{
			ID:   Professor,
			Name: "Professor",
			Role: "Research and Knowledge Specialist",
			Instructions: []string{
				"Create a comprehensive knowledge base that covers fundamental concepts, advanced topics, and current developments of the given topic.",
				"Explain the topic from first principles first. Include key terminology, core principles, and practical applications and make it as a detailed report that anyone who's starting out can read and get maximum value out of it.",
				"Make sure it is formatted in a way that is easy to read and understand.",
			},
			Temperature: defaultTemperature,
			Purpose:     string(Professor),
		},
		{
			ID:   AcademicAdvisor,
			Name: "Academic Advisor",
			Role: "Learning Path Designer",
			Instructions: []string{
				"Using the knowledge base for the given topic, create a detailed learning roadmap.",
				"Break down the topic into logical subtopics and arrange them in order of progression, a detailed report of roadmap that includes all the subtopics in order to be an expert in this topic.",
				"Include estimated time commitments for each section.",
				"Present the roadmap in a clear, structured format.",
			},
			Temperature: defaultTemperature,
			Purpose:     string(AcademicAdvisor),
		},
		{
			ID:   ResearchLibrarian,
			Name: "Research Librarian",
			Role: "Learning Resource Specialist",
			Instructions: []string{
				"Make a list of high-quality learning resources for the given topic.",
				"Use the web search results provided to find current and relevant learning materials.",
				"Include technical blogs, GitHub repositories, official documentation, video tutorials, and courses.",
				"Present the resources in a curated list with descriptions and quality assessments.",
			},
			Temperature: defaultTemperature,
			UsesSearch:  true,
			Purpose:     string(ResearchLibrarian),
		},
		{
			ID:   TeachingAssistant,
			Name: "Teaching Assistant",
			Role: "Exercise Creator",
			Instructions: []string{
				"Create comprehensive practice materials for the given topic.",
				"Use the web search results provided to find example problems and real-world applications.",
				"Include progressive exercises, quizzes, hands-on projects, and real-world application scenarios.",
				"Ensure the materials align with the roadmap progression.",
				"Provide detailed solutions and explanations for all practice materials.",
			},
			Temperature: defaultTemperature,
			UsesSearch:  true,
			Purpose:     string(TeachingAssistant),
		},
	}
}

// chatAgent backs the chat screen. It is not part of the roster.
var chatAgent = Agent{
	ID:          ChatAssistant,
	Name:        "AI Assistant",
	Role:        "Helpful Learning Companion",
	Temperature: 0.7,
	Purpose:     "chat",
}

// Lookup finds a roster agent by ID or by name, case-insensitively.
func Lookup(key string) (Agent, bool) {
	key = strings.TrimSpace(key)
	return lo.Find(Roster(), func(a Agent) bool {
		return strings.EqualFold(string(a.ID), key) || strings.EqualFold(a.Name, key)
	})
}

// IDs lists the roster IDs in order.
func IDs() []ID {
	return lo.Map(Roster(), func(a Agent, _ int) ID { return a.ID })
}

// SystemPrompt renders the agent persona for the generation service.
func (a Agent) SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are the " + a.Name + ", " + a.Role + ".\n")
	if len(a.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, in := range a.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, in)
		}
	}
	b.WriteString("\nRespond in Markdown.")
	return b.String()
}
