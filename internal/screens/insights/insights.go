package insights

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/insights"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/ui/components"
	"github.com/abhisek/fluence/internal/ui/layout"
	"github.com/abhisek/fluence/internal/ui/theme"
)

// Deps are the insights screen's data sources.
type Deps struct {
	State *game.State
	Bank  []*question.Question
}

// InsightsScreen renders the learning analytics report.
type InsightsScreen struct {
	deps   Deps
	report *insights.Report
}

var _ screen.Screen = (*InsightsScreen)(nil)
var _ screen.KeyHintProvider = (*InsightsScreen)(nil)

// New creates the insights screen.
func New(deps Deps) *InsightsScreen {
	return &InsightsScreen{deps: deps}
}

func (s *InsightsScreen) Init() tea.Cmd {
	st := s.deps.State
	s.report = insights.BuildReport(st.Performance, st.HighestScore, st.HighestStreak)
	return nil
}

func (s *InsightsScreen) Title() string {
	return "Insights"
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *InsightsScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Your progress"))
	b.WriteString("\n\n")

	overview := fmt.Sprintf("Answered: %d        Accuracy: %s        Best streak: %d",
		r.Overview.TotalQuestions, r.Overview.Accuracy, r.Overview.BestStreak)
	b.WriteString(center.Foreground(theme.Text).Render(overview))
	b.WriteString("\n\n")

	if r.Overview.TotalQuestions == 0 {
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Play a few rounds to unlock your insights."))
		b.WriteString("\n")
		return b.String()
	}

	if len(r.Strengths) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label.Render("Strengths")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, tc := range r.Strengths {
			line := fmt.Sprintf("  %-16s %d correct", tc.Topic, tc.Count)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Success).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Improvements) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label.Render("Needs work")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, tc := range r.Improvements {
			line := fmt.Sprintf("  %-16s %d missed", tc.Topic, tc.Count)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label.Render("Mastery by topic")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, tc := range insights.TopicMastery(s.deps.Bank) {
		bar := components.NewProgressBar(fmt.Sprintf("%-16s", tc.Topic),
			float64(tc.Count)/100, true, min(width-12, 56))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
