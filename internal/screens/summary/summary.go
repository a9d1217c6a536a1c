package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/insights"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	insightsscreen "github.com/abhisek/fluence/internal/screens/insights"
	"github.com/abhisek/fluence/internal/ui/layout"
	"github.com/abhisek/fluence/internal/ui/theme"
)

// reportPollInterval is how often the screen checks for the AI report.
const reportPollInterval = 300 * time.Millisecond

// reportPollMsg checks whether the async session report has landed.
type reportPollMsg struct{}

// Deps are the summary screen's collaborators.
type Deps struct {
	State  *game.State
	Bank   []*question.Question
	Review *review.Service

	// Restart returns the navigation message for a fresh run.
	Restart func() tea.Msg
}

// SummaryScreen shows the end-of-run results.
type SummaryScreen struct {
	deps Deps

	report        string
	reportPending bool
	copied        bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a finished run.
func New(deps Deps) *SummaryScreen {
	return &SummaryScreen{
		deps:          deps,
		reportPending: deps.Review.Enabled(),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	if !s.reportPending {
		return nil
	}
	return reportPollCmd()
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Play again"},
		{Key: "I", Description: "Insights"},
		{Key: "C", Description: "Copy share text"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportPollMsg:
		if !s.reportPending {
			return s, nil
		}
		if report, ok := s.deps.Review.ConsumeReport(); ok {
			s.report = report
			s.reportPending = false
			return s, nil
		}
		return s, reportPollCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r", "R":
			if s.deps.Restart != nil {
				return s, tea.Sequence(
					func() tea.Msg { return router.PopToRootMsg{} },
					s.deps.Restart,
				)
			}
		case "i", "I":
			deps := s.deps
			return s, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: insightsscreen.New(insightsscreen.Deps{
						State: deps.State,
						Bank:  deps.Bank,
					}),
				}
			}
		case "c", "C":
			if err := clipboard.WriteAll(s.shareText()); err == nil {
				s.copied = true
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.deps.State
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Run complete!"))
	b.WriteString("\n\n")

	accuracy := 0.0
	if st.Answered > 0 {
		accuracy = float64(st.Score) / float64(st.Answered) * 100
	}

	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(rating(accuracy)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %d        Best streak: %d        Accuracy: %.0f%%",
		st.Score, st.MaxStreak, accuracy)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	bestLine := fmt.Sprintf("All-time best: %d points · %d streak", st.HighestScore, st.HighestStreak)
	b.WriteString(center.Foreground(theme.TextDim).Render(bestLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Insights")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	lines := insights.Lines(st.Performance, s.deps.Bank, st.MaxStreak, time.Now())
	for _, line := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.reportPending || s.report != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Coach")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		if s.reportPending {
			b.WriteString(center.Foreground(theme.TextDim).Italic(true).
				Render("Writing your session report..."))
			b.WriteString("\n")
		} else {
			report := lipgloss.NewStyle().
				Width(min(width-8, 70)).
				Foreground(theme.Secondary).
				Render(s.report)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, report))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.copied {
		b.WriteString(center.Foreground(theme.Success).Render("Share text copied to clipboard!"))
		b.WriteString("\n")
	}

	return b.String()
}

// shareText builds the clipboard blurb for bragging rights.
func (s *SummaryScreen) shareText() string {
	st := s.deps.State
	return fmt.Sprintf(
		"I scored %d points with a %d answer streak playing Fluence, the Hindi-English vocabulary quiz! Can you beat me?",
		st.Score, st.MaxStreak)
}

// rating maps run accuracy to a headline.
func rating(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "Outstanding!"
	case accuracy >= 70:
		return "Great job!"
	case accuracy >= 50:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}

func reportPollCmd() tea.Cmd {
	return tea.Tick(reportPollInterval, func(time.Time) tea.Msg {
		return reportPollMsg{}
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
