package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/ui/components"
	"github.com/abhisek/fluence/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if !s.started {
		return renderLoading(width)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.state.ShowingResult {
		return s.renderFeedback(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question display.
func (s *SessionScreen) renderQuestionView(width int) string {
	q := s.state.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(s.renderTimerBar(width))
	b.WriteString("\n\n")

	topicLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("%s · %s", q.Topic, q.Difficulty))
	b.WriteString(topicLine)
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	if s.mcActive() {
		b.WriteString(s.renderOptions(width))
	} else {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
		if q.Type == question.TypeVoice && s.deps.Speech.CanListen() {
			b.WriteString("\n\n")
			hint := "Ctrl+L to answer by voice"
			if s.listening {
				hint = "Listening..."
			}
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(hint))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(s.renderPowerUps(width))

	return b.String()
}

// renderStatusLine shows position, score, streak, and lives.
func (s *SessionScreen) renderStatusLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d", s.state.Index+1, len(s.state.Questions)))

	hearts := strings.Repeat("♥ ", s.state.Lives) + strings.Repeat("♡ ", game.StartingLives-s.state.Lives)

	right := lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("Score %d", s.state.Score)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("⚡ %d", s.state.Streak)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("   ") +
		lipgloss.NewStyle().Foreground(theme.Error).Render(strings.TrimRight(hearts, " "))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderTimerBar shows the countdown as a bar plus seconds.
func (s *SessionScreen) renderTimerBar(width int) string {
	percent := float64(s.state.TimeLeft) / float64(game.QuestionTimeSecs)
	bar := components.NewProgressBar("", percent, false, min(width-20, 50)).View()

	secsStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.state.TimeLeft <= 10 {
		secsStyle = theme.TimerWarning
	}
	line := bar + secsStyle.Render(fmt.Sprintf("  %ds", s.state.TimeLeft))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// renderOptions renders the shuffled option list. Options hidden by the
// 50/50 power-up are already gone from the slice.
func (s *SessionScreen) renderOptions(width int) string {
	var b strings.Builder
	for i, opt := range s.state.Options {
		prefix := "  "
		if i == s.mcSelected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		if i == s.mcSelected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	selectLine := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\nSelect (1-%d) or use arrows + Enter", len(s.state.Options)))
	b.WriteString(selectLine)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderPowerUps shows remaining charges.
func (s *SessionScreen) renderPowerUps(width int) string {
	charge := func(label string, p game.PowerUp) string {
		n := s.state.Remaining(p)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if n == 0 {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		return style.Render(fmt.Sprintf("%s ×%d", label, n))
	}

	line := charge("^S Skip", game.PowerUpSkip) + "   " +
		charge("^E +30s", game.PowerUpExtraTime) + "   " +
		charge("^F 50/50", game.PowerUpFiftyFifty)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// renderFeedback renders the post-answer overlay.
func (s *SessionScreen) renderFeedback(width int) string {
	q := s.state.Current()

	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.state.LastCorrect {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		label := "Not quite"
		if s.state.LastSubmission == "" {
			label = "Time's up!"
		}
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render(label))
		if q != nil {
			b.WriteString("\n")
			b.WriteString(center.Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", q.Correct)))
		}
	}

	b.WriteString("\n\n")

	if q != nil && q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	if s.aiPending {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Getting feedback..."))
		b.WriteString("\n\n")
	} else if s.aiFeedback != "" {
		fb := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Secondary).
			Render(s.aiFeedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
		b.WriteString("\n")
		for _, h := range s.aiHints {
			hint := lipgloss.NewStyle().
				Width(min(width-8, 70)).
				Foreground(theme.TextDim).
				Render("· " + h)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End this run early?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your progress will be saved."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end run"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Shuffling your questions...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
