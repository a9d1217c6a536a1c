package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/store"
	"github.com/abhisek/fluence/internal/ui/layout"
	"github.com/abhisek/fluence/internal/ui/theme"
)

type historyLoadedMsg struct {
	Runs []store.SessionEventRecord
	Err  error
}

// HistoryScreen lists past runs, most recent first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []store.SessionEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QuerySessions(context.Background(), store.QueryOpts{Limit: 100})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Only finished runs carry stats worth listing.
		var runs []store.SessionEventRecord
		for _, e := range events {
			if e.Action == "end" {
				runs = append(runs, e)
			}
		}
		if len(runs) > 50 {
			runs = runs[:50]
		}
		return historyLoadedMsg{Runs: runs}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No runs yet. Start a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		dateStr := run.Timestamp.Format("Jan 02, 2006")
		mins := run.DurationSecs / 60
		secs := run.DurationSecs % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		var accuracy float64
		if run.QuestionsServed > 0 {
			accuracy = float64(run.CorrectAnswers) / float64(run.QuestionsServed) * 100
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d questions  %.0f%% accuracy",
			prefix, dateStr, durationStr, run.QuestionsServed, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    Player %s · Score %d · Best streak %d",
				run.Player, run.Score, run.MaxStreak)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
