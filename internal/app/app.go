package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/screens/home"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
	"github.com/abhisek/fluence/internal/ui/layout"
)

// Options wires the application's services into the UI.
type Options struct {
	Loader  *question.Loader
	Student string
	Events  store.EventRepo
	Snaps   store.SnapshotRepo
	Review  *review.Service
	Speech  *speech.Manager
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	state  *game.State
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Loader:  opts.Loader,
		Student: opts.Student,
		Events:  opts.Events,
		Snaps:   opts.Snaps,
		Review:  opts.Review,
		Speech:  opts.Speech,
	})
	return AppModel{
		router: router.New(homeScreen),
		state:  homeScreen.State(),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	highScore, bestStreak := 0, 0
	if m.state != nil {
		highScore, bestStreak = m.state.HighestScore, m.state.HighestStreak
	}
	header := layout.RenderHeader(title, highScore, bestStreak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
