package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fluence/internal/game"
	"github.com/abhisek/fluence/internal/question"
	"github.com/abhisek/fluence/internal/review"
	"github.com/abhisek/fluence/internal/router"
	"github.com/abhisek/fluence/internal/screen"
	"github.com/abhisek/fluence/internal/screens/history"
	insightsscreen "github.com/abhisek/fluence/internal/screens/insights"
	sessionscreen "github.com/abhisek/fluence/internal/screens/session"
	"github.com/abhisek/fluence/internal/speech"
	"github.com/abhisek/fluence/internal/store"
	"github.com/abhisek/fluence/internal/ui/components"
	"github.com/abhisek/fluence/internal/ui/layout"
)

// stage is which part of the home flow is active.
type stage int

const (
	stageName stage = iota
	stageMenu
)

// Deps are the home screen's collaborators, shared with every screen it
// pushes.
type Deps struct {
	Loader  *question.Loader
	Student string // explicit bank selector, overrides name aliases
	Events  store.EventRepo
	Snaps   store.SnapshotRepo
	Review  *review.Service
	Speech  *speech.Manager
}

// bankLoadedMsg delivers the question bank fetched for a new run.
type bankLoadedMsg struct {
	bank    []*question.Question
	student string
	err     error
}

// HomeScreen is the entry screen: name prompt, then the main menu.
type HomeScreen struct {
	deps  Deps
	state *game.State

	stage stage
	input components.TextInput
	menu  components.Menu

	// bank is cached across runs within one program session.
	bank    []*question.Question
	student string

	snapQuestions []*question.Question
	loading       bool
	errMsg        string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen, restoring progress from the latest
// snapshot.
func New(deps Deps) *HomeScreen {
	var snap *store.Snapshot
	if deps.Snaps != nil {
		snap, _ = deps.Snaps.Latest(context.Background())
	}

	var perf *game.Performance
	if snap != nil {
		perf = snap.Data.Performance
	}
	state := game.NewState(perf)

	input := components.NewTextInput("Your name", false, 24)
	if snap != nil {
		state.HighestScore = snap.Data.HighestScore
		state.HighestStreak = snap.Data.HighestStreak
		input.Model.SetValue(snap.Data.Player)
	}

	h := &HomeScreen{
		deps:  deps,
		state: state,
		stage: stageName,
		input: input,
	}
	if snap != nil {
		h.snapQuestions = snap.Data.Questions
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	return []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return h.loadBank()
		}},
		{Label: "INSIGHTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: insightsscreen.New(insightsscreen.Deps{
						State: h.state,
						Bank:  h.insightsBank(),
					}),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.Events)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

// insightsBank prefers the live bank; before the first run, saved
// snapshot questions still carry mastery worth showing.
func (h *HomeScreen) insightsBank() []*question.Question {
	if h.bank != nil {
		return h.bank
	}
	return h.snapQuestions
}

// State exposes the shared game state for the app header.
func (h *HomeScreen) State() *game.State {
	return h.state
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.stage == stageName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bankLoadedMsg:
		h.loading = false
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.bank = msg.bank
		h.student = msg.student
		h.state.Student = msg.student
		return h, h.pushSession()

	case tea.KeyMsg:
		if h.stage == stageName {
			return h.updateNameStage(msg)
		}
		h.errMsg = ""
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	if h.stage == stageName {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) updateNameStage(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "enter" {
		name := strings.TrimSpace(h.input.Value())
		if name == "" {
			return h, nil
		}
		h.state.PlayerName = name
		h.stage = stageMenu
		return h, nil
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// loadBank fetches the bank for the player's resolved student ID.
func (h *HomeScreen) loadBank() tea.Cmd {
	student := h.deps.Loader.ResolveStudent(h.deps.Student, h.state.PlayerName)
	if h.bank != nil && h.student == student {
		return h.pushSession()
	}

	h.loading = true
	loader, saved := h.deps.Loader, h.snapQuestions
	return func() tea.Msg {
		bank, err := loader.Load(context.Background(), student)
		if err != nil {
			return bankLoadedMsg{err: err}
		}
		question.MergeSaved(bank, saved)
		return bankLoadedMsg{bank: bank, student: student}
	}
}

func (h *HomeScreen) pushSession() tea.Cmd {
	deps := sessionscreen.Deps{
		State:  h.state,
		Bank:   h.bank,
		Events: h.deps.Events,
		Snaps:  h.deps.Snaps,
		Review: h.deps.Review,
		Speech: h.deps.Speech,
	}
	h.state.Reset()
	h.state.PlayerName = strings.TrimSpace(h.input.Value())
	h.state.Student = h.student
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(deps)}
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderTagline(cw))

	due := len(question.DueQuestions(h.insightsBank(), time.Now()))
	sections = append(sections, renderStatsBar(
		h.state.HighestScore, h.state.HighestStreak, due, cw, compact))

	switch h.stage {
	case stageName:
		sections = append(sections, renderNamePrompt(h.input.View(), cw))
	case stageMenu:
		labels := make([]string, len(h.menu.Items))
		for i, item := range h.menu.Items {
			labels[i] = item.Label
		}
		if compact {
			sections = append(sections, renderArcadeMenuCompact(labels, h.menu.Selected, cw))
		} else {
			sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw))
		}
	}

	if h.loading {
		sections = append(sections, renderNote("Loading questions...", cw))
	}
	if h.errMsg != "" {
		sections = append(sections, renderErrorNote(h.errMsg, cw))
	}
	if !h.deps.Review.Enabled() {
		sections = append(sections, renderNote("Set an LLM API key for AI feedback (see fluence --help)", cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderCabinetFrame(content, width, height)
}
