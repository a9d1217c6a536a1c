package session

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// sessionInitMsg carries the freshly minted session ID after the start
// event has been persisted.
type sessionInitMsg struct {
	sessionID string
}

// timerTickMsg drives the one-second question countdown. It carries the
// session ID it was scheduled for so a tick left over from a previous run
// cannot feed a second countdown loop into a freshly started session.
type timerTickMsg struct {
	sessionID string
	at        time.Time
}

// feedbackPollMsg checks whether the async answer review has landed.
type feedbackPollMsg struct{}

// sessionEndMsg signals the run is over (lives, questions, or quit).
type sessionEndMsg struct{}

// speechDoneMsg reports a finished speech capture or playback.
type speechDoneMsg struct {
	transcript string
	err        error
}

// tickCmd returns a 1-second tick command stamped with the session it
// belongs to.
func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{sessionID: sessionID, at: t}
	})
}

// feedbackPollInterval is how often the feedback overlay checks for the
// AI review result.
const feedbackPollInterval = 250 * time.Millisecond

func pollCmd() tea.Cmd {
	return tea.Tick(feedbackPollInterval, func(time.Time) tea.Msg {
		return feedbackPollMsg{}
	})
}
