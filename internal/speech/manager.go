package speech

import (
	"context"
	"sync"
)

// Manager serializes access to a synthesizer and recognizer: at most one
// utterance is active at a time, and starting a new one interrupts the
// previous by cancelling its context. Audio questions fall back to their
// transcription text when speech is unsupported.
type Manager struct {
	synth Synthesizer
	recog Recognizer

	mu     sync.Mutex
	gen    int
	cancel context.CancelFunc
}

// NewManager wraps the given backends. Nil backends degrade to the noop
// implementations.
func NewManager(synth Synthesizer, recog Recognizer) *Manager {
	if synth == nil {
		synth = NoopSynthesizer{}
	}
	if recog == nil {
		recog = NoopRecognizer{}
	}
	return &Manager{synth: synth, recog: recog}
}

// CanSpeak reports whether text-to-speech is available.
func (m *Manager) CanSpeak() bool { return m.synth.Supported() }

// CanListen reports whether voice capture is available.
func (m *Manager) CanListen() bool { return m.recog.Supported() }

// Speak pronounces text, interrupting any utterance still in progress.
func (m *Manager) Speak(ctx context.Context, text, lang string) error {
	ctx, done := m.begin(ctx)
	defer done()
	return m.synth.Speak(ctx, text, lang)
}

// Listen captures one spoken answer, interrupting any utterance still
// in progress.
func (m *Manager) Listen(ctx context.Context, lang string) (string, error) {
	ctx, done := m.begin(ctx)
	defer done()
	return m.recog.Listen(ctx, lang)
}

// begin cancels the active utterance, if any, and takes over the slot.
// The returned done func releases the slot unless a newer utterance has
// already claimed it.
func (m *Manager) begin(ctx context.Context) (context.Context, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.gen++
	gen := m.gen
	m.cancel = cancel

	return ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		cancel()
		if m.gen == gen {
			m.cancel = nil
		}
	}
}
