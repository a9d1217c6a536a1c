package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// blockingSynth holds Speak open until released or cancelled, to
// exercise the one-at-a-time interrupt behavior.
type blockingSynth struct {
	started chan struct{}
	release chan struct{}

	mu     sync.Mutex
	spoken []string
}

func (s *blockingSynth) Speak(ctx context.Context, text, lang string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	first := len(s.spoken) == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		select {
		case <-s.release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *blockingSynth) Supported() bool { return true }

func TestManager_NilBackendsAreNoop(t *testing.T) {
	m := NewManager(nil, nil)

	if m.CanSpeak() || m.CanListen() {
		t.Error("noop backends should report unsupported")
	}

	if err := m.Speak(context.Background(), "namaste", "hi-IN"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Speak error = %v, want ErrUnsupported", err)
	}
	if _, err := m.Listen(context.Background(), "en-US"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Listen error = %v, want ErrUnsupported", err)
	}
}

func TestManager_NewSpeakInterruptsActiveOne(t *testing.T) {
	synth := &blockingSynth{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := NewManager(synth, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Speak(context.Background(), "paani", "hi-IN")
	}()

	<-synth.started

	// The second utterance starts immediately; the first one gets
	// cancelled out from under it.
	if err := m.Speak(context.Background(), "doodh", "hi-IN"); err != nil {
		t.Errorf("second Speak error = %v, want nil", err)
	}
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("interrupted Speak error = %v, want context.Canceled", err)
	}

	synth.mu.Lock()
	spoken := append([]string(nil), synth.spoken...)
	synth.mu.Unlock()
	if len(spoken) != 2 || spoken[1] != "doodh" {
		t.Errorf("spoken = %v, want both utterances started", spoken)
	}

	// The slot is free again once everything has returned. The noop
	// recognizer still answers, proving nothing stayed claimed.
	if _, err := m.Listen(context.Background(), "en-US"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Listen after interrupt = %v, want ErrUnsupported", err)
	}
}
