// Package speech abstracts text-to-speech and voice capture for listening
// and speaking questions. Terminal builds ship the noop implementations;
// the interfaces exist so a platform backend can slot in without touching
// the game loop.
package speech

import (
	"context"
	"errors"
)

// ErrUnsupported is returned when no speech backend is available.
var ErrUnsupported = errors.New("speech: not supported on this platform")

// Synthesizer speaks text aloud.
type Synthesizer interface {
	// Speak pronounces text in the given BCP 47 language, blocking until
	// playback completes or ctx is cancelled.
	Speak(ctx context.Context, text, lang string) error

	// Supported reports whether this synthesizer can produce audio.
	Supported() bool
}

// Recognizer captures a spoken answer as text.
type Recognizer interface {
	// Listen records until silence or ctx cancellation and returns the
	// transcript.
	Listen(ctx context.Context, lang string) (string, error)

	// Supported reports whether this recognizer can capture audio.
	Supported() bool
}
