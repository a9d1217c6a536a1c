package speech

import "context"

// NoopSynthesizer reports speech as unsupported.
type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(context.Context, string, string) error { return ErrUnsupported }
func (NoopSynthesizer) Supported() bool                             { return false }

// NoopRecognizer reports voice capture as unsupported.
type NoopRecognizer struct{}

func (NoopRecognizer) Listen(context.Context, string) (string, error) { return "", ErrUnsupported }
func (NoopRecognizer) Supported() bool                                { return false }
