// Package stt defines the interface for speech-to-text recognition.
//
// A recognizer takes a complete raw PCM utterance and produces the
// recognized text in the speaker's locale. Voicebridge ships with an Azure
// Speech backend; the interface keeps the pipeline testable without it.
package stt

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSpeech is returned when the recognition service heard no usable speech.
var ErrNoSpeech = errors.New("STT failed: No speech could be recognized")

// CanceledError is returned when the recognition service aborted the pass,
// e.g. on bad audio format, network interruption, or auth failure. Reason
// and Detail are passed through verbatim from the service.
type CanceledError struct {
	Reason string
	Detail string
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("STT canceled: %s, %s", e.Reason, e.Detail)
}

// FailedError is returned for any recognition outcome that is neither
// success, no-match, nor cancellation. Code carries the raw outcome code.
type FailedError struct {
	Code string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("STT failed: %s", e.Code)
}

// Recognizer converts spoken audio to text.
type Recognizer interface {
	// Recognize runs a single blocking recognition pass over the full PCM
	// payload (16 kHz, 16-bit, mono) in the given locale. There is no
	// incremental feeding and no retry; one failed pass is terminal.
	Recognize(ctx context.Context, pcm []byte, sourceLocale string) (string, error)

	// Close releases any resources held by the recognizer.
	Close() error
}
