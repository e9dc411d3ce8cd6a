// Package tts defines the interface for text-to-speech synthesis.
//
// Voicebridge uses TTS to render the translated text in the target locale
// with a caller-named neural voice, producing the audio returned to the
// client.
package tts

import (
	"context"
	"fmt"
)

// CanceledError is returned when the synthesis service aborted the request.
// Reason and Detail are passed through verbatim from the service.
type CanceledError struct {
	Reason string
	Detail string
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("TTS canceled: %s, %s", e.Reason, e.Detail)
}

// FailedError is returned for any synthesis outcome that is neither success
// nor cancellation. Code carries the raw outcome code.
type FailedError struct {
	Code string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("TTS failed: %s", e.Code)
}

// SynthesizeOpts controls synthesis behavior.
type SynthesizeOpts struct {
	// Locale is the target locale the text is written in (e.g. "fr-FR").
	Locale string

	// Voice names the neural voice profile to render with
	// (e.g. "fr-FR-DeniseNeural").
	Voice string
}

// SynthesizeResult holds the output of TTS synthesis.
type SynthesizeResult struct {
	// Audio is the complete synthesized audio as a WAV file.
	Audio []byte

	// ContentType is the MIME type of the audio (e.g., "audio/wav").
	ContentType string
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Synthesize renders the full text as one blocking synthesis request
	// with the named voice. No streaming and no retry; a single canceled
	// outcome is terminal.
	Synthesize(ctx context.Context, text string, opts SynthesizeOpts) (*SynthesizeResult, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}
