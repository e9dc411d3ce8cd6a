// Package message defines the request value flowing through the voicebridge pipeline.
package message

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMissingFields is returned when a request omits any required field.
var ErrMissingFields = errors.New("missing required fields")

// TranslationRequest is a single speech translation request as received on
// the wire. It is constructed once per request and never mutated.
type TranslationRequest struct {
	// SourceLocale is the locale the speaker is using (e.g. "en-US").
	SourceLocale string `json:"source_locale"`

	// TargetLocale is the locale to translate into (e.g. "fr-FR").
	TargetLocale string `json:"target_locale"`

	// NeuralVoice names the synthetic voice used to render the target
	// locale (e.g. "fr-FR-DeniseNeural").
	NeuralVoice string `json:"neural_voice"`

	// AudioData is the base64-encoded input audio, either raw 16 kHz
	// 16-bit mono PCM or the same wrapped in a WAV container.
	AudioData string `json:"audio_data"`
}

// Validate checks that every required field is present.
func (r *TranslationRequest) Validate() error {
	if r.SourceLocale == "" || r.TargetLocale == "" || r.NeuralVoice == "" || r.AudioData == "" {
		return ErrMissingFields
	}
	return nil
}

// DecodeAudio decodes the base64 audio payload into raw bytes.
func (r *TranslationRequest) DecodeAudio() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(r.AudioData)
	if err != nil {
		return nil, fmt.Errorf("decoding audio: %w", err)
	}
	return b, nil
}
