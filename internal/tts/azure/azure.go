// Package azure implements the tts.Synthesizer interface using the Azure
// Speech text-to-speech REST API.
//
// The full text is rendered in one SSML request with a caller-named neural
// voice, and the complete WAV response is returned to the pipeline.
package azure

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/tts"
)

// ErrNotConfigured is returned when the speech key or region is missing.
var ErrNotConfigured = errors.New("speech credentials are not configured")

// outputFormat matches the 16 kHz 16-bit mono WAV the pipeline accepts as input.
const outputFormat = "riff-16khz-16bit-mono-pcm"

// Synthesizer implements tts.Synthesizer against Azure Speech.
type Synthesizer struct {
	key      string
	region   string
	endpoint string // overrides the region-derived endpoint when non-empty
	client   *http.Client
}

// New creates a new Azure Speech synthesizer from config.
func New(cfg config.SpeechConfig) *Synthesizer {
	return &Synthesizer{
		key:    cfg.Key,
		region: cfg.Region,
		client: &http.Client{},
	}
}

// Synthesize renders the text with the named voice and blocks until the
// complete audio is returned.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.SynthesizeResult, error) {
	if s.key == "" || s.region == "" {
		return nil, ErrNotConfigured
	}
	if opts.Voice == "" {
		return nil, &tts.FailedError{Code: "no voice specified"}
	}

	endpoint := s.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com", s.region)
	}

	ssml, err := buildSSML(text, opts.Locale, opts.Voice)
	if err != nil {
		return nil, fmt.Errorf("building ssml: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"/cognitiveservices/v1", bytes.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)

	slog.Debug("synthesis request", "region", s.region, "voice", opts.Voice, "text_length", len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &tts.CanceledError{Reason: "connection failure", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &tts.CanceledError{Reason: resp.Status, Detail: string(body)}
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesis response: %w", err)
	}
	if len(audioData) == 0 {
		return nil, &tts.FailedError{Code: "no audio data received"}
	}

	slog.Debug("synthesis complete", "audio_bytes", len(audioData))
	return &tts.SynthesizeResult{
		Audio:       audioData,
		ContentType: "audio/wav",
	}, nil
}

// Close is a no-op — connections are per-request.
func (s *Synthesizer) Close() error { return nil }

// buildSSML builds the single-voice SSML document for a synthesis request.
func buildSSML(text, loc, voice string) ([]byte, error) {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, `<speak version='1.0' xml:lang='%s'><voice name='%s'>`, loc, voice)
	if err := xml.EscapeText(buf, []byte(text)); err != nil {
		return nil, err
	}
	buf.WriteString(`</voice></speak>`)
	return buf.Bytes(), nil
}
