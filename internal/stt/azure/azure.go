// Package azure implements the stt.Recognizer interface using the Azure
// Speech service short-audio REST API.
//
// The whole utterance is submitted as one request and recognized in a
// single pass; there is no streaming and no continuous recognition.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/voicebridge/voicebridge/internal/audio"
	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/stt"
)

// ErrNotConfigured is returned when the speech key or region is missing.
var ErrNotConfigured = errors.New("speech credentials are not configured")

// Recognizer implements stt.Recognizer against Azure Speech.
type Recognizer struct {
	key      string
	region   string
	endpoint string // overrides the region-derived endpoint when non-empty
	client   *http.Client
}

// New creates a new Azure Speech recognizer from config.
func New(cfg config.SpeechConfig) *Recognizer {
	return &Recognizer{
		key:    cfg.Key,
		region: cfg.Region,
		client: &http.Client{},
	}
}

// Recognize submits the full PCM payload for one recognition pass in the
// given locale and blocks until the service reports an outcome.
func (r *Recognizer) Recognize(ctx context.Context, pcm []byte, sourceLocale string) (string, error) {
	if r.key == "" || r.region == "" {
		return "", ErrNotConfigured
	}

	endpoint := r.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.stt.speech.microsoft.com", r.region)
	}

	q := make(url.Values)
	q.Set("language", sourceLocale)
	q.Set("format", "simple")
	reqURL := endpoint + "/speech/recognition/conversation/cognitiveservices/v1?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(pcm))
	if err != nil {
		return "", fmt.Errorf("creating recognition request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", r.key)
	req.Header.Set("Content-Type", fmt.Sprintf(
		"audio/wav; codecs=audio/pcm; samplerate=%d", audio.SampleRate))
	req.Header.Set("Accept", "application/json")

	slog.Debug("recognition request", "region", r.region, "locale", sourceLocale, "pcm_bytes", len(pcm))

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &stt.CanceledError{Reason: "connection failure", Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading recognition response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &stt.CanceledError{Reason: resp.Status, Detail: string(body)}
	}

	var result struct {
		RecognitionStatus string `json:"RecognitionStatus"`
		DisplayText       string `json:"DisplayText"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decoding recognition response: %w", err)
	}

	switch result.RecognitionStatus {
	case "Success":
		slog.Debug("recognition complete", "text_length", len(result.DisplayText))
		return result.DisplayText, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return "", stt.ErrNoSpeech
	case "Error":
		return "", &stt.CanceledError{Reason: result.RecognitionStatus, Detail: string(body)}
	default:
		return "", &stt.FailedError{Code: result.RecognitionStatus}
	}
}

// Close is a no-op — connections are per-request.
func (r *Recognizer) Close() error { return nil }
