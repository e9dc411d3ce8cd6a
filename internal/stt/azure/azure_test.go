package azure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/stt"
)

func newTestRecognizer(t *testing.T, handler http.HandlerFunc) *Recognizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r := New(config.SpeechConfig{Key: "test-key", Region: "westeurope"})
	r.endpoint = srv.URL
	return r
}

func TestRecognizeSuccess(t *testing.T) {
	var gotLocale, gotKey, gotContentType string
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLocale = r.URL.Query().Get("language")
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"RecognitionStatus": "Success",
			"DisplayText":       "hello",
		})
	})

	text, err := rec.Recognize(context.Background(), []byte("pcm-bytes"), "en-US")
	if err != nil {
		t.Fatalf("Recognize() error: %v", err)
	}
	if text != "hello" {
		t.Errorf("Recognize() = %q, want %q", text, "hello")
	}
	if gotLocale != "en-US" {
		t.Errorf("language query = %q, want en-US", gotLocale)
	}
	if gotKey != "test-key" {
		t.Errorf("subscription key header = %q, want test-key", gotKey)
	}
	if gotContentType != "audio/wav; codecs=audio/pcm; samplerate=16000" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestRecognizeNoMatch(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{name: "no match", status: "NoMatch"},
		{name: "initial silence", status: "InitialSilenceTimeout"},
		{name: "babble", status: "BabbleTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"RecognitionStatus": tt.status})
			})

			_, err := rec.Recognize(context.Background(), []byte("pcm"), "en-US")
			if !errors.Is(err, stt.ErrNoSpeech) {
				t.Errorf("Recognize() error = %v, want ErrNoSpeech", err)
			}
		})
	}
}

func TestRecognizeCanceledOnHTTPError(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid subscription key", http.StatusUnauthorized)
	})

	_, err := rec.Recognize(context.Background(), []byte("pcm"), "en-US")
	var canceled *stt.CanceledError
	if !errors.As(err, &canceled) {
		t.Fatalf("Recognize() error = %v, want CanceledError", err)
	}
	if canceled.Detail == "" {
		t.Error("CanceledError.Detail is empty, want service detail passed through")
	}
}

func TestRecognizeUnknownStatus(t *testing.T) {
	rec := newTestRecognizer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"RecognitionStatus": "EndOfDictation"})
	})

	_, err := rec.Recognize(context.Background(), []byte("pcm"), "en-US")
	var failed *stt.FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Recognize() error = %v, want FailedError", err)
	}
	if failed.Code != "EndOfDictation" {
		t.Errorf("FailedError.Code = %q, want EndOfDictation", failed.Code)
	}
}

func TestRecognizeMissingCredentials(t *testing.T) {
	rec := New(config.SpeechConfig{})
	_, err := rec.Recognize(context.Background(), []byte("pcm"), "en-US")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Recognize() error = %v, want ErrNotConfigured", err)
	}
}
