package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/locale"
	"github.com/voicebridge/voicebridge/internal/translate"
)

func newTestTranslator(t *testing.T, region string, handler http.HandlerFunc) *Translator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.TranslatorConfig{
		Endpoint: srv.URL,
		Key:      "translator-key",
		Region:   region,
	})
}

func translationResponse(text string) []map[string]any {
	return []map[string]any{
		{"translations": []map[string]string{{"text": text, "to": "fr"}}},
	}
}

func TestTranslateSuccess(t *testing.T) {
	var gotQuery, gotRegion, gotBody string
	tr := newTestTranslator(t, "westeurope", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotRegion = r.Header.Get("Ocp-Apim-Subscription-Region")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_ = json.NewEncoder(w).Encode(translationResponse("bonjour"))
	})

	text, err := tr.Translate(context.Background(), "hello", "en-US", "fr-FR")
	if err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if text != "bonjour" {
		t.Errorf("Translate() = %q, want bonjour", text)
	}
	for _, param := range []string{"api-version=3.0", "from=en", "to=fr"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("query %q missing %q", gotQuery, param)
		}
	}
	if gotRegion != "westeurope" {
		t.Errorf("region header = %q, want westeurope", gotRegion)
	}
	if gotBody != `[{"text":"hello"}]` {
		t.Errorf("request body = %s, want single-element batch", gotBody)
	}
}

func TestTranslateOmitsRegionHeaderWhenUnset(t *testing.T) {
	var regionPresent bool
	tr := newTestTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, regionPresent = r.Header["Ocp-Apim-Subscription-Region"]
		_ = json.NewEncoder(w).Encode(translationResponse("hola"))
	})

	if _, err := tr.Translate(context.Background(), "hello", "en-US", "es-ES"); err != nil {
		t.Fatalf("Translate() error: %v", err)
	}
	if regionPresent {
		t.Error("region header sent despite empty region config")
	}
}

func TestTranslateServiceError(t *testing.T) {
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logBuf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	tr := newTestTranslator(t, "westeurope", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":401000}}`, http.StatusForbidden)
	})

	_, err := tr.Translate(context.Background(), "hello", "en-US", "fr-FR")
	var svcErr *translate.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Translate() error = %v, want ServiceError", err)
	}
	if svcErr.StatusCode != http.StatusForbidden {
		t.Errorf("ServiceError.StatusCode = %d, want 403", svcErr.StatusCode)
	}

	// The subscription key must never appear in the error or the logs.
	if strings.Contains(err.Error(), "translator-key") {
		t.Error("ServiceError leaks the subscription key")
	}
	if strings.Contains(logBuf.String(), "translator-key") {
		t.Error("error log leaks the subscription key")
	}
	if !strings.Contains(logBuf.String(), "translator API error") {
		t.Error("expected the service error to be logged")
	}
}

func TestTranslateUnexpectedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `[]`},
		{name: "no translations", body: `[{"translations":[]}]`},
		{name: "not json array", body: `{"unexpected":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := tr.Translate(context.Background(), "hello", "en-US", "fr-FR")
			var unexpected *translate.UnexpectedResponseError
			if !errors.As(err, &unexpected) {
				t.Fatalf("Translate() error = %v, want UnexpectedResponseError", err)
			}
			if unexpected.Body != tt.body {
				t.Errorf("UnexpectedResponseError.Body = %q, want raw body", unexpected.Body)
			}
		})
	}
}

func TestTranslateInvalidLocale(t *testing.T) {
	tr := newTestTranslator(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote called despite invalid locale")
	})

	_, err := tr.Translate(context.Background(), "hello", "english", "fr-FR")
	if !errors.Is(err, locale.ErrInvalidLocale) {
		t.Errorf("Translate() error = %v, want ErrInvalidLocale", err)
	}
}

func TestTranslateMissingCredentials(t *testing.T) {
	tr := New(config.TranslatorConfig{})
	_, err := tr.Translate(context.Background(), "hello", "en-US", "fr-FR")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Translate() error = %v, want ErrNotConfigured", err)
	}
}
