// Package azure implements the translate.Translator interface using the
// Azure Translator v3 REST API.
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
	"time"

	"github.com/voicebridge/voicebridge/internal/config"
	"github.com/voicebridge/voicebridge/internal/locale"
	"github.com/voicebridge/voicebridge/internal/translate"
)

// ErrNotConfigured is returned when the translator endpoint or key is missing.
var ErrNotConfigured = errors.New("translator credentials are not configured")

const (
	apiVersion     = "3.0"
	requestTimeout = 10 * time.Second
)

// Translator implements translate.Translator against Azure Translator.
type Translator struct {
	endpoint string
	key      string
	region   string // optional; attached as a request header when present
	client   *http.Client
}

// New creates a new Azure translator from config.
func New(cfg config.TranslatorConfig) *Translator {
	return &Translator{
		endpoint: cfg.Endpoint,
		key:      cfg.Key,
		region:   cfg.Region,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Translate issues one synchronous translation request carrying the text as
// a single-element batch, with from/to language codes derived from the
// locales.
func (t *Translator) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	from, to, err := locale.DerivePair(sourceLocale, targetLocale)
	if err != nil {
		return "", err
	}

	if t.endpoint == "" || t.key == "" {
		return "", ErrNotConfigured
	}

	q := make(url.Values)
	q.Set("api-version", apiVersion)
	q.Set("from", from)
	q.Set("to", to)
	reqURL := t.endpoint + "/translate?" + q.Encode()

	reqBody, err := json.Marshal([]map[string]string{{"text": text}})
	if err != nil {
		return "", fmt.Errorf("marshalling translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating translation request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", t.key)
	req.Header.Set("Content-Type", "application/json")
	if t.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", t.region)
	}

	slog.Debug("translation request", "from", from, "to", to, "region_header", t.region != "")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading translation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The subscription key header must never reach the logs.
		slog.Error("translator API error",
			"status", resp.StatusCode,
			"body", string(body),
			"headers", redactHeaders(req.Header))
		return "", &translate.ServiceError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var results []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return "", &translate.UnexpectedResponseError{Body: string(body)}
	}
	if len(results) == 0 || len(results[0].Translations) == 0 {
		return "", &translate.UnexpectedResponseError{Body: string(body)}
	}

	translated := results[0].Translations[0].Text
	slog.Debug("translation complete", "text_length", len(translated))
	return translated, nil
}

// Close is a no-op — connections are per-request.
func (t *Translator) Close() error { return nil }

// redactHeaders copies headers with the subscription key removed, for safe logging.
func redactHeaders(h http.Header) map[string][]string {
	safe := make(map[string][]string, len(h))
	for k, v := range h {
		if http.CanonicalHeaderKey(k) == "Ocp-Apim-Subscription-Key" {
			continue
		}
		safe[k] = v
	}
	return safe
}
