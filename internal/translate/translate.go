// Package translate defines the interface for text-to-text translation
// between the locales of a speech translation request.
package translate

import (
	"context"
	"fmt"
)

// ServiceError is returned when the translation service answers with a
// non-200 status. Body carries the response body for diagnostics; the
// subscription key is never part of it.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("translator request failed: status %d: %s", e.StatusCode, e.Body)
}

// UnexpectedResponseError is returned when a 200 response does not have the
// expected result shape. Body carries the raw decoded body.
type UnexpectedResponseError struct {
	Body string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("translator unexpected response: %s", e.Body)
}

// Translator converts text between languages identified by locale.
type Translator interface {
	// Translate issues one synchronous translation of text from the
	// source locale's language to the target locale's language. No
	// batching and no retry; the call carries a fixed transport timeout.
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)

	// Close releases any resources held by the translator.
	Close() error
}
