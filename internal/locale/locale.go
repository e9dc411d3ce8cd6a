// Package locale derives translator language codes from BCP-47 style
// locale tags (e.g. "en-US" → "en").
//
// The translator API wants bare language codes while the speech services
// want full locales, so the pipeline keeps locales end to end and derives
// codes only at the translation boundary.
package locale

import (
	"errors"
	"strings"
)

// ErrInvalidLocale is returned when a locale yields no usable language code.
var ErrInvalidLocale = errors.New("invalid locale provided for translation")

// ExtractLanguageCode returns the segment of a locale before the first "-".
// Locales without a region separator carry no recognizable language prefix
// and yield an empty code, as does an empty locale.
func ExtractLanguageCode(loc string) string {
	code, _, found := strings.Cut(loc, "-")
	if !found {
		return ""
	}
	return code
}

// DerivePair extracts the (from, to) language codes for a translation.
// It fails with ErrInvalidLocale when either locale yields an empty code.
func DerivePair(sourceLocale, targetLocale string) (from, to string, err error) {
	from = ExtractLanguageCode(sourceLocale)
	to = ExtractLanguageCode(targetLocale)
	if from == "" || to == "" {
		return "", "", ErrInvalidLocale
	}
	return from, to, nil
}
