// Package translation produces machine translations of exploration content,
// caching results in Redis with an in-process fallback tier.
package translation

import (
	"context"
	"errors"
)

// ErrNotTranslatable means no machine translation could be produced for the
// text. Callers surface it as a null translation, not a failure.
var ErrNotTranslatable = errors.New("text cannot be machine translated")

// Translator produces a machine translation of text into the target
// language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguageCode string) (string, error)
}

// unavailableTranslator is used when no translation backend is configured.
// Every request resolves to a null translation.
type unavailableTranslator struct{}

func (unavailableTranslator) Translate(ctx context.Context, text, targetLanguageCode string) (string, error) {
	return "", ErrNotTranslatable
}

// Unavailable returns a Translator that never translates.
func Unavailable() Translator {
	return unavailableTranslator{}
}

// DictionaryTranslator serves translations from a fixed lookup table, keyed
// by target language then source text. Used in tests and demo deployments.
type DictionaryTranslator struct {
	entries map[string]map[string]string
}

func NewDictionaryTranslator(entries map[string]map[string]string) *DictionaryTranslator {
	return &DictionaryTranslator{entries: entries}
}

func (d *DictionaryTranslator) Translate(ctx context.Context, text, targetLanguageCode string) (string, error) {
	if byText, ok := d.entries[targetLanguageCode]; ok {
		if out, ok := byText[text]; ok {
			return out, nil
		}
	}
	return "", ErrNotTranslatable
}
