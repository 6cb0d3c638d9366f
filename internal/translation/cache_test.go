package translation

import (
	"context"
	"testing"

	"github.com/D-z-V/oppia/pkg/logging"
)

func newTestCache(entries map[string]map[string]string) *Cache {
	var tr Translator
	if entries == nil {
		tr = Unavailable()
	} else {
		tr = NewDictionaryTranslator(entries)
	}
	return NewCache(tr, nil, logging.NewLogger())
}

func TestGetTranslatesAndCaches(t *testing.T) {
	calls := 0
	tr := countingTranslator{
		inner: NewDictionaryTranslator(map[string]map[string]string{
			"hi": {"Hello": "नमस्ते"},
		}),
		calls: &calls,
	}
	c := NewCache(tr, nil, logging.NewLogger())

	for i := 0; i < 3; i++ {
		out, err := c.Get(context.Background(), "Hello", "hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == nil || *out != "नमस्ते" {
			t.Fatalf("unexpected translation: %v", out)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single backend call, got %d", calls)
	}
}

func TestGetReturnsNilWhenUntranslatable(t *testing.T) {
	c := newTestCache(nil)
	out, err := c.Get(context.Background(), "Hello", "hi")
	if err != nil {
		t.Fatalf("untranslatable text should not error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil translation, got %q", *out)
	}
}

func TestGetDistinguishesLanguages(t *testing.T) {
	c := newTestCache(map[string]map[string]string{
		"hi": {"Hello": "नमस्ते"},
		"sw": {"Hello": "Habari"},
	})

	hi, err := c.Get(context.Background(), "Hello", "hi")
	if err != nil || hi == nil {
		t.Fatalf("unexpected result: %v %v", hi, err)
	}
	sw, err := c.Get(context.Background(), "Hello", "sw")
	if err != nil || sw == nil {
		t.Fatalf("unexpected result: %v %v", sw, err)
	}
	if *hi == *sw {
		t.Fatal("translations for different languages should not collide")
	}
}

type countingTranslator struct {
	inner Translator
	calls *int
}

func (c countingTranslator) Translate(ctx context.Context, text, lang string) (string, error) {
	*c.calls++
	return c.inner.Translate(ctx, text, lang)
}
