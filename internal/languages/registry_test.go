package languages

import "testing"

func TestIsSupported(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"hi", true},
		{"sw", true},
		{"xx-not-a-lang", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupported(tt.code); got != tt.want {
			t.Fatalf("IsSupported(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestName(t *testing.T) {
	name, ok := Name("hi")
	if !ok || name != "Hindi" {
		t.Fatalf("expected Hindi, got %q ok=%v", name, ok)
	}
	if _, ok := Name("zz"); ok {
		t.Fatal("unknown code should not resolve")
	}
}

func TestFeaturedOrderAndMembership(t *testing.T) {
	langs := Featured()
	wantOrder := []string{"pt", "ar", "pcm", "es", "sw", "hi", "ha", "ig", "yo"}
	if len(langs) != len(wantOrder) {
		t.Fatalf("expected %d featured languages, got %d", len(wantOrder), len(langs))
	}
	for i, code := range wantOrder {
		if langs[i].LanguageCode != code {
			t.Fatalf("position %d: expected %q, got %q", i, code, langs[i].LanguageCode)
		}
		if langs[i].Explanation == "" {
			t.Fatalf("featured language %q has no explanation", code)
		}
		if !IsSupported(code) {
			t.Fatalf("featured language %q must be a supported audio language", code)
		}
	}
}
