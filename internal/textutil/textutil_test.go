package textutil

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits", "The Quick, brown FOX!", []string{"the", "quick", "brown", "fox"}},
		{"drops short tokens", "a to be or not", []string{"not"}},
		{"keeps digits", "day 7 of 30day plan", []string{"day", "30day", "plan"}},
		{"empty", "   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShingles(t *testing.T) {
	tokens := []string{"one", "two", "three", "four", "five"}
	got := Shingles(tokens, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 shingles, got %d: %v", len(got), got)
	}
	for _, want := range []string{"one two three four", "two three four five"} {
		if _, ok := got[want]; !ok {
			t.Errorf("missing shingle %q", want)
		}
	}
	if short := Shingles(tokens[:3], 4); len(short) != 0 {
		t.Errorf("expected empty set for short input, got %v", short)
	}
}

func TestJaccard(t *testing.T) {
	a := Shingles(Tokenize("alpha beta gamma delta epsilon"), 4)
	b := Shingles(Tokenize("alpha beta gamma delta zeta"), 4)

	tests := []struct {
		name string
		a, b ShingleSet
		want float64
	}{
		{"identical", a, a, 1},
		{"partial", a, b, 1.0 / 3.0},
		{"disjoint", a, Shingles(Tokenize("one two three four"), 4), 0},
		{"both empty", ShingleSet{}, ShingleSet{}, 0},
		{"one empty", a, ShingleSet{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard = %v, want %v", got, tt.want)
			}
			if sym := Jaccard(tt.b, tt.a); math.Abs(sym-got) > 1e-12 {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestCollapseWhitespaceAndTruncate(t *testing.T) {
	if got := CollapseWhitespace("  hello \n\t world  "); got != "hello world" {
		t.Fatalf("CollapseWhitespace = %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "héllo" {
		t.Fatalf("Truncate = %q, want %q", got, "héllo")
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate should leave short strings alone, got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Fatalf("Truncate(0) = %q", got)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{" Price anchoring ", "price  anchoring", "", "Scarcity", "Bundles"}, 2)
	want := []string{"Price anchoring", "Scarcity"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DedupeStrings = %v, want %v", got, want)
	}
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]string{" aBc", "AbC", "", "aBc ", "xyz"})
	want := []string{"aBc", "AbC", "xyz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("UniqueIDs = %v, want %v", got, want)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pricing Your Café Offer!", "pricing-your-cafe-offer"},
		{"  --Already-slugged--  ", "already-slugged"},
		{"Stop undercharging: 3 fixes", "stop-undercharging-3-fixes"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	long := Slugify("how to build a morning routine that actually survives a chaotic week with toddlers at home")
	if len(long) > maxSlugLength {
		t.Fatalf("slug exceeds max length: %d", len(long))
	}
	if long[len(long)-1] == '-' {
		t.Fatalf("slug ends with dash: %q", long)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Creator 42", "creator_42"},
		{"../etc/passwd", "etc_passwd"},
		{"", "unknown"},
		{"___", "unknown"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
