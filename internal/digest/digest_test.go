package digest

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"creatoriq/internal/knowledge"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences(`First point here. Is this second? "Yes!" And a tail without stop`)
	want := []string{"First point here.", "Is this second?", `"Yes!"`, "And a tail without stop"}
	if len(got) != len(want) {
		t.Fatalf("SplitSentences = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScoreSentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     float64
	}{
		{"plain short", "The weather was fine today.", 0},
		{"second person only", "You walked in late.", 1.0},
		{"instructional only", "Practice daily.", 2.4},
		{"salient only", "Money changes things.", 1.6},
		{
			name:     "all criteria",
			sentence: "If you want better results, practice the framework every morning before your first client call.",
			want:     2.4 + 1.0 + 1.6 + 1.2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSentence(tt.sentence); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("ScoreSentence(%q) = %v, want %v", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestTextKeepsIntroAndAppendsTopSentences(t *testing.T) {
	filler := strings.Repeat("Filler words keep rolling along here. ", 20)
	highSignal := "If you want better results, practice the framework every morning before your first client call."
	transcript := filler + highSignal + " " + filler

	got := Text(transcript, Options{})
	if !strings.HasPrefix(got, "Filler words keep rolling along here.") {
		t.Fatalf("digest should start with intro slice, got %q", got[:60])
	}
	if !strings.Contains(got, highSignal) {
		t.Fatalf("digest should include the high-signal sentence")
	}
	if n := utf8.RuneCountInString(got); n > DefaultMaxChars {
		t.Fatalf("digest exceeds max chars: %d", n)
	}
}

func TestTextLimitsAppendedSentences(t *testing.T) {
	var b strings.Builder
	b.WriteString(strings.Repeat("x", 500) + ". ")
	for i := 0; i < 10; i++ {
		b.WriteString("Make sure you track your money habits for real growth in sentence ")
		b.WriteString(string(rune('a' + i)))
		b.WriteString(". ")
	}
	got := Text(b.String(), Options{})
	if count := strings.Count(got, "Make sure you track"); count != DefaultMaxSentences {
		t.Fatalf("expected %d appended sentences, got %d", DefaultMaxSentences, count)
	}
	// ties keep transcript order
	if !strings.Contains(got, "sentence a.") || strings.Contains(got, "sentence e.") {
		t.Fatalf("expected first four tied sentences, got %q", got)
	}
}

func TestTextTruncatesToMaxChars(t *testing.T) {
	transcript := strings.Repeat("If you practice your framework daily you will see results grow steadily. ", 200)
	got := Text(transcript, Options{MaxChars: 300})
	if n := utf8.RuneCountInString(got); n > 300 {
		t.Fatalf("expected at most 300 runes, got %d", n)
	}
}

func TestBuildNormalizesFields(t *testing.T) {
	row := knowledge.TranscriptRow{
		VideoID:     " vid-1 ",
		Title:       "  Pricing   101 ",
		Description: "Learn\nto price",
		Transcript:  "  hello   world  ",
		ViewCount:   42,
	}
	d := Build(row, Options{})
	if d.VideoID != "vid-1" || d.Title != "Pricing 101" || d.Description != "Learn to price" {
		t.Fatalf("unexpected digest metadata: %+v", d)
	}
	if d.DigestText != "hello world" {
		t.Fatalf("unexpected digest text %q", d.DigestText)
	}
	if d.ViewCount != 42 {
		t.Fatalf("unexpected view count %d", d.ViewCount)
	}
	if Text("   ", Options{}) != "" {
		t.Fatal("expected empty digest for blank transcript")
	}
}
