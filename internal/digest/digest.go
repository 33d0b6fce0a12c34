package digest

import (
	"regexp"
	"sort"
	"strings"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	DefaultIntroChars   = 420
	DefaultMaxChars     = 2200
	DefaultMaxSentences = 4

	minSentenceChars = 36
	maxSentenceChars = 240
)

// Options bounds digest size. Zero values fall back to the defaults.
type Options struct {
	IntroChars   int
	MaxChars     int
	MaxSentences int
}

func (o Options) withDefaults() Options {
	if o.IntroChars <= 0 {
		o.IntroChars = DefaultIntroChars
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.MaxSentences <= 0 {
		o.MaxSentences = DefaultMaxSentences
	}
	return o
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+["')\]]*\s+`)

// Build derives the digest for one transcript row.
func Build(row knowledge.TranscriptRow, opts Options) knowledge.VideoDigest {
	return knowledge.VideoDigest{
		VideoID:     strings.TrimSpace(row.VideoID),
		Title:       textutil.CollapseWhitespace(row.Title),
		Description: textutil.CollapseWhitespace(row.Description),
		DigestText:  Text(row.Transcript, opts),
		ViewCount:   row.ViewCount,
	}
}

// Text builds the digest string for a transcript.
func Text(transcript string, opts Options) string {
	opts = opts.withDefaults()
	normalized := textutil.CollapseWhitespace(transcript)
	if normalized == "" {
		return ""
	}
	intro := textutil.Truncate(normalized, opts.IntroChars)

	parts := append([]string{intro}, topSentences(normalized, intro, opts.MaxSentences)...)
	return textutil.Truncate(strings.Join(parts, " "), opts.MaxChars)
}

type candidate struct {
	text  string
	score float64
}

// topSentences picks the highest-scoring sentences not already covered by
// intro. Ties keep transcript order.
func topSentences(text, intro string, limit int) []string {
	sentences := SplitSentences(text)
	candidates := make([]candidate, 0, len(sentences))
	for _, sentence := range sentences {
		n := len([]rune(sentence))
		if n < minSentenceChars || n > maxSentenceChars {
			continue
		}
		if strings.Contains(intro, sentence) {
			continue
		}
		candidates = append(candidates, candidate{text: sentence, score: ScoreSentence(sentence)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.text
	}
	return out
}

// SplitSentences segments text on terminal punctuation followed by whitespace.
// The punctuation stays with its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentence := strings.TrimSpace(text[start:loc[1]])
		if sentence != "" {
			out = append(out, sentence)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
