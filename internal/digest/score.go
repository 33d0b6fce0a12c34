package digest

import (
	"strings"

	"creatoriq/internal/textutil"
)

const (
	instructionalWeight = 2.4
	secondPersonWeight  = 1.0
	salientWeight       = 1.6
	lengthBandWeight    = 1.2

	lengthBandMin = 70
	lengthBandMax = 180
)

var instructionalPhrases = []string{
	"how to", "if you", "remember", "practice", "step", "make sure",
	"the key", "try to", "try this", "avoid", "start by", "you need to", "don't forget",
}

var secondPerson = map[string]struct{}{
	"you": {}, "your": {}, "you're": {}, "yourself": {}, "you'll": {}, "you've": {},
}

var salientKeywords = map[string]struct{}{
	"money": {}, "mistake": {}, "mistakes": {}, "results": {}, "struggle": {},
	"fear": {}, "secret": {}, "framework": {}, "system": {}, "growth": {},
	"confidence": {}, "habit": {}, "habits": {}, "strategy": {}, "client": {},
	"clients": {}, "business": {}, "audience": {}, "income": {}, "burnout": {},
}

// ScoreSentence rates how worth extracting a sentence looks. Each criterion
// contributes at most once.
func ScoreSentence(sentence string) float64 {
	lowered := strings.ToLower(sentence)
	var score float64
	for _, phrase := range instructionalPhrases {
		if strings.Contains(lowered, phrase) {
			score += instructionalWeight
			break
		}
	}

	words := strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && r != '\'' && !(r >= '0' && r <= '9')
	})
	for _, w := range words {
		if _, ok := secondPerson[w]; ok {
			score += secondPersonWeight
			break
		}
	}
	for _, w := range textutil.Tokenize(lowered) {
		if _, ok := salientKeywords[w]; ok {
			score += salientWeight
			break
		}
	}

	if n := len([]rune(sentence)); n >= lengthBandMin && n <= lengthBandMax {
		score += lengthBandWeight
	}
	return score
}
