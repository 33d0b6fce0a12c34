package quality

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"creatoriq/internal/knowledge"
)

const (
	structureBonus       = 8
	structurePenalty     = 12
	depthPlaceholderCost = 25
	minStructureMarkers  = 4
)

var structureMarkers = map[knowledge.ProductType]*regexp.Regexp{
	knowledge.ProductPDFGuide:         regexp.MustCompile(`id\s*=\s*["']chapter-\d+["']`),
	knowledge.ProductMiniCourse:       regexp.MustCompile(`id\s*=\s*["'](?:module|lesson)-\d+["']`),
	knowledge.ProductChallenge7Day:    regexp.MustCompile(`id\s*=\s*["']day-\d+["']`),
	knowledge.ProductChecklistToolkit: regexp.MustCompile(`id\s*=\s*["'](?:checklist|tool)-\d+["']`),
}

// canonicalProductType maps requested onto a known type, reporting whether it
// had to fall back to the default.
func canonicalProductType(requested knowledge.ProductType) (knowledge.ProductType, bool) {
	if pt, ok := knowledge.ParseProductType(string(requested)); ok {
		return pt, true
	}
	return knowledge.DefaultProductType, false
}

// contentDepth expects productType to be canonical; requested is only used to
// explain a fallback.
func (e *Engine) contentDepth(doc document, productType, requested knowledge.ProductType, known bool, wordCount int) GateEvaluation {
	var notes []string
	if !known {
		notes = append(notes, fmt.Sprintf("Unknown product type %q; scored against the %s target.", requested, productType))
	}
	target := e.wordTargets[productType]

	ratio := int(math.Round(float64(wordCount) / float64(target) * 100))
	if ratio > 100 {
		ratio = 100
	}
	score := ratio
	if wordCount < target {
		notes = append(notes, fmt.Sprintf("Only %d words of visible content; a %s needs about %d.", wordCount, productType, target))
	}

	markers := len(structureMarkers[productType].FindAllStringIndex(doc.lowered, -1))
	switch {
	case markers >= minStructureMarkers:
		score += structureBonus
	case markers <= 1:
		score -= structurePenalty
		notes = append(notes, fmt.Sprintf("Found %d structural section markers; break the %s into at least %d clearly marked sections.", markers, productType, minStructureMarkers))
	}

	if found := doc.placeholders(); len(found) > 0 {
		score -= depthPlaceholderCost
		notes = append(notes, fmt.Sprintf("Placeholder text (%s) does not count as content.", strings.Join(found, ", ")))
	}
	return newGate(GateContentDepth, score, e.thresholds[GateContentDepth], notes)
}
