package quality

import (
	"fmt"
	"math"
	"strings"

	"creatoriq/internal/textutil"
)

// ShingleSize is the token window used for near-duplicate detection.
const ShingleSize = 4

// DocumentShingles returns the 4-word shingle set of an artifact's visible text.
func DocumentShingles(markup string) textutil.ShingleSet {
	return textutil.Shingles(textutil.Tokenize(VisibleText(markup)), ShingleSize)
}

// MaxCatalogSimilarity returns the highest Jaccard similarity between markup
// and any catalog entry, and the number of non-blank entries compared.
func MaxCatalogSimilarity(markup string, catalog []string) (float64, int) {
	return maxSimilarity(DocumentShingles(markup), catalog)
}

func maxSimilarity(candidate textutil.ShingleSet, catalog []string) (float64, int) {
	var best float64
	compared := 0
	for _, entry := range catalog {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		compared++
		if sim := textutil.Jaccard(candidate, DocumentShingles(entry)); sim > best {
			best = sim
		}
	}
	return best, compared
}

func (e *Engine) distinctiveness(doc document, catalog []string) (GateEvaluation, float64) {
	threshold := e.thresholds[GateDistinctiveness]
	candidate := textutil.Shingles(textutil.Tokenize(doc.visibleText), ShingleSize)
	best, compared := maxSimilarity(candidate, catalog)
	if compared == 0 {
		return newGate(GateDistinctiveness, 100, threshold, nil), 0
	}

	score := int(math.Round((1 - best) * 100))
	gate := newGate(GateDistinctiveness, score, threshold, nil)
	gate.Passed = best <= e.maxSimilarity
	if !gate.Passed {
		gate.Notes = []string{fmt.Sprintf(
			"%.0f%% of phrasing overlaps a previously published artifact (limit %.0f%%); rewrite the overlapping sections with new examples.",
			best*100, e.maxSimilarity*100)}
	}
	return gate, best
}
