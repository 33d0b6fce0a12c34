package quality

import (
	"fmt"
	"sort"
	"strings"
)

const (
	langPenalty         = 15
	viewportPenalty     = 15
	altBasePenalty      = 8
	altPerImagePenalty  = 4
	altPenaltyCap       = 25
	headingPenalty      = 10
	minHeadings         = 4
	legacyMarkupPenalty = 15
)

func (e *Engine) accessibility(doc document) GateEvaluation {
	score := 100
	var notes []string

	if !doc.hasLang {
		score -= langPenalty
		notes = append(notes, `Add a lang attribute to the <html> element (for example lang="en").`)
	}
	if !doc.hasViewport {
		score -= viewportPenalty
		notes = append(notes, `Add <meta name="viewport" content="width=device-width, initial-scale=1">.`)
	}
	if doc.imagesMissingAlt > 0 {
		penalty := altBasePenalty + altPerImagePenalty*doc.imagesMissingAlt
		if penalty > altPenaltyCap {
			penalty = altPenaltyCap
		}
		score -= penalty
		notes = append(notes, fmt.Sprintf("%d of %d images have no alt text.", doc.imagesMissingAlt, doc.images))
	}
	if doc.headings < minHeadings {
		score -= headingPenalty
		notes = append(notes, fmt.Sprintf("Only %d headings; use at least %d to give screen readers a navigable outline.", doc.headings, minHeadings))
	}
	if len(doc.legacyTags) > 0 {
		score -= legacyMarkupPenalty
		tags := make([]string, 0, len(doc.legacyTags))
		for tag := range doc.legacyTags {
			tags = append(tags, "<"+tag+">")
		}
		sort.Strings(tags)
		notes = append(notes, fmt.Sprintf("Replace legacy presentational tags %s with CSS.", strings.Join(tags, ", ")))
	}
	return newGate(GateAccessibility, score, e.thresholds[GateAccessibility], notes)
}
