package intelligence

import (
	"encoding/json"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	defaultConfidence = 0.5
	maxListItems      = 8
	maxQuotes         = 5
	maxQuoteRunes     = 280
	maxProductTypes   = 4
)

// parseBatch validates an extraction response. Entries for videos outside
// the batch are dropped, as are repeats of a video already seen.
func parseBatch(raw json.RawMessage, batch []knowledge.VideoDigest) (map[string]knowledge.VideoIntelligenceRecord, error) {
	root, err := extraction.Parse(raw)
	if err != nil {
		return nil, err
	}
	inBatch := make(map[string]knowledge.VideoDigest, len(batch))
	for _, d := range batch {
		inBatch[d.VideoID] = d
	}

	out := make(map[string]knowledge.VideoIntelligenceRecord, len(batch))
	for _, item := range extraction.Objects(root, "videos") {
		id := extraction.String(item, "videoId")
		d, ok := inBatch[id]
		if !ok {
			continue
		}
		if _, dup := out[id]; dup {
			continue
		}
		rec := knowledge.VideoIntelligenceRecord{
			VideoID:                 id,
			SemanticTitle:           extraction.String(item, "semanticTitle"),
			Abstract:                extraction.String(item, "abstract"),
			Problems:                extraction.StringList(item, "problems", maxListItems),
			Outcomes:                extraction.StringList(item, "outcomes", maxListItems),
			Audiences:               extraction.StringList(item, "audiences", maxListItems),
			Themes:                  extraction.StringList(item, "themes", maxListItems),
			ActionSteps:             extraction.StringList(item, "actionSteps", maxListItems),
			Quotes:                  truncateAll(extraction.StringList(item, "quotes", maxQuotes), maxQuoteRunes),
			RecommendedProductTypes: knowledge.FilterProductTypes(extraction.StringList(item, "recommendedProductTypes", 0), maxProductTypes),
			ProductAngle:            extraction.String(item, "productAngle"),
			Confidence:              extraction.Confidence(item, "confidence", defaultConfidence),
		}
		if rec.SemanticTitle == "" {
			rec.SemanticTitle = fallbackTitle(d)
		}
		if rec.Abstract == "" {
			rec.Abstract = fallbackAbstract(d)
		}
		out[id] = rec
	}
	return out, nil
}

func truncateAll(values []string, maxRunes int) []string {
	for i, v := range values {
		values[i] = textutil.Truncate(v, maxRunes)
	}
	return values
}
