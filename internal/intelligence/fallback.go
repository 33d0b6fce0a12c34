package intelligence

import (
	"strings"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	fallbackConfidence    = 0.35
	fallbackAbstractRunes = 280
)

// fallbackRecord builds the deterministic record used when extraction is
// unavailable for a video.
func fallbackRecord(d knowledge.VideoDigest) knowledge.VideoIntelligenceRecord {
	return knowledge.VideoIntelligenceRecord{
		VideoID:                 d.VideoID,
		SemanticTitle:           fallbackTitle(d),
		Abstract:                fallbackAbstract(d),
		Problems:                []string{},
		Outcomes:                []string{},
		Audiences:               []string{},
		Themes:                  []string{},
		ActionSteps:             []string{},
		Quotes:                  []string{},
		RecommendedProductTypes: []knowledge.ProductType{knowledge.DefaultProductType},
		Confidence:              fallbackConfidence,
	}
}

func fallbackTitle(d knowledge.VideoDigest) string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return d.VideoID
}

func fallbackAbstract(d knowledge.VideoDigest) string {
	if desc := textutil.CollapseWhitespace(d.Description); desc != "" {
		return desc
	}
	return textutil.Truncate(d.DigestText, fallbackAbstractRunes)
}
