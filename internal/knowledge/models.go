package knowledge

import "time"

// TranscriptRow is one video's source material as handed to a sync.
type TranscriptRow struct {
	VideoID     string `json:"videoId" yaml:"videoId"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Transcript  string `json:"transcript" yaml:"transcript"`
	ViewCount   int64  `json:"viewCount" yaml:"viewCount"`
}

// VideoDigest is the bounded extraction input rebuilt from a TranscriptRow on
// every sync. It is never persisted.
type VideoDigest struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DigestText  string `json:"digest"`
	ViewCount   int64  `json:"viewCount"`
}

// VideoIntelligenceRecord is the structured knowledge extracted for one video.
// TranscriptChecksum always matches the source text that produced the rest of
// the fields.
type VideoIntelligenceRecord struct {
	VideoID                 string        `json:"videoId"`
	TranscriptChecksum      string        `json:"transcriptChecksum"`
	SemanticTitle           string        `json:"semanticTitle"`
	Abstract                string        `json:"abstract"`
	Problems                []string      `json:"problems"`
	Outcomes                []string      `json:"outcomes"`
	Audiences               []string      `json:"audiences"`
	Themes                  []string      `json:"themes"`
	ActionSteps             []string      `json:"actionSteps"`
	Quotes                  []string      `json:"quotes"`
	RecommendedProductTypes []ProductType `json:"recommendedProductTypes"`
	ProductAngle            string        `json:"productAngle"`
	Confidence              float64       `json:"confidence"`
	UpdatedAt               time.Time     `json:"updatedAt"`
}

// TopicNode is a creator-level cluster of video intelligence representing one
// product-worthy angle.
type TopicNode struct {
	TopicKey                string        `json:"topicKey"`
	TopicLabel              string        `json:"topicLabel"`
	ProblemStatement        string        `json:"problemStatement"`
	PromiseStatement        string        `json:"promiseStatement"`
	AudienceFit             string        `json:"audienceFit"`
	SupportingVideoIDs      []string      `json:"supportingVideoIds"`
	EvidenceQuotes          []string      `json:"evidenceQuotes"`
	RecommendedProductTypes []ProductType `json:"recommendedProductTypes"`
	Confidence              float64       `json:"confidence"`
}

// HasProductType reports whether the node recommends pt. Both sides are
// compared in canonical form, so "PDF_GUIDE" matches pdf_guide.
func (n TopicNode) HasProductType(pt ProductType) bool {
	want, ok := ParseProductType(string(pt))
	if !ok {
		return false
	}
	for _, candidate := range n.RecommendedProductTypes {
		if got, ok := ParseProductType(string(candidate)); ok && got == want {
			return true
		}
	}
	return false
}

// TopicSuggestion is the ranked view of a topic handed to product generation.
type TopicSuggestion struct {
	Topic              string   `json:"topic"`
	VideoCount         int      `json:"videoCount"`
	Problem            string   `json:"problem"`
	Promise            string   `json:"promise"`
	SupportingVideoIDs []string `json:"supportingVideoIds"`
}
