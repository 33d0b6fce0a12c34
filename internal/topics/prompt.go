package topics

import (
	"encoding/json"
	"fmt"
	"strings"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	requestName         = "creator_topics"
	minTopics           = 4
	maxTopics           = 8
	promptListItems     = 4
	promptAbstractRunes = 400
)

// SystemPrompt is the clustering contract for a creator's full corpus.
var SystemPrompt = fmt.Sprintf(`You group a creator's videos into product topics.

Each topic is a specific problem or transformation a viewer wants ("landing the first three coaching clients"), never a broad genre ("business").
Return between %d and %d topics. A video may support more than one topic.
supportingVideoIds may only contain videoId values from the supplied corpus.
evidenceQuotes must be copied from the supplied quotes; at most 4 per topic.
recommendedProductTypes may only contain: pdf_guide, mini_course, challenge_7day, checklist_toolkit.
confidence is 0.0-1.0 and reflects how well the supporting videos cover the topic.`, minTopics, maxTopics)

type topicResponse struct {
	Topics []topicResult `json:"topics"`
}

type topicResult struct {
	TopicLabel              string   `json:"topicLabel" jsonschema:"description=Short specific label for the transformation"`
	ProblemStatement        string   `json:"problemStatement"`
	PromiseStatement        string   `json:"promiseStatement"`
	AudienceFit             string   `json:"audienceFit"`
	SupportingVideoIDs      []string `json:"supportingVideoIds"`
	EvidenceQuotes          []string `json:"evidenceQuotes"`
	RecommendedProductTypes []string `json:"recommendedProductTypes" jsonschema:"enum=pdf_guide,enum=mini_course,enum=challenge_7day,enum=checklist_toolkit"`
	Confidence              float64  `json:"confidence" jsonschema:"minimum=0,maximum=1"`
}

var responseSchema = extraction.SchemaFor[topicResponse]()

type corpusVideo struct {
	VideoID       string   `json:"videoId"`
	SemanticTitle string   `json:"semanticTitle"`
	Abstract      string   `json:"abstract,omitempty"`
	Problems      []string `json:"problems,omitempty"`
	Outcomes      []string `json:"outcomes,omitempty"`
	Audiences     []string `json:"audiences,omitempty"`
	Themes        []string `json:"themes,omitempty"`
	Quotes        []string `json:"quotes,omitempty"`
	ProductAngle  string   `json:"productAngle,omitempty"`
}

func buildRequest(displayName string, records []knowledge.VideoIntelligenceRecord) (extraction.Request, error) {
	corpus := make([]corpusVideo, 0, len(records))
	for _, rec := range records {
		corpus = append(corpus, corpusVideo{
			VideoID:       rec.VideoID,
			SemanticTitle: rec.SemanticTitle,
			Abstract:      textutil.Truncate(rec.Abstract, promptAbstractRunes),
			Problems:      head(rec.Problems, promptListItems),
			Outcomes:      head(rec.Outcomes, promptListItems),
			Audiences:     head(rec.Audiences, promptListItems),
			Themes:        head(rec.Themes, promptListItems),
			Quotes:        head(rec.Quotes, promptListItems),
			ProductAngle:  rec.ProductAngle,
		})
	}
	payload, err := json.MarshalIndent(map[string]any{"videos": corpus}, "", "  ")
	if err != nil {
		return extraction.Request{}, fmt.Errorf("encode corpus: %w", err)
	}

	creator := strings.TrimSpace(displayName)
	if creator == "" {
		creator = "this creator"
	}
	return extraction.Request{
		Name:   requestName,
		System: SystemPrompt,
		User:   fmt.Sprintf("Cluster the %d videos from %s into topics:\n%s", len(corpus), creator, payload),
		Schema: responseSchema,
	}, nil
}

func head(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
