package intelligence

import (
	"encoding/json"
	"fmt"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
)

const requestName = "video_intelligence"

// SystemPrompt is the extraction contract for one batch of video digests.
const SystemPrompt = `You extract product-ready knowledge from a creator's video digests.

Work only from the supplied digest text. Do not invent facts, numbers, or stories that are not in the digest.
Prefer specific, product-worthy framing ("pricing your first coaching offer") over generic labels ("business").
Quotes must be short (under 25 words) and copied from the digest.
recommendedProductTypes may only contain: pdf_guide, mini_course, challenge_7day, checklist_toolkit.
confidence is 0.0-1.0 and reflects how much usable, specific material the digest contains.

Return one entry in "videos" per supplied videoId. Never return a videoId that was not supplied.`

// videoResponse documents the expected response shape. Parsing does not
// depend on it; see parseBatch.
type videoResponse struct {
	Videos []videoResult `json:"videos"`
}

type videoResult struct {
	VideoID                 string   `json:"videoId"`
	SemanticTitle           string   `json:"semanticTitle" jsonschema:"description=Specific title describing the transformation the video teaches"`
	Abstract                string   `json:"abstract" jsonschema:"description=Two or three sentence summary grounded in the digest"`
	Problems                []string `json:"problems"`
	Outcomes                []string `json:"outcomes"`
	Audiences               []string `json:"audiences"`
	Themes                  []string `json:"themes"`
	ActionSteps             []string `json:"actionSteps"`
	Quotes                  []string `json:"quotes"`
	RecommendedProductTypes []string `json:"recommendedProductTypes" jsonschema:"enum=pdf_guide,enum=mini_course,enum=challenge_7day,enum=checklist_toolkit"`
	ProductAngle            string   `json:"productAngle"`
	Confidence              float64  `json:"confidence" jsonschema:"minimum=0,maximum=1"`
}

var responseSchema = extraction.SchemaFor[videoResponse]()

type promptVideo struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ViewCount   int64  `json:"viewCount,omitempty"`
	Digest      string `json:"digest"`
}

func buildRequest(batch []knowledge.VideoDigest) (extraction.Request, error) {
	videos := make([]promptVideo, 0, len(batch))
	for _, d := range batch {
		videos = append(videos, promptVideo{
			VideoID:     d.VideoID,
			Title:       d.Title,
			Description: d.Description,
			ViewCount:   d.ViewCount,
			Digest:      d.DigestText,
		})
	}
	payload, err := json.MarshalIndent(map[string]any{"videos": videos}, "", "  ")
	if err != nil {
		return extraction.Request{}, fmt.Errorf("encode batch: %w", err)
	}
	return extraction.Request{
		Name:   requestName,
		System: SystemPrompt,
		User:   "Extract video intelligence for these videos:\n" + string(payload),
		Schema: responseSchema,
	}, nil
}
