package quality

import (
	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

// Input is everything the engine needs to judge one artifact.
type Input struct {
	HTML           string
	ProductType    knowledge.ProductType
	SourceVideoIDs []string
	CatalogHTML    []string
	Brand          BrandTokens
	CreatorHandle  string
	// Weights optionally overrides some or all default gate weights.
	Weights Weights
}

// Evaluate scores in with the default thresholds and targets.
func Evaluate(in Input) Evaluation {
	return defaultEngine.Evaluate(in)
}

// Evaluate scores an artifact against every gate.
func (e *Engine) Evaluate(in Input) Evaluation {
	doc := parseDocument(in.HTML)
	wordCount := textutil.CountWords(doc.visibleText)
	markers := parseSourceComments(doc.comments)
	productType, known := canonicalProductType(in.ProductType)

	distinct, similarity := e.distinctiveness(doc, in.CatalogHTML)
	gates := []GateEvaluation{
		e.brandFidelity(doc, in.Brand, in.CreatorHandle),
		distinct,
		e.accessibility(doc),
		e.contentDepth(doc, productType, in.ProductType, known, wordCount),
		e.evidenceLock(markers, in.SourceVideoIDs),
	}

	weights := NormalizeWeights(in.Weights)
	failing := []GateKey{}
	for _, gate := range gates {
		if !gate.Passed {
			failing = append(failing, gate.Key)
		}
	}
	return Evaluation{
		OverallScore:         weightedScore(gates, weights),
		OverallPassed:        len(failing) == 0,
		Gates:                gates,
		FailingGates:         failing,
		MaxCatalogSimilarity: similarity,
		WordCount:            wordCount,
		SourceCommentCount:   len(markers),
		Weights:              weights,
	}
}
