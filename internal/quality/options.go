package quality

import "creatoriq/internal/knowledge"

// DefaultMaxCatalogSimilarity is the highest Jaccard similarity to any prior
// artifact that still counts as distinct.
const DefaultMaxCatalogSimilarity = 0.72

// DefaultWordTargets returns the word count each product type needs for full
// content depth credit.
func DefaultWordTargets() map[knowledge.ProductType]int {
	return map[knowledge.ProductType]int{
		knowledge.ProductPDFGuide:         1400,
		knowledge.ProductMiniCourse:       1200,
		knowledge.ProductChallenge7Day:    1000,
		knowledge.ProductChecklistToolkit: 900,
	}
}

// Options tunes the engine. Missing entries fall back to the defaults.
type Options struct {
	Thresholds           map[GateKey]int
	WordTargets          map[knowledge.ProductType]int
	MaxCatalogSimilarity float64
}

// Engine evaluates artifacts with a fixed set of thresholds and targets. It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	thresholds    map[GateKey]int
	wordTargets   map[knowledge.ProductType]int
	maxSimilarity float64
}

// NewEngine builds an engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		thresholds:    DefaultThresholds(),
		wordTargets:   DefaultWordTargets(),
		maxSimilarity: DefaultMaxCatalogSimilarity,
	}
	for key, value := range opts.Thresholds {
		if _, ok := e.thresholds[key]; ok && value >= 0 && value <= 100 {
			e.thresholds[key] = value
		}
	}
	for raw, value := range opts.WordTargets {
		if pt, ok := knowledge.ParseProductType(string(raw)); ok && value > 0 {
			e.wordTargets[pt] = value
		}
	}
	if opts.MaxCatalogSimilarity > 0 && opts.MaxCatalogSimilarity <= 1 {
		e.maxSimilarity = opts.MaxCatalogSimilarity
	}
	return e
}

var defaultEngine = NewEngine(Options{})
