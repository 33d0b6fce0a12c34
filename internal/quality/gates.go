package quality

// GateKey identifies one quality gate.
type GateKey string

const (
	GateBrandFidelity   GateKey = "brandFidelity"
	GateDistinctiveness GateKey = "distinctiveness"
	GateAccessibility   GateKey = "accessibility"
	GateContentDepth    GateKey = "contentDepth"
	GateEvidenceLock    GateKey = "evidenceLock"
)

// GateKeys returns the gates in their fixed reporting order.
func GateKeys() []GateKey {
	return []GateKey{GateBrandFidelity, GateDistinctiveness, GateAccessibility, GateContentDepth, GateEvidenceLock}
}

// ParseGateKey reports whether value names a gate.
func ParseGateKey(value string) (GateKey, bool) {
	for _, key := range GateKeys() {
		if string(key) == value {
			return key, true
		}
	}
	return "", false
}

// Label returns the human-readable gate name.
func (k GateKey) Label() string {
	switch k {
	case GateBrandFidelity:
		return "Brand Fidelity"
	case GateDistinctiveness:
		return "Distinctiveness"
	case GateAccessibility:
		return "Accessibility"
	case GateContentDepth:
		return "Content Depth"
	case GateEvidenceLock:
		return "Evidence Lock"
	default:
		return string(k)
	}
}

// DefaultThresholds returns the pass threshold of each gate.
func DefaultThresholds() map[GateKey]int {
	return map[GateKey]int{
		GateBrandFidelity:   80,
		GateDistinctiveness: 28,
		GateAccessibility:   70,
		GateContentDepth:    75,
		GateEvidenceLock:    65,
	}
}

// GateEvaluation is the outcome of one gate.
type GateEvaluation struct {
	Key       GateKey  `json:"key"`
	Label     string   `json:"label"`
	Score     int      `json:"score"`
	Threshold int      `json:"threshold"`
	Passed    bool     `json:"passed"`
	Notes     []string `json:"notes"`
}

// Evaluation is the full quality verdict for one artifact.
type Evaluation struct {
	OverallScore         int              `json:"overallScore"`
	OverallPassed        bool             `json:"overallPassed"`
	Gates                []GateEvaluation `json:"gates"`
	FailingGates         []GateKey        `json:"failingGates"`
	MaxCatalogSimilarity float64          `json:"maxCatalogSimilarity"`
	WordCount            int              `json:"wordCount"`
	SourceCommentCount   int              `json:"sourceCommentCount"`
	Weights              Weights          `json:"weights"`
}

// Gate returns the evaluation for key.
func (e Evaluation) Gate(key GateKey) (GateEvaluation, bool) {
	for _, gate := range e.Gates {
		if gate.Key == key {
			return gate, true
		}
	}
	return GateEvaluation{}, false
}

func newGate(key GateKey, score, threshold int, notes []string) GateEvaluation {
	score = clampScore(score)
	if notes == nil {
		notes = []string{}
	}
	return GateEvaluation{
		Key:       key,
		Label:     key.Label(),
		Score:     score,
		Threshold: threshold,
		Passed:    score >= threshold,
		Notes:     notes,
	}
}

func clampScore(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
