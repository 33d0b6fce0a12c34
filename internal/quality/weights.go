package quality

import "math"

// Weights maps each gate to its share of the overall score.
type Weights map[GateKey]float64

// DefaultWeights returns the stock gate weighting.
func DefaultWeights() Weights {
	return Weights{
		GateBrandFidelity:   0.24,
		GateDistinctiveness: 0.20,
		GateAccessibility:   0.18,
		GateContentDepth:    0.24,
		GateEvidenceLock:    0.14,
	}
}

// NormalizeWeights merges a partial override onto the defaults and rescales
// the result to sum to 1. Non-positive and non-finite overrides are ignored.
func NormalizeWeights(override Weights) Weights {
	merged := DefaultWeights()
	for _, key := range GateKeys() {
		value, ok := override[key]
		if !ok || value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		merged[key] = value
	}
	var total float64
	for _, key := range GateKeys() {
		total += merged[key]
	}
	for _, key := range GateKeys() {
		merged[key] /= total
	}
	return merged
}

func weightedScore(gates []GateEvaluation, weights Weights) int {
	var sum float64
	for _, gate := range gates {
		sum += float64(gate.Score) * weights[gate.Key]
	}
	return clampScore(int(math.Round(sum)))
}
