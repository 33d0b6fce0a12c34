package quality

import (
	"fmt"
	"strings"
)

// BuildFeedbackForPrompt renders evaluation as remediation instructions for a
// regeneration prompt. Passing artifacts get a single confirmation line.
func BuildFeedbackForPrompt(evaluation Evaluation) string {
	if evaluation.OverallPassed {
		return fmt.Sprintf("All quality gates passed with an overall score of %d/100.", evaluation.OverallScore)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Quality review: overall score %d/100 with %d of %d gates failing.\n",
		evaluation.OverallScore, len(evaluation.FailingGates), len(evaluation.Gates))
	for _, key := range evaluation.FailingGates {
		gate, ok := evaluation.Gate(key)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s scored %d (needs %d).", gate.Label, gate.Score, gate.Threshold)
		for _, note := range gate.Notes {
			b.WriteByte(' ')
			b.WriteString(note)
		}
		b.WriteByte('\n')
	}
	b.WriteString("Revise the artifact to fix every failing gate while keeping the sections that already pass.")
	return b.String()
}
