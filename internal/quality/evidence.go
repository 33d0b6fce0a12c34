package quality

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"creatoriq/internal/textutil"
)

const (
	coverageWeight         = 70
	commentWeight          = 30
	undeclaredWithComments = 70
	undeclaredNoComments   = 45
	maxListedMissing       = 5
)

var (
	sourceCommentPattern = regexp.MustCompile(`(?is)^\s*sources?\s*:\s*(.*?)\s*$`)
	sourceIDSeparator    = regexp.MustCompile(`[,\s]+`)
)

// sourceComment is one <!-- sources: ... --> marker.
type sourceComment struct {
	raw string
	ids []string
}

func parseSourceComments(comments []string) []sourceComment {
	var out []sourceComment
	for _, comment := range comments {
		match := sourceCommentPattern.FindStringSubmatch(comment)
		if match == nil {
			continue
		}
		var ids []string
		for _, id := range sourceIDSeparator.Split(match[1], -1) {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		out = append(out, sourceComment{raw: strings.Join(ids, ","), ids: ids})
	}
	return out
}

func (e *Engine) evidenceLock(markers []sourceComment, declared []string) GateEvaluation {
	declared = textutil.UniqueIDs(declared)
	threshold := e.thresholds[GateEvidenceLock]

	if len(declared) == 0 {
		if len(markers) > 0 {
			return newGate(GateEvidenceLock, undeclaredWithComments, threshold,
				[]string{"No source videos were declared; source comments cannot be verified."})
		}
		return newGate(GateEvidenceLock, undeclaredNoComments, threshold,
			[]string{"No source videos were declared and the artifact carries no <!-- sources: ... --> comments."})
	}

	referenced := map[string]struct{}{}
	distinct := map[string]struct{}{}
	for _, marker := range markers {
		if marker.raw != "" {
			distinct[marker.raw] = struct{}{}
		}
		for _, id := range marker.ids {
			referenced[id] = struct{}{}
		}
	}

	var missing []string
	for _, id := range declared {
		if _, ok := referenced[id]; !ok {
			missing = append(missing, id)
		}
	}
	coverage := float64(len(declared)-len(missing)) / float64(len(declared))
	commentScore := math.Min(1, float64(len(distinct))/float64(len(declared)))
	score := int(math.Round(coverage*coverageWeight + commentScore*commentWeight))

	var notes []string
	if len(markers) == 0 {
		notes = append(notes, "Add <!-- sources: videoId --> comments next to the sections each video informed.")
	}
	if len(missing) > 0 {
		listed := missing
		if len(listed) > maxListedMissing {
			listed = listed[:maxListedMissing]
		}
		notes = append(notes, fmt.Sprintf("%d of %d declared source videos are never cited: %s.",
			len(missing), len(declared), strings.Join(listed, ", ")))
	}
	return newGate(GateEvidenceLock, score, threshold, notes)
}

// EvidenceCoverage reports the fraction of declared source ids cited by at
// least one sources comment in markup.
func EvidenceCoverage(markup string, declared []string) float64 {
	declared = textutil.UniqueIDs(declared)
	if len(declared) == 0 {
		return 0
	}
	referenced := map[string]struct{}{}
	for _, marker := range parseSourceComments(parseDocument(markup).comments) {
		for _, id := range marker.ids {
			referenced[id] = struct{}{}
		}
	}
	hits := 0
	for _, id := range declared {
		if _, ok := referenced[id]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(declared))
}
