package topics

import (
	"sort"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	fallbackTopics       = 6
	fallbackQuotes       = 3
	fallbackProductTypes = 4
	fallbackLabelRunes   = 80
)

type bucket struct {
	key        string
	label      string
	problem    string
	promise    string
	audience   string
	videoIDs   []string
	quotes     []string
	types      []string
	confidence float64
}

// bucketLabel picks the text a video is grouped by: its first problem,
// else first outcome, else first theme, else its semantic title.
func bucketLabel(rec knowledge.VideoIntelligenceRecord) string {
	for _, list := range [][]string{rec.Problems, rec.Outcomes, rec.Themes} {
		for _, value := range list {
			if v := textutil.CollapseWhitespace(value); v != "" {
				return v
			}
		}
	}
	if v := textutil.CollapseWhitespace(rec.SemanticTitle); v != "" {
		return v
	}
	return rec.VideoID
}

// fallbackNodes buckets records deterministically. It never fails and
// needs no external service.
func fallbackNodes(records []knowledge.VideoIntelligenceRecord) []knowledge.TopicNode {
	index := make(map[string]int)
	var buckets []*bucket
	for _, rec := range records {
		label := bucketLabel(rec)
		key := topicSlug(label)
		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			buckets = append(buckets, &bucket{key: key, label: textutil.Truncate(label, fallbackLabelRunes)})
		}
		b := buckets[pos]
		b.videoIDs = append(b.videoIDs, rec.VideoID)
		b.quotes = append(b.quotes, rec.Quotes...)
		for _, pt := range rec.RecommendedProductTypes {
			b.types = append(b.types, string(pt))
		}
		b.confidence += rec.Confidence
		if b.problem == "" && len(rec.Problems) > 0 {
			b.problem = rec.Problems[0]
		}
		if b.promise == "" && len(rec.Outcomes) > 0 {
			b.promise = rec.Outcomes[0]
		}
		if b.audience == "" && len(rec.Audiences) > 0 {
			b.audience = rec.Audiences[0]
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i].videoIDs) > len(buckets[j].videoIDs)
	})
	if len(buckets) > fallbackTopics {
		buckets = buckets[:fallbackTopics]
	}

	nodes := make([]knowledge.TopicNode, 0, len(buckets))
	for _, b := range buckets {
		problem := b.problem
		if problem == "" {
			problem = b.label
		}
		nodes = append(nodes, knowledge.TopicNode{
			TopicKey:                b.key,
			TopicLabel:              b.label,
			ProblemStatement:        problem,
			PromiseStatement:        b.promise,
			AudienceFit:             b.audience,
			SupportingVideoIDs:      b.videoIDs,
			EvidenceQuotes:          textutil.DedupeStrings(b.quotes, fallbackQuotes),
			RecommendedProductTypes: knowledge.FilterProductTypes(b.types, fallbackProductTypes),
			Confidence:              b.confidence / float64(len(b.videoIDs)),
		})
	}
	return nodes
}
