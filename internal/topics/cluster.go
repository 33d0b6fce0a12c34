package topics

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/textutil"
)

const (
	defaultConfidence = 0.5
	maxEvidenceQuotes = 4
	maxProductTypes   = 4
	maxStatementRunes = 400
)

// parseTopics validates a clustering response against the corpus. A topic
// is dropped when it has no label, no supporting videos, or cites a video
// outside the corpus. At most maxTopics survive.
func parseTopics(raw json.RawMessage, corpus map[string]struct{}) ([]knowledge.TopicNode, error) {
	root, err := extraction.Parse(raw)
	if err != nil {
		return nil, err
	}

	var nodes []knowledge.TopicNode
	for _, item := range extraction.Objects(root, "topics") {
		label := textutil.CollapseWhitespace(extraction.String(item, "topicLabel"))
		if label == "" {
			continue
		}
		supporting := extraction.IDList(item, "supportingVideoIds")
		if len(supporting) == 0 || !allKnown(supporting, corpus) {
			continue
		}
		nodes = append(nodes, knowledge.TopicNode{
			TopicLabel:              label,
			ProblemStatement:        textutil.Truncate(extraction.String(item, "problemStatement"), maxStatementRunes),
			PromiseStatement:        textutil.Truncate(extraction.String(item, "promiseStatement"), maxStatementRunes),
			AudienceFit:             textutil.Truncate(extraction.String(item, "audienceFit"), maxStatementRunes),
			SupportingVideoIDs:      supporting,
			EvidenceQuotes:          extraction.StringList(item, "evidenceQuotes", maxEvidenceQuotes),
			RecommendedProductTypes: knowledge.FilterProductTypes(extraction.StringList(item, "recommendedProductTypes", 0), maxProductTypes),
			Confidence:              extraction.Confidence(item, "confidence", defaultConfidence),
		})
		if len(nodes) == maxTopics {
			break
		}
	}
	return assignKeys(nodes), nil
}

func allKnown(ids []string, corpus map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := corpus[id]; !ok {
			return false
		}
	}
	return true
}

// assignKeys sets TopicKey to the label slug, suffixing -2, -3, ... on
// collisions so keys stay unique per creator.
func assignKeys(nodes []knowledge.TopicNode) []knowledge.TopicNode {
	used := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		base := topicSlug(nodes[i].TopicLabel)
		key := base
		for n := 2; ; n++ {
			if _, taken := used[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s-%d", base, n)
		}
		used[key] = struct{}{}
		nodes[i].TopicKey = key
	}
	return nodes
}

// topicSlug slugifies value. Text with no slug-able characters gets a
// stable FNV-64a key instead.
func topicSlug(value string) string {
	if slug := textutil.Slugify(value); slug != "" {
		return slug
	}
	h := fnv.New64a()
	h.Write([]byte(value))
	return fmt.Sprintf("topic-%016x", h.Sum64())
}
