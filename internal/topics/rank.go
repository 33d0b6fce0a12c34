package topics

import (
	"context"
	"sort"
	"strings"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/services"
)

const (
	maxSuggestions = 6

	supportWeight      = 1.6
	confidenceWeight   = 2.0
	productTypeBonus   = 1.4
	specificLabelBonus = 0.5
	specificLabelWords = 3
)

// Score is the ranking heuristic for one topic.
func Score(node knowledge.TopicNode, productType knowledge.ProductType) float64 {
	score := float64(len(node.SupportingVideoIDs))*supportWeight + node.Confidence*confidenceWeight
	if node.HasProductType(productType) {
		score += productTypeBonus
	}
	if len(strings.Fields(node.TopicLabel)) >= specificLabelWords {
		score += specificLabelBonus
	}
	return score
}

// Rank orders topics by Score, keeping input order on ties, and returns at
// most six suggestions. Topics without supporting videos are skipped.
func Rank(nodes []knowledge.TopicNode, productType knowledge.ProductType) []knowledge.TopicSuggestion {
	type scored struct {
		node  knowledge.TopicNode
		score float64
	}
	candidates := make([]scored, 0, len(nodes))
	for _, node := range nodes {
		if len(node.SupportingVideoIDs) == 0 {
			continue
		}
		candidates = append(candidates, scored{node: node, score: Score(node, productType)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	out := make([]knowledge.TopicSuggestion, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, knowledge.TopicSuggestion{
			Topic:              c.node.TopicLabel,
			VideoCount:         len(c.node.SupportingVideoIDs),
			Problem:            c.node.ProblemStatement,
			Promise:            c.node.PromiseStatement,
			SupportingVideoIDs: append([]string(nil), c.node.SupportingVideoIDs...),
		})
	}
	return out
}

// LoadRanked reads the creator's current topics and ranks them.
func LoadRanked(ctx context.Context, reader Reader, creatorID string, productType knowledge.ProductType) ([]knowledge.TopicSuggestion, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return nil, services.Wrap(services.ErrValidation, stageTopics, "load ranked topics", "Creator id required", nil)
	}
	nodes, err := reader.ListTopics(ctx, creatorID)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, stageTopics, "load ranked topics", "Failed to list creator topics", err)
	}
	return Rank(nodes, productType), nil
}
