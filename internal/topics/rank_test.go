package topics_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/services"
	"creatoriq/internal/topics"
)

func node(label string, support int, confidence float64, types ...knowledge.ProductType) knowledge.TopicNode {
	ids := make([]string, support)
	for i := range ids {
		ids[i] = label + "-v" + string(rune('a'+i))
	}
	return knowledge.TopicNode{TopicLabel: label, SupportingVideoIDs: ids, Confidence: confidence, RecommendedProductTypes: types}
}

func TestScore(t *testing.T) {
	n := node("Fix your sleep schedule", 3, 0.5, knowledge.ProductChallenge7Day)
	if got := topics.Score(n, knowledge.ProductChallenge7Day); math.Abs(got-7.7) > 1e-9 {
		t.Fatalf("unexpected score %v", got)
	}
	if got := topics.Score(n, knowledge.ProductPDFGuide); math.Abs(got-6.3) > 1e-9 {
		t.Fatalf("unexpected score without type bonus %v", got)
	}
}

func TestScoreNormalizesProductType(t *testing.T) {
	n := node("Fix your sleep schedule", 3, 0.5, knowledge.ProductChallenge7Day)
	for _, requested := range []knowledge.ProductType{"CHALLENGE_7DAY", " challenge_7day ", "Challenge_7Day"} {
		if got := topics.Score(n, requested); math.Abs(got-7.7) > 1e-9 {
			t.Fatalf("Score(%q) = %v, want 7.7", requested, got)
		}
	}
	ranked := topics.Rank([]knowledge.TopicNode{
		node("Sleep", 1, 0.5),
		node("Energy", 1, 0.5, knowledge.ProductMiniCourse),
	}, "MINI_COURSE")
	if len(ranked) != 2 || ranked[0].Topic != "Energy" {
		t.Fatalf("expected mixed-case type to earn the bonus, got %+v", ranked)
	}
}

func TestRankOrdersAndCaps(t *testing.T) {
	nodes := []knowledge.TopicNode{
		node("Sleep", 2, 0.5),
		node("Energy", 4, 0.5),
		node("Unsupported topic here", 0, 1),
		node("Focus", 2, 0.5),
		node("Build a morning routine", 1, 0.9, knowledge.ProductMiniCourse),
		node("Diet", 1, 0.1),
		node("Hydration", 1, 0.2),
		node("Posture", 1, 0.3),
	}

	ranked := topics.Rank(nodes, knowledge.ProductMiniCourse)
	if len(ranked) != 6 {
		t.Fatalf("expected 6 suggestions, got %d", len(ranked))
	}
	want := []string{"Energy", "Build a morning routine", "Sleep", "Focus", "Posture", "Hydration"}
	for i, w := range want {
		if ranked[i].Topic != w {
			t.Fatalf("position %d: expected %q, got %q (%+v)", i, w, ranked[i].Topic, ranked)
		}
	}
	if ranked[0].VideoCount != 4 || len(ranked[0].SupportingVideoIDs) != 4 {
		t.Fatalf("unexpected suggestion %+v", ranked[0])
	}
}

func TestRankEmpty(t *testing.T) {
	if got := topics.Rank(nil, knowledge.ProductPDFGuide); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

type stubReader struct {
	nodes []knowledge.TopicNode
	err   error
}

func (s stubReader) ListTopics(context.Context, string) ([]knowledge.TopicNode, error) {
	return s.nodes, s.err
}

func TestLoadRanked(t *testing.T) {
	got, err := topics.LoadRanked(context.Background(), stubReader{nodes: []knowledge.TopicNode{node("Sleep", 1, 0.5)}}, "calmcoach", knowledge.ProductPDFGuide)
	if err != nil || len(got) != 1 {
		t.Fatalf("LoadRanked: %v %v", got, err)
	}
	if _, err := topics.LoadRanked(context.Background(), stubReader{}, "", knowledge.ProductPDFGuide); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := topics.LoadRanked(context.Background(), stubReader{err: errors.New("boom")}, "calmcoach", knowledge.ProductPDFGuide); !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
