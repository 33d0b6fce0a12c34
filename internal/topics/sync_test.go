package topics_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/lock"
	"creatoriq/internal/logging"
	"creatoriq/internal/services"
	"creatoriq/internal/store"
	"creatoriq/internal/testsupport"
	"creatoriq/internal/topics"
)

func seedIntelligence(t *testing.T, st *store.Store, creatorID string, n int) {
	t.Helper()
	records := make([]knowledge.VideoIntelligenceRecord, n)
	for i := range records {
		records[i] = knowledge.VideoIntelligenceRecord{
			VideoID:                 fmt.Sprintf("v%d", i+1),
			TranscriptChecksum:      fmt.Sprintf("v1:%d", i),
			SemanticTitle:           fmt.Sprintf("Video %d", i+1),
			Problems:                []string{fmt.Sprintf("problem %d", i%2)},
			Quotes:                  []string{fmt.Sprintf("quote %d", i)},
			RecommendedProductTypes: []knowledge.ProductType{knowledge.ProductPDFGuide},
			Confidence:              0.6,
			UpdatedAt:               time.Now().UTC(),
		}
	}
	if err := st.UpsertIntelligence(context.Background(), creatorID, records); err != nil {
		t.Fatalf("seed intelligence: %v", err)
	}
}

const clusteredResponse = `{"topics":[
	{"topicLabel":"Beat the afternoon slump","problemStatement":"Energy crashes after lunch","promiseStatement":"Steady energy until dinner","supportingVideoIds":["v1","v3"],"recommendedProductTypes":["challenge_7day"],"confidence":0.9},
	{"topicLabel":"Sleep reset","supportingVideoIds":["v2"],"confidence":0.7}
]}`

func TestSyncStoresClusteredTopics(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 3)

	client := testsupport.Static(clusteredResponse)
	syncer := topics.NewSyncer(st, client, lock.NewFileLocker(cfg.LockDir()), logging.NewNop(), 0)

	count, err := syncer.Sync(context.Background(), "calmcoach", "Calm Coach")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 topics, got %d", count)
	}

	requests := client.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one clustering call, got %d", len(requests))
	}
	if req := requests[0]; req.Name != "creator_topics" || !strings.Contains(req.User, "Calm Coach") || !strings.Contains(req.User, `"v3"`) {
		t.Fatalf("unexpected request %+v", req)
	}

	stored, err := st.ListTopics(context.Background(), "calmcoach")
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(stored) != 2 || stored[0].TopicKey != "beat-the-afternoon-slump" || stored[1].TopicKey != "sleep-reset" {
		t.Fatalf("unexpected stored topics %+v", stored)
	}
	if got := stored[0].SupportingVideoIDs; len(got) != 2 || got[1] != "v3" {
		t.Fatalf("unexpected supporting ids %v", got)
	}
}

func TestSyncFallsBackWhenClusteringFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 4)

	syncer := topics.NewSyncer(st, testsupport.Failing(errors.New("provider down")), nil, logging.NewNop(), 0)
	count, err := syncer.Sync(context.Background(), "calmcoach", "")
	if err != nil {
		t.Fatalf("fallback must not fail: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 fallback buckets, got %d", count)
	}
	stored, err := st.ListTopics(context.Background(), "calmcoach")
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if stored[0].TopicLabel != "problem 0" || len(stored[0].SupportingVideoIDs) != 2 {
		t.Fatalf("unexpected fallback topic %+v", stored[0])
	}
}

func TestSyncFallsBackWhenNoTopicSurvivesValidation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 2)

	client := testsupport.Static(`{"topics":[{"topicLabel":"Invented","supportingVideoIds":["v99"]}]}`)
	syncer := topics.NewSyncer(st, client, nil, logging.NewNop(), 0)
	count, err := syncer.Sync(context.Background(), "calmcoach", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected fallback buckets, got %d", count)
	}
}

func TestSyncTimesOutSlowClustering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 2)

	client := &testsupport.FakeExtractor{Respond: func(ctx context.Context, _ extraction.Request) (json.RawMessage, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	syncer := topics.NewSyncer(st, client, nil, logging.NewNop(), 50*time.Millisecond)

	start := time.Now()
	count, err := syncer.Sync(context.Background(), "calmcoach", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if count == 0 {
		t.Fatal("expected fallback topics after timeout")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cluster timeout not enforced, took %s", elapsed)
	}
}

func TestSyncWithoutIntelligenceLeavesTopicsAlone(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	client := testsupport.Static(clusteredResponse)
	syncer := topics.NewSyncer(st, client, nil, logging.NewNop(), 0)
	count, err := syncer.Sync(context.Background(), "newcreator", "")
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if count != 0 || len(client.Requests()) != 0 {
		t.Fatalf("expected no work, got count=%d calls=%d", count, len(client.Requests()))
	}
	generation, err := st.CurrentTopicGeneration(context.Background(), "newcreator")
	if err != nil {
		t.Fatalf("CurrentTopicGeneration: %v", err)
	}
	if generation != "" {
		t.Fatalf("expected no topic generation, got %q", generation)
	}
}

func TestSyncWaitsForCreatorLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 2)

	locker := lock.NewFileLocker(cfg.LockDir())
	release, err := locker.Acquire(context.Background(), lock.TopicsKey("calmcoach"))
	if err != nil {
		t.Fatalf("hold lock: %v", err)
	}
	defer release()

	syncer := topics.NewSyncer(st, testsupport.Static(clusteredResponse), locker, logging.NewNop(), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if _, err := syncer.Sync(ctx, "calmcoach", ""); !errors.Is(err, lock.ErrNotAcquired) {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}

func TestConcurrentSyncsLeaveOneGeneration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	seedIntelligence(t, st, "calmcoach", 3)

	syncer := topics.NewSyncer(st, testsupport.Static(clusteredResponse), lock.NewFileLocker(cfg.LockDir()), logging.NewNop(), 0)
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = syncer.Sync(context.Background(), "calmcoach", "")
		}()
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
	}

	stored, err := st.ListTopics(context.Background(), "calmcoach")
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected exactly one generation of 2 topics, got %d", len(stored))
	}
}

type failingRepo struct{}

func (failingRepo) ListIntelligence(context.Context, string) ([]knowledge.VideoIntelligenceRecord, error) {
	return nil, errors.New("disk gone")
}

func (failingRepo) ReplaceTopics(context.Context, string, []knowledge.TopicNode) (string, error) {
	return "", errors.New("unreachable")
}

func TestSyncErrors(t *testing.T) {
	var logs strings.Builder
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Console: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	syncer := topics.NewSyncer(failingRepo{}, nil, nil, logger, 0)

	if _, err := syncer.Sync(context.Background(), "  ", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("validation errors should not be logged, got %s", logs.String())
	}
	_, err = syncer.Sync(context.Background(), "calmcoach", "")
	if !errors.Is(err, services.ErrPersistence) || !strings.Contains(err.Error(), "Failed to list video intelligence") {
		t.Fatalf("expected persistence error, got %v", err)
	}
	for _, want := range []string{`"level":"error"`, `"event_type":"topics_list_failed"`, `"creator_id":"calmcoach"`, `"error":"disk gone"`} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %s in error log, got %s", want, logs.String())
		}
	}
	if !services.IsRetryable(err) {
		t.Fatal("persistence errors should be retryable")
	}
}
