package topics

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/lock"
	"creatoriq/internal/logging"
	"creatoriq/internal/services"
)

const (
	stageTopics = "topics"

	DefaultClusterTimeout = 120 * time.Second
)

// Repository is the slice of the store topic sync needs.
type Repository interface {
	ListIntelligence(ctx context.Context, creatorID string) ([]knowledge.VideoIntelligenceRecord, error)
	ReplaceTopics(ctx context.Context, creatorID string, nodes []knowledge.TopicNode) (string, error)
}

// Reader loads a creator's current topics.
type Reader interface {
	ListTopics(ctx context.Context, creatorID string) ([]knowledge.TopicNode, error)
}

// Syncer rebuilds a creator's topic graph from their intelligence records.
type Syncer struct {
	repo           Repository
	client         extraction.Client
	locker         lock.Locker
	logger         *slog.Logger
	clusterTimeout time.Duration
}

// NewSyncer wires a syncer. A nil locker skips per-creator locking and a nil
// client always uses fallback bucketing.
func NewSyncer(repo Repository, client extraction.Client, locker lock.Locker, logger *slog.Logger, clusterTimeout time.Duration) *Syncer {
	if clusterTimeout <= 0 {
		clusterTimeout = DefaultClusterTimeout
	}
	return &Syncer{
		repo:           repo,
		client:         client,
		locker:         locker,
		logger:         logging.NewComponentLogger(logger, stageTopics),
		clusterTimeout: clusterTimeout,
	}
}

// Sync replaces the creator's topics and returns how many were stored. A
// creator without records keeps their existing topics and gets 0.
func (s *Syncer) Sync(ctx context.Context, creatorID, displayName string) (int, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return 0, services.Wrap(services.ErrValidation, stageTopics, "sync creator topics", "Creator id required", nil)
	}
	ctx = services.WithSyncID(services.WithCreatorID(ctx, creatorID), uuid.NewString())
	ctx = services.WithStage(ctx, stageTopics)

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lock.TopicsKey(creatorID))
		if err != nil {
			return 0, err
		}
		defer func() {
			if err := release(); err != nil {
				logging.WarnWithContext(logging.WithContext(ctx, s.logger), "topic lock release failed", "topics_lock_release",
					logging.Error(err),
					logging.String(logging.FieldImpact, "the next topic sync may wait for the lock to expire"),
				)
			}
		}()
	}

	records, err := s.repo.ListIntelligence(ctx, creatorID)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "list video intelligence failed", "topics_list_failed",
			logging.Error(err),
		)
		return 0, services.Wrap(services.ErrPersistence, stageTopics, "list video intelligence", "Failed to list video intelligence", err)
	}
	if len(records) == 0 {
		s.logger.InfoContext(ctx, "no video intelligence; topics unchanged")
		return 0, nil
	}

	nodes, source := s.cluster(ctx, displayName, records)
	generationID, err := s.repo.ReplaceTopics(ctx, creatorID, nodes)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "replace creator topics failed", "topics_replace_failed",
			logging.Error(err),
			logging.Int("topics", len(nodes)),
			logging.String(logging.FieldErrorHint, "the previous topic generation is still current; rerun the sync"),
		)
		return 0, services.Wrap(services.ErrPersistence, stageTopics, "replace creator topics", "Failed to replace creator topics", err)
	}

	s.logger.InfoContext(ctx, "creator topics replaced",
		logging.String(logging.FieldEventType, "topics_synced"),
		logging.String(logging.FieldGenerationID, generationID),
		logging.String("source", source),
		logging.Int("topics", len(nodes)),
		logging.Int("videos", len(records)),
	)
	return len(nodes), nil
}

// cluster asks the extraction service for topics and falls back to
// bucketing on error, timeout, or an empty validated result.
func (s *Syncer) cluster(ctx context.Context, displayName string, records []knowledge.VideoIntelligenceRecord) ([]knowledge.TopicNode, string) {
	nodes, err := s.extract(ctx, displayName, records)
	if err == nil && len(nodes) > 0 {
		return nodes, "extraction"
	}

	attrs := []logging.Attr{
		logging.Int("videos", len(records)),
		logging.String(logging.FieldErrorHint, "check llm provider health with 'creatoriq status'"),
		logging.String(logging.FieldImpact, "topics are grouped by each video's leading problem"),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	} else {
		attrs = append(attrs, logging.String("reason", "no valid topics returned"))
	}
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), "topic clustering unavailable; using fallback buckets", "topics_cluster_fallback", attrs...)
	return fallbackNodes(records), "fallback"
}

func (s *Syncer) extract(ctx context.Context, displayName string, records []knowledge.VideoIntelligenceRecord) ([]knowledge.TopicNode, error) {
	if s.client == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageTopics, "cluster topics", "Extraction client not configured", nil)
	}
	req, err := buildRequest(displayName, records)
	if err != nil {
		return nil, err
	}
	corpus := make(map[string]struct{}, len(records))
	for _, rec := range records {
		corpus[rec.VideoID] = struct{}{}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.clusterTimeout)
	defer cancel()
	raw, err := s.client.GenerateObject(callCtx, req)
	if err != nil {
		return nil, err
	}
	return parseTopics(raw, corpus)
}
