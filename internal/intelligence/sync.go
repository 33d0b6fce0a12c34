package intelligence

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"creatoriq/internal/digest"
	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/logging"
	"creatoriq/internal/services"
)

const (
	stageIntelligence = "intelligence"

	DefaultBatchSize         = 6
	DefaultConcurrency       = 1
	DefaultExtractionTimeout = 90 * time.Second
)

// Repository is the slice of the store a sync needs.
type Repository interface {
	IntelligenceChecksums(ctx context.Context, creatorID string) (map[string]string, error)
	UpsertIntelligence(ctx context.Context, creatorID string, records []knowledge.VideoIntelligenceRecord) error
}

// Options tunes batching. Zero values use the package defaults.
type Options struct {
	BatchSize         int
	Concurrency       int
	ExtractionTimeout time.Duration
	Digest            digest.Options
	// Now stamps UpdatedAt; tests pin it.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.ExtractionTimeout <= 0 {
		o.ExtractionTimeout = DefaultExtractionTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Syncer recomputes stale video intelligence for one creator at a time.
type Syncer struct {
	repo   Repository
	client extraction.Client
	logger *slog.Logger
	opts   Options
}

// NewSyncer wires a syncer. A nil client makes every video fall back.
func NewSyncer(repo Repository, client extraction.Client, logger *slog.Logger, opts Options) *Syncer {
	return &Syncer{
		repo:   repo,
		client: client,
		logger: logging.NewComponentLogger(logger, stageIntelligence),
		opts:   opts.withDefaults(),
	}
}

type staleVideo struct {
	digest   knowledge.VideoDigest
	checksum string
}

// Sync upserts a record for every row whose checksum differs from the
// stored one and returns how many records were written.
func (s *Syncer) Sync(ctx context.Context, creatorID string, rows []knowledge.TranscriptRow) (int, error) {
	creatorID = strings.TrimSpace(creatorID)
	if creatorID == "" {
		return 0, services.Wrap(services.ErrValidation, stageIntelligence, "sync video intelligence", "Creator id required", nil)
	}
	syncID := uuid.NewString()
	ctx = services.WithSyncID(services.WithCreatorID(ctx, creatorID), syncID)
	ctx = services.WithStage(ctx, stageIntelligence)

	stored, err := s.repo.IntelligenceChecksums(ctx, creatorID)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "load intelligence checksums failed", "intelligence_checksums_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the database path and that no other process holds a write lock"),
		)
		return 0, services.Wrap(services.ErrPersistence, stageIntelligence, "load checksums", "Failed to load intelligence checksums", err)
	}

	stale := s.staleVideos(rows, stored)
	if len(stale) == 0 {
		s.logger.DebugContext(ctx, "video intelligence up to date", logging.Int("videos", len(rows)))
		return 0, nil
	}

	batches := chunk(stale, s.opts.BatchSize)
	results := make([][]knowledge.VideoIntelligenceRecord, len(batches))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			results[i] = s.extractBatch(ctx, i, batch)
			return nil
		})
	}
	_ = g.Wait()

	records := make([]knowledge.VideoIntelligenceRecord, 0, len(stale))
	for _, batch := range results {
		records = append(records, batch...)
	}
	if err := s.repo.UpsertIntelligence(ctx, creatorID, records); err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "upsert video intelligence failed", "intelligence_upsert_failed",
			logging.Error(err),
			logging.Int("records", len(records)),
			logging.String(logging.FieldErrorHint, "rerun the sync; unchanged checksums mean only these videos are extracted again"),
		)
		return 0, services.Wrap(services.ErrPersistence, stageIntelligence, "upsert video intelligence", "Failed to upsert video intelligence", err)
	}

	s.logger.InfoContext(ctx, "video intelligence synced",
		logging.String(logging.FieldEventType, "intelligence_synced"),
		logging.Int("rows", len(rows)),
		logging.Int("recomputed", len(records)),
		logging.Int("batches", len(batches)),
	)
	return len(records), nil
}

// staleVideos digests rows whose checksum is new or changed. Rows without a
// video id are skipped; a repeated id keeps its last row at its first position.
func (s *Syncer) staleVideos(rows []knowledge.TranscriptRow, stored map[string]string) []staleVideo {
	order := make([]string, 0, len(rows))
	latest := make(map[string]knowledge.TranscriptRow, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.VideoID)
		if id == "" {
			continue
		}
		if _, seen := latest[id]; !seen {
			order = append(order, id)
		}
		row.VideoID = id
		latest[id] = row
	}

	var out []staleVideo
	for _, id := range order {
		row := latest[id]
		sum := Checksum(row)
		if stored[id] == sum {
			continue
		}
		out = append(out, staleVideo{digest: digest.Build(row, s.opts.Digest), checksum: sum})
	}
	return out
}

func (s *Syncer) extractBatch(ctx context.Context, index int, batch []staleVideo) []knowledge.VideoIntelligenceRecord {
	digests := make([]knowledge.VideoDigest, len(batch))
	for i, v := range batch {
		digests[i] = v.digest
	}

	logger := logging.WithContext(ctx, s.logger).With(logging.Int(logging.FieldBatchIndex, index))
	extracted, err := s.extract(ctx, digests)
	if err != nil {
		logging.WarnWithContext(logger, "extraction failed; using fallback records", "intelligence_extraction_fallback",
			logging.Error(err),
			logging.Int("videos", len(batch)),
			logging.String(logging.FieldErrorHint, "check llm provider credentials and connectivity with 'creatoriq status'"),
			logging.String(logging.FieldImpact, "records use title and description only until the next changed sync"),
		)
	}

	now := s.opts.Now().UTC()
	out := make([]knowledge.VideoIntelligenceRecord, 0, len(batch))
	missing := 0
	for _, v := range batch {
		rec, ok := extracted[v.digest.VideoID]
		if !ok {
			rec = fallbackRecord(v.digest)
			if err == nil {
				missing++
			}
		}
		rec.TranscriptChecksum = v.checksum
		rec.UpdatedAt = now
		out = append(out, rec)
	}
	if missing > 0 {
		logging.WarnWithContext(logger, "extraction omitted videos; using fallback records", "intelligence_extraction_partial",
			logging.Int("missing", missing),
			logging.Int("videos", len(batch)),
			logging.String(logging.FieldImpact, "omitted videos use title and description only"),
		)
	}
	return out
}

func (s *Syncer) extract(ctx context.Context, batch []knowledge.VideoDigest) (map[string]knowledge.VideoIntelligenceRecord, error) {
	if s.client == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageIntelligence, "extract batch", "Extraction client not configured", nil)
	}
	req, err := buildRequest(batch)
	if err != nil {
		return nil, err
	}
	callCtx, cancel := context.WithTimeout(ctx, s.opts.ExtractionTimeout)
	defer cancel()
	raw, err := s.client.GenerateObject(callCtx, req)
	if err != nil {
		return nil, err
	}
	return parseBatch(raw, batch)
}

func chunk[T any](items []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
