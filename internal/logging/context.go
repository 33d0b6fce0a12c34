package logging

import (
	"context"
	"log/slog"

	"creatoriq/internal/services"
)

const (
	// FieldComponent names the package or command emitting the record.
	FieldComponent = "component"
	// FieldCreatorID identifies the creator whose library is processed.
	FieldCreatorID = "creator_id"
	// FieldVideoID identifies a single video.
	FieldVideoID = "video_id"
	// FieldSyncID correlates every record of one sync run.
	FieldSyncID = "sync_id"
	// FieldBatchIndex is the zero-based extraction batch number.
	FieldBatchIndex = "batch_index"
	// FieldGenerationID identifies one topic generation.
	FieldGenerationID = "generation_id"
	// FieldArtifactID identifies an evaluated artifact.
	FieldArtifactID = "artifact_id"
	// FieldStage names the pipeline stage (extraction, clustering, quality).
	FieldStage = "stage"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.CreatorIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCreatorID, id))
	}
	if id, ok := services.SyncIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSyncID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

// contextHandler adds ContextFields to records logged with a context, so
// InfoContext and friends carry creator and sync identifiers automatically.
type contextHandler struct {
	next slog.Handler
}

func newContextHandler(next slog.Handler) slog.Handler {
	return contextHandler{next: next}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if fields := ContextFields(ctx); len(fields) > 0 {
		present := map[string]struct{}{}
		record.Attrs(func(attr slog.Attr) bool {
			present[attr.Key] = struct{}{}
			return true
		})
		record = record.Clone()
		for _, field := range fields {
			if _, ok := present[field.Key]; !ok {
				record.AddAttrs(field)
			}
		}
	}
	return h.next.Handle(ctx, record)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{next: h.next.WithGroup(name)}
}
