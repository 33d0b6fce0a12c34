package services

import "context"

type contextKey string

const (
	creatorIDKey contextKey = "creator_id"
	stageKey     contextKey = "stage"
	syncIDKey    contextKey = "sync_id"
)

// WithCreatorID annotates context with the creator whose library is being processed.
func WithCreatorID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, creatorIDKey, id)
}

// CreatorIDFromContext extracts the creator identifier if present.
func CreatorIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(creatorIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithSyncID annotates context with the correlation identifier of one sync run.
func WithSyncID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, syncIDKey, id)
}

// SyncIDFromContext extracts the sync correlation identifier if present.
func SyncIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(syncIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
