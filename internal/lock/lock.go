package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"creatoriq/internal/config"
	"creatoriq/internal/services"
)

const (
	stageLock          = "lock"
	defaultRetryDelay  = 100 * time.Millisecond
	topicsKeyNamespace = "topics"
)

// ErrNotAcquired reports that the context ended before the lock was free.
var ErrNotAcquired = errors.New("lock not acquired")

// ReleaseFunc gives up a held lock. It is safe to call more than once.
type ReleaseFunc func() error

// Locker acquires exclusive locks by key, waiting until ctx is done.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// TopicsKey is the per-creator key topic sync holds.
func TopicsKey(creatorID string) string {
	return topicsKeyNamespace + ":" + creatorID
}

// New builds the locker selected by the [lock] config section.
func New(cfg *config.Config) (Locker, error) {
	switch cfg.Lock.Backend {
	case config.LockBackendFile, "":
		return NewFileLocker(cfg.LockDir()), nil
	case config.LockBackendRedis:
		client := NewRedisClient(cfg)
		return NewRedisLocker(client, cfg.LockTTL()), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, stageLock, "new locker", fmt.Sprintf("Unknown lock backend %q", cfg.Lock.Backend), nil)
	}
}

func notAcquired(key string, err error) error {
	if err == nil {
		err = ErrNotAcquired
	} else {
		err = fmt.Errorf("%w: %w", ErrNotAcquired, err)
	}
	return services.Wrap(services.ErrTimeout, stageLock, "acquire "+key, "Failed to acquire lock", err)
}

// onceRelease wraps fn so repeat calls return the first result.
func onceRelease(fn func() error) ReleaseFunc {
	return ReleaseFunc(sync.OnceValue(fn))
}
