package lock

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"creatoriq/internal/services"
	"creatoriq/internal/textutil"
)

// FileLocker holds one advisory lock file per key.
type FileLocker struct {
	dir        string
	retryDelay time.Duration
}

// NewFileLocker stores lock files under dir, creating it on first use.
func NewFileLocker(dir string) *FileLocker {
	return &FileLocker{dir: dir, retryDelay: defaultRetryDelay}
}

// Path returns the lock file used for key. Sanitized names get a hash
// suffix so keys that sanitize alike stay distinct.
func (l *FileLocker) Path(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return filepath.Join(l.dir, fmt.Sprintf("%s-%08x.lock", textutil.SanitizeToken(key), uint32(h.Sum64())))
}

// Acquire polls for the key's lock file until it is held or ctx ends. The
// lock is released by the returned func or when the process exits.
func (l *FileLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageLock, "acquire "+key, "Failed to create lock directory", err)
	}
	fl := flock.New(l.Path(key))
	ok, err := fl.TryLockContext(ctx, l.retryDelay)
	if err != nil || !ok {
		return nil, notAcquired(key, err)
	}
	return onceRelease(fl.Unlock), nil
}
