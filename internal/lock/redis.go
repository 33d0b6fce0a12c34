package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"creatoriq/internal/config"
	"creatoriq/internal/services"
)

const redisKeyPrefix = "creatoriq:lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// scripter is the part of *goredis.Client the locker uses.
type scripter interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *goredis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *goredis.Cmd
}

// RedisLocker implements Locker with SET NX and a compare-and-delete release.
type RedisLocker struct {
	client     scripter
	ttl        time.Duration
	retryDelay time.Duration
	newToken   func() string
}

// NewRedisClient builds a client from the [lock] config section.
func NewRedisClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        cfg.Lock.RedisAddr,
		Password:    cfg.Lock.RedisPassword,
		DB:          cfg.Lock.RedisDB,
		DialTimeout: 5 * time.Second,
	})
}

// NewRedisLocker locks keys on client. ttl bounds how long a crashed holder
// can block others.
func NewRedisLocker(client scripter, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retryDelay: defaultRetryDelay, newToken: uuid.NewString}
}

// Acquire retries SET NX with a fresh token until it wins or ctx ends. Release
// deletes the key only if the token still matches.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	redisKey := redisKeyPrefix + key
	token := l.newToken()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, notAcquired(key, ctx.Err())
			}
			return nil, services.Wrap(services.ErrExternalService, stageLock, "acquire "+key, "Redis SET NX failed", err)
		}
		if ok {
			return onceRelease(func() error { return l.release(redisKey, token) }), nil
		}
		select {
		case <-ctx.Done():
			return nil, notAcquired(key, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) release(redisKey, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.client.Eval(ctx, releaseScript, []string{redisKey}, token).Err(); err != nil {
		return services.Wrap(services.ErrExternalService, stageLock, "release "+redisKey, "Redis release failed", err)
	}
	return nil
}
