package testsupport

import (
	"path/filepath"
	"testing"

	"creatoriq/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.LLM.APIKey = "test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLLM points the provider at baseURL, typically an httptest server.
func WithLLM(provider, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.Provider = provider
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithoutLLMKey clears the API key.
func WithoutLLMKey() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = ""
	}
}

// WithRedisLock selects the redis lock backend.
func WithRedisLock(addr string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Lock.Backend = config.LockBackendRedis
		b.cfg.Lock.RedisAddr = addr
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
