package config

import (
	"creatoriq/internal/digest"
	"creatoriq/internal/extraction"
	"creatoriq/internal/quality"
)

const (
	defaultDataDir                  = "~/.local/share/creatoriq"
	defaultLogDir                   = "~/.local/share/creatoriq/logs"
	defaultLLMProvider              = extraction.ProviderOpenRouter
	defaultLLMReferer               = "https://github.com/creatoriq/creatoriq"
	defaultLLMTitle                 = "creatoriq"
	defaultLLMTimeoutSeconds        = 60
	defaultBatchSize                = 6
	defaultConcurrency              = 1
	defaultExtractionTimeoutSeconds = 90
	defaultClusterTimeoutSeconds    = 120
	defaultLockBackend              = LockBackendFile
	defaultLockTTLSeconds           = 300
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Lock backends.
const (
	LockBackendFile  = "file"
	LockBackendRedis = "redis"
)

var defaultModels = map[string]string{
	extraction.ProviderOpenRouter: "google/gemini-2.5-flash",
	extraction.ProviderOpenAI:     "gpt-4.1-mini",
	extraction.ProviderGemini:     "gemini-2.5-flash",
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			Provider:       defaultLLMProvider,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Intelligence: Intelligence{
			BatchSize:                defaultBatchSize,
			Concurrency:              defaultConcurrency,
			ExtractionTimeoutSeconds: defaultExtractionTimeoutSeconds,
			ClusterTimeoutSeconds:    defaultClusterTimeoutSeconds,
			DigestIntroChars:         digest.DefaultIntroChars,
			DigestMaxChars:           digest.DefaultMaxChars,
			DigestMaxSentences:       digest.DefaultMaxSentences,
		},
		Quality: Quality{
			MaxCatalogSimilarity: quality.DefaultMaxCatalogSimilarity,
		},
		Lock: Lock{
			Backend:    defaultLockBackend,
			TTLSeconds: defaultLockTTLSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
