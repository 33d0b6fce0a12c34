package preflight

import (
	"context"
	"strings"

	"creatoriq/internal/config"
	"creatoriq/internal/lock"
)

// CheckLLMFromConfig evaluates the configured extraction provider.
func CheckLLMFromConfig(ctx context.Context, cfg *config.Config) Result {
	if cfg == nil {
		return Result{Name: "LLM", Detail: "Unknown"}
	}
	name := "LLM (" + providerLabel(cfg.LLM.Provider) + ")"
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return Result{Name: name, Detail: "API key missing (syncs use fallback records)"}
	}
	return CheckLLM(ctx, name, cfg.ExtractionConfig())
}

// CheckRedisFromConfig pings the redis lock server named in cfg.
func CheckRedisFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Redis lock"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if cfg.Lock.Backend != config.LockBackendRedis {
		return Result{Name: name, Passed: true, Detail: "Disabled (file locks)"}
	}
	if strings.TrimSpace(cfg.Lock.RedisAddr) == "" {
		return Result{Name: name, Detail: "Missing address"}
	}
	client := lock.NewRedisClient(cfg)
	defer client.Close()
	return CheckRedis(ctx, name, cfg.Lock.RedisAddr, client)
}

func providerLabel(provider string) string {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return "openrouter"
	}
	return strings.ToLower(provider)
}
