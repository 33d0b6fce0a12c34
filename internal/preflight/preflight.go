package preflight

import (
	"context"

	"creatoriq/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every readiness check that applies to cfg. The redis
// check only runs when the redis lock backend is selected.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDiskSpace("Data disk", cfg.Paths.DataDir, MinFreeBytes),
		CheckDatabase(ctx, cfg),
		CheckLLMFromConfig(ctx, cfg),
	}
	if cfg.Lock.Backend == config.LockBackendRedis {
		results = append(results, CheckRedisFromConfig(ctx, cfg))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
