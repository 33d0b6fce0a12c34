package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creatoriq/internal/services"
	"creatoriq/internal/services/llm"
)

// Supported providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
)

var errEmptyResponse = errors.New("empty response")

// Config selects and configures a provider.
type Config struct {
	Provider       string
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	// MaxAttempts caps attempts per call; 0 keeps the provider default.
	MaxAttempts     int
	MaxOutputTokens int64
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// New builds the provider named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, services.Wrap(services.ErrConfiguration, stageExtraction, "new client", "API key required", nil)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenRouter, "":
		var opts []llm.Option
		if cfg.MaxAttempts > 0 {
			opts = append(opts, llm.WithRetryMaxAttempts(cfg.MaxAttempts))
		}
		return NewOpenRouter(llm.NewClient(llm.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Model:          cfg.Model,
			Referer:        cfg.Referer,
			Title:          cfg.Title,
			TimeoutSeconds: cfg.TimeoutSeconds,
		}, opts...)), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		provider, err := NewGemini(ctx, cfg, nil)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, stageExtraction, "new client",
			fmt.Sprintf("Unknown provider %q", cfg.Provider), nil)
	}
}
