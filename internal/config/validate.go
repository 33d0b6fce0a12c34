package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
)

// Validate ensures the configuration is usable. A missing API key is not an
// error here because only the sync commands need one; see RequireLLMKey.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateIntelligence(); err != nil {
		return err
	}
	if err := c.validateQuality(); err != nil {
		return err
	}
	if err := c.validateLock(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// RequireLLMKey reports a configuration error when no API key is available
// for the selected provider.
func (c *Config) RequireLLMKey() error {
	if strings.TrimSpace(c.LLM.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/creatoriq/config.toml"
	}
	envs := providerKeyEnv[c.LLM.Provider]
	return fmt.Errorf("llm.api_key is required for provider %q. Set %s or edit %s (create with 'creatoriq config init')",
		c.LLM.Provider, strings.Join(envs, " or "), defaultPath)
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case extraction.ProviderOpenRouter, extraction.ProviderOpenAI, extraction.ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be one of openrouter, openai, gemini (got %q)", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.MaxOutputTokens < 0 {
		return errors.New("llm.max_output_tokens must be >= 0")
	}
	return nil
}

func (c *Config) validateIntelligence() error {
	if c.Intelligence.Concurrency > 16 {
		return errors.New("intelligence.concurrency must be at most 16")
	}
	if c.Intelligence.DigestIntroChars >= c.Intelligence.DigestMaxChars {
		return errors.New("intelligence.digest_intro_chars must be smaller than intelligence.digest_max_chars")
	}
	return nil
}

func (c *Config) validateQuality() error {
	if s := c.Quality.MaxCatalogSimilarity; s <= 0 || s > 1 {
		return errors.New("quality.max_catalog_similarity must be in (0, 1]")
	}
	for _, key := range sortedKeys(c.Quality.Thresholds) {
		if _, ok := quality.ParseGateKey(key); !ok {
			return fmt.Errorf("quality.thresholds: unknown gate %q", key)
		}
		if value := c.Quality.Thresholds[key]; value < 0 || value > 100 {
			return fmt.Errorf("quality.thresholds.%s must be between 0 and 100", key)
		}
	}
	for _, key := range sortedKeys(c.Quality.WordTargets) {
		if _, ok := knowledge.ParseProductType(key); !ok {
			return fmt.Errorf("quality.word_targets: unknown product type %q", key)
		}
		if c.Quality.WordTargets[key] <= 0 {
			return fmt.Errorf("quality.word_targets.%s must be positive", key)
		}
	}
	for _, key := range sortedKeys(c.Quality.Weights) {
		if _, ok := quality.ParseGateKey(key); !ok {
			return fmt.Errorf("quality.weights: unknown gate %q", key)
		}
		if value := c.Quality.Weights[key]; value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("quality.weights.%s must be a finite non-negative number", key)
		}
	}
	return nil
}

func (c *Config) validateLock() error {
	switch c.Lock.Backend {
	case LockBackendFile:
	case LockBackendRedis:
		if c.Lock.RedisAddr == "" {
			return errors.New("lock.redis_addr must be set when lock.backend is redis (or set CREATORIQ_REDIS_ADDR)")
		}
		if c.Lock.RedisDB < 0 {
			return errors.New("lock.redis_db must be >= 0")
		}
	default:
		return fmt.Errorf("lock.backend must be file or redis (got %q)", c.Lock.Backend)
	}
	return nil
}

func (c *Config) validateLogging() error {
	for _, field := range []struct{ name, value string }{
		{"logging.level", c.Logging.Level},
		{"logging.file_level", c.Logging.FileLevel},
	} {
		if field.name == "logging.file_level" && field.value == "" {
			continue
		}
		switch field.value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%s must be debug, info, warn, or error (got %q)", field.name, field.value)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
