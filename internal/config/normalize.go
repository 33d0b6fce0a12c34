package config

import (
	"fmt"
	"os"
	"strings"

	"creatoriq/internal/extraction"
)

// providerKeyEnv lists the environment variables consulted, in order, when
// llm.api_key is empty.
var providerKeyEnv = map[string][]string{
	extraction.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
	extraction.ProviderOpenAI:     {"OPENAI_API_KEY"},
	extraction.ProviderGemini:     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeIntelligence()
	c.normalizeQuality()
	c.normalizeLock()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		for _, name := range providerKeyEnv[c.LLM.Provider] {
			if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
				c.LLM.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultModels[c.LLM.Provider]
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeIntelligence() {
	d := Default().Intelligence
	fillPositive(&c.Intelligence.BatchSize, d.BatchSize)
	fillPositive(&c.Intelligence.Concurrency, d.Concurrency)
	fillPositive(&c.Intelligence.ExtractionTimeoutSeconds, d.ExtractionTimeoutSeconds)
	fillPositive(&c.Intelligence.ClusterTimeoutSeconds, d.ClusterTimeoutSeconds)
	fillPositive(&c.Intelligence.DigestIntroChars, d.DigestIntroChars)
	fillPositive(&c.Intelligence.DigestMaxChars, d.DigestMaxChars)
	fillPositive(&c.Intelligence.DigestMaxSentences, d.DigestMaxSentences)
}

func (c *Config) normalizeQuality() {
	if c.Quality.MaxCatalogSimilarity == 0 {
		c.Quality.MaxCatalogSimilarity = Default().Quality.MaxCatalogSimilarity
	}
	c.Quality.Thresholds = trimKeys(c.Quality.Thresholds)
	c.Quality.WordTargets = lowerKeys(c.Quality.WordTargets)
	c.Quality.Weights = trimKeys(c.Quality.Weights)
}

func (c *Config) normalizeLock() {
	c.Lock.Backend = strings.ToLower(strings.TrimSpace(c.Lock.Backend))
	if c.Lock.Backend == "" {
		c.Lock.Backend = defaultLockBackend
	}
	c.Lock.RedisAddr = strings.TrimSpace(c.Lock.RedisAddr)
	if c.Lock.RedisAddr == "" {
		if value, ok := os.LookupEnv("CREATORIQ_REDIS_ADDR"); ok {
			c.Lock.RedisAddr = strings.TrimSpace(value)
		}
	}
	if c.Lock.TTLSeconds <= 0 {
		c.Lock.TTLSeconds = defaultLockTTLSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.FileLevel = strings.ToLower(strings.TrimSpace(c.Logging.FileLevel))
	if c.Logging.FileLevel == "" {
		c.Logging.FileLevel = c.Logging.Level
	}
}

func fillPositive(value *int, fallback int) {
	if *value <= 0 {
		*value = fallback
	}
}

// trimKeys keeps gate keys case-sensitive since they are camelCase.
func trimKeys[V any](in map[string]V) map[string]V {
	if len(in) == 0 {
		return in
	}
	out := make(map[string]V, len(in))
	for key, value := range in {
		out[strings.TrimSpace(key)] = value
	}
	return out
}

func lowerKeys[V any](in map[string]V) map[string]V {
	if len(in) == 0 {
		return in
	}
	out := make(map[string]V, len(in))
	for key, value := range in {
		out[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return out
}
