package config

import (
	"time"

	"creatoriq/internal/digest"
	"creatoriq/internal/extraction"
	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
)

// ExtractionConfig returns the provider settings for extraction.New.
func (c *Config) ExtractionConfig() extraction.Config {
	return extraction.Config{
		Provider:        c.LLM.Provider,
		APIKey:          c.LLM.APIKey,
		BaseURL:         c.LLM.BaseURL,
		Model:           c.LLM.Model,
		Referer:         c.LLM.Referer,
		Title:           c.LLM.Title,
		TimeoutSeconds:  c.LLM.TimeoutSeconds,
		MaxOutputTokens: c.LLM.MaxOutputTokens,
	}
}

// DigestOptions returns the digest size bounds.
func (c *Config) DigestOptions() digest.Options {
	return digest.Options{
		IntroChars:   c.Intelligence.DigestIntroChars,
		MaxChars:     c.Intelligence.DigestMaxChars,
		MaxSentences: c.Intelligence.DigestMaxSentences,
	}
}

// ExtractionTimeout bounds one extraction batch call.
func (c *Config) ExtractionTimeout() time.Duration {
	return time.Duration(c.Intelligence.ExtractionTimeoutSeconds) * time.Second
}

// ClusterTimeout bounds one topic clustering call.
func (c *Config) ClusterTimeout() time.Duration {
	return time.Duration(c.Intelligence.ClusterTimeoutSeconds) * time.Second
}

// LockTTL is how long a redis topic lock survives a crashed holder.
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Lock.TTLSeconds) * time.Second
}

// QualityThresholds returns the configured gate threshold overrides.
func (c *Config) QualityThresholds() map[quality.GateKey]int {
	out := make(map[quality.GateKey]int, len(c.Quality.Thresholds))
	for key, value := range c.Quality.Thresholds {
		if gate, ok := quality.ParseGateKey(key); ok {
			out[gate] = value
		}
	}
	return out
}

// WordTargets returns the configured word target overrides.
func (c *Config) WordTargets() map[knowledge.ProductType]int {
	out := make(map[knowledge.ProductType]int, len(c.Quality.WordTargets))
	for key, value := range c.Quality.WordTargets {
		if pt, ok := knowledge.ParseProductType(key); ok {
			out[pt] = value
		}
	}
	return out
}

// QualityWeights returns the configured partial weight override.
func (c *Config) QualityWeights() quality.Weights {
	out := make(quality.Weights, len(c.Quality.Weights))
	for key, value := range c.Quality.Weights {
		if gate, ok := quality.ParseGateKey(key); ok {
			out[gate] = value
		}
	}
	return out
}

// QualityOptions assembles engine options from the [quality] section.
func (c *Config) QualityOptions() quality.Options {
	return quality.Options{
		Thresholds:           c.QualityThresholds(),
		WordTargets:          c.WordTargets(),
		MaxCatalogSimilarity: c.Quality.MaxCatalogSimilarity,
	}
}
