package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"creatoriq/internal/config"
	"creatoriq/internal/extraction"
	"creatoriq/internal/intelligence"
	"creatoriq/internal/lock"
	"creatoriq/internal/logging"
	"creatoriq/internal/store"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger *slog.Logger
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the process logger once. Console output goes to the
// command's stderr so tests can capture it.
func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		FileLevel: cfg.Logging.FileLevel,
		Console:   cmd.ErrOrStderr(),
	}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		opts.FilePath = filepath.Join(dir, logging.LogFileName)
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// extractionClient returns nil when no API key is configured; the sync
// pipelines then use their fallback paths.
func (c *commandContext) extractionClient(ctx context.Context, logger *slog.Logger) (extraction.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireLLMKey(); err != nil {
		logging.WarnWithContext(logger, "llm api key missing; using fallback extraction", "llm_key_missing",
			logging.String(logging.FieldErrorHint, "set llm.api_key or the provider's API key environment variable"),
			logging.String(logging.FieldImpact, "records and topics are built without semantic extraction"),
		)
		return nil, nil
	}
	return extraction.New(ctx, cfg.ExtractionConfig())
}

func (c *commandContext) locker() (lock.Locker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return lock.New(cfg)
}

func (c *commandContext) intelligenceOptions() intelligence.Options {
	cfg := c.config
	return intelligence.Options{
		BatchSize:         cfg.Intelligence.BatchSize,
		Concurrency:       cfg.Intelligence.Concurrency,
		ExtractionTimeout: cfg.ExtractionTimeout(),
		Digest:            cfg.DigestOptions(),
	}
}

func (c *commandContext) jsonRequested() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("--" + name + " is required")
	}
	return nil
}
