package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"creatoriq/internal/config"
	"creatoriq/internal/logging"
	"creatoriq/internal/services"
)

func TestConsoleLoggerFormatsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithStage(services.WithCreatorID(context.Background(), "calmcoach"), "extraction")
	logging.NewComponentLogger(logger, "intelligence").InfoContext(ctx, "batch extracted",
		logging.Int("videos", 6),
		logging.String("note", "two words"),
	)

	line := buf.String()
	for _, want := range []string{"INFO [intelligence] calmcoach · extraction – batch extracted", "videos=6", `note="two words"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONFormatAndFile(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "nested", logging.LogFileName)
	logger, err := logging.New(logging.Options{Format: "json", Console: &console, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithSyncID(context.Background(), "sync-1")
	logger.ErrorContext(ctx, "persist failed", logging.Error(errors.New("disk full")))

	var record map[string]any
	if err := json.Unmarshal(console.Bytes(), &record); err != nil {
		t.Fatalf("console output is not JSON: %v (%q)", err, console.String())
	}
	if record["level"] != "error" || record["msg"] != "persist failed" || record["sync_id"] != "sync-1" || record["error"] != "disk full" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key in %v", record)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"sync_id":"sync-1"`) {
		t.Fatalf("log file missing context fields: %s", content)
	}
}

func TestFileLevelIsIndependentOfConsole(t *testing.T) {
	var console bytes.Buffer
	logPath := filepath.Join(t.TempDir(), logging.LogFileName)
	logger, err := logging.New(logging.Options{Level: "warn", FileLevel: "debug", Console: &console, FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("batch planned", logging.Int("videos", 6))
	logger.Warn("fallback used")

	if strings.Contains(console.String(), "batch planned") || !strings.Contains(console.String(), "fallback used") {
		t.Fatalf("console should only carry warnings, got %q", console.String())
	}
	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{`"msg":"batch planned"`, `"msg":"fallback used"`} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("log file missing %s: %s", want, content)
		}
	}
}

func TestRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Error("written")

	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, logging.LogFileName)); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "extraction fell back", "extraction_fallback",
		logging.String(logging.FieldImpact, "heuristic themes used"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record[logging.FieldEventType] != "extraction_fallback" || record[logging.FieldImpact] != "heuristic themes used" {
		t.Fatalf("unexpected record %v", record)
	}
	if record[logging.FieldErrorHint] == "" || record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint, got %v", record)
	}
}

func TestContextFieldsDoNotDuplicateExplicitAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithCreatorID(context.Background(), "from-context")
	logger.InfoContext(ctx, "explicit", logging.String(logging.FieldCreatorID, "explicit"))
	if strings.Count(buf.String(), logging.FieldCreatorID) != 1 || !strings.Contains(buf.String(), `"creator_id":"explicit"`) {
		t.Fatalf("unexpected output %s", buf.String())
	}
}

func TestWithContextNilLogger(t *testing.T) {
	logger := logging.WithContext(services.WithCreatorID(context.Background(), "c"), nil)
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("discarded")
}
