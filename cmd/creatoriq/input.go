package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
)

// brandFile is the on-disk brand kit accepted by --brand.
type brandFile struct {
	quality.BrandTokens `yaml:",inline"`
	Handle              string `json:"handle" yaml:"handle"`
}

// loadTranscriptRows reads a JSON array, JSON Lines, or YAML list of rows.
// The format follows the file extension; unknown extensions are sniffed.
func loadTranscriptRows(path string) ([]knowledge.TranscriptRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript rows: %w", err)
	}
	rows, err := decodeTranscriptRows(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rows, nil
}

func decodeTranscriptRows(ext string, data []byte) ([]knowledge.TranscriptRow, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return decodeYAMLRows(data)
	case ".jsonl", ".ndjson":
		return decodeJSONLines(data)
	case ".json":
		return decodeJSONArray(data)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		return decodeJSONArray(trimmed)
	case trimmed[0] == '{':
		return decodeJSONLines(trimmed)
	default:
		return decodeYAMLRows(trimmed)
	}
}

func decodeJSONArray(data []byte) ([]knowledge.TranscriptRow, error) {
	var rows []knowledge.TranscriptRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeJSONLines(data []byte) ([]knowledge.TranscriptRow, error) {
	var rows []knowledge.TranscriptRow
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var row knowledge.TranscriptRow
		if err := json.Unmarshal(text, &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeYAMLRows(data []byte) ([]knowledge.TranscriptRow, error) {
	var rows []knowledge.TranscriptRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// loadBrand reads a YAML (or JSON, which YAML accepts) brand kit.
func loadBrand(path string) (brandFile, error) {
	var brand brandFile
	if strings.TrimSpace(path) == "" {
		return brand, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return brand, fmt.Errorf("read brand file: %w", err)
	}
	if err := yaml.Unmarshal(data, &brand); err != nil {
		return brand, fmt.Errorf("decode brand file %s: %w", path, err)
	}
	return brand, nil
}

// loadCatalogDir returns the contents of every .html/.htm file in dir,
// sorted by name.
func loadCatalogDir(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var catalog []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".html", ".htm":
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		catalog = append(catalog, string(data))
	}
	return catalog, nil
}
