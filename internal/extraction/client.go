package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"creatoriq/internal/services"
	"creatoriq/internal/services/llm"
)

const stageExtraction = "extraction"

// Request describes one structured extraction call.
type Request struct {
	// Name identifies the response shape, for example "video_intelligence".
	Name   string
	System string
	User   string
	// Schema is the JSON Schema the response should follow. Providers treat
	// it as guidance; responses are still validated by the caller.
	Schema map[string]any
}

// Client is the extraction service consumed by the sync pipelines.
type Client interface {
	GenerateObject(ctx context.Context, req Request) (json.RawMessage, error)
	GenerateText(ctx context.Context, system, user string) (string, error)
	HealthCheck(ctx context.Context) error
}

// ErrNotObject reports a response that does not contain a JSON object.
var ErrNotObject = errors.New("response is not a JSON object")

func (r Request) validate() error {
	if strings.TrimSpace(r.System) == "" {
		return services.Wrap(services.ErrValidation, stageExtraction, r.label(), "System prompt required", nil)
	}
	if strings.TrimSpace(r.User) == "" {
		return services.Wrap(services.ErrValidation, stageExtraction, r.label(), "User prompt required", nil)
	}
	return nil
}

func (r Request) label() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return "response"
}

// systemWithSchema appends the schema to a system prompt for providers that
// only offer a generic JSON mode.
func systemWithSchema(system string, schema map[string]any) (string, error) {
	system = strings.TrimSpace(system)
	if len(schema) == 0 {
		return system, nil
	}
	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode schema: %w", err)
	}
	return system + "\n\nReturn only a JSON object that conforms to this JSON Schema:\n" + string(encoded), nil
}

// decodeObject pulls the JSON object out of raw model output.
func decodeObject(content string) (json.RawMessage, error) {
	payload := llm.ExtractJSONObject(content)
	if _, err := Parse(json.RawMessage(payload)); err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// providerError classifies a failed provider call. Deadline overruns become
// timeouts so callers can tell a slow model from a broken one.
func providerError(provider string, req Request, err error) error {
	marker := services.ErrExternalService
	if errors.Is(err, context.DeadlineExceeded) {
		marker = services.ErrTimeout
	}
	return services.Wrap(marker, stageExtraction, provider+" "+req.label(), "Extraction request failed", err)
}
