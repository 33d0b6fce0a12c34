package extraction

import (
	"context"
	"encoding/json"

	"creatoriq/internal/services/llm"
)

// OpenRouter serves extraction through an OpenRouter-compatible chat
// completions endpoint in JSON mode. The schema travels in the system prompt.
type OpenRouter struct {
	client *llm.Client
}

// NewOpenRouter wraps an llm client.
func NewOpenRouter(client *llm.Client) *OpenRouter {
	return &OpenRouter{client: client}
}

// GenerateObject implements Client.
func (p *OpenRouter) GenerateObject(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	system, err := systemWithSchema(req.System, req.Schema)
	if err != nil {
		return nil, providerError(ProviderOpenRouter, req, err)
	}
	content, err := p.client.CompleteJSON(ctx, system, req.User)
	if err != nil {
		return nil, providerError(ProviderOpenRouter, req, err)
	}
	raw, err := decodeObject(content)
	if err != nil {
		return nil, providerError(ProviderOpenRouter, req, err)
	}
	return raw, nil
}

// GenerateText implements Client.
func (p *OpenRouter) GenerateText(ctx context.Context, system, user string) (string, error) {
	text, err := p.client.CompleteText(ctx, system, user)
	if err != nil {
		return "", providerError(ProviderOpenRouter, Request{Name: "text"}, err)
	}
	return text, nil
}

// HealthCheck implements Client.
func (p *OpenRouter) HealthCheck(ctx context.Context) error {
	return p.client.HealthCheck(ctx)
}
