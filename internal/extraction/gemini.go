package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Gemini serves extraction through the Gemini GenerateContent API in JSON
// response mode. The schema travels in the system instruction.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini provider. httpClient may be nil.
func NewGemini(ctx context.Context, cfg Config, httpClient *http.Client) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.HTTPOptions.BaseURL = base
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, providerError(ProviderGemini, Request{Name: "client"}, err)
	}
	return &Gemini{client: client, model: cfg.Model}, nil
}

// GenerateObject implements Client.
func (p *Gemini) GenerateObject(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	system, err := systemWithSchema(req.System, req.Schema)
	if err != nil {
		return nil, providerError(ProviderGemini, req, err)
	}
	text, err := p.generate(ctx, system, req.User, true)
	if err != nil {
		return nil, providerError(ProviderGemini, req, err)
	}
	raw, err := decodeObject(text)
	if err != nil {
		return nil, providerError(ProviderGemini, req, err)
	}
	return raw, nil
}

// GenerateText implements Client.
func (p *Gemini) GenerateText(ctx context.Context, system, user string) (string, error) {
	req := Request{Name: "text", System: system, User: user}
	if err := req.validate(); err != nil {
		return "", err
	}
	text, err := p.generate(ctx, system, user, false)
	if err != nil {
		return "", providerError(ProviderGemini, req, err)
	}
	return strings.TrimSpace(text), nil
}

// HealthCheck implements Client.
func (p *Gemini) HealthCheck(ctx context.Context) error {
	raw, err := p.GenerateObject(ctx, healthRequest())
	if err != nil {
		return err
	}
	return checkHealthPayload(raw)
}

func (p *Gemini) generate(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	}
	if jsonMode {
		config.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(user)}, genai.RoleUser),
	}
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
