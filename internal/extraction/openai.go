package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/tidwall/gjson"
)

const defaultOpenAIMaxOutputTokens = 4000

// OpenAI serves extraction through the Responses API with json_schema output.
type OpenAI struct {
	client          *openai.Client
	model           string
	maxOutputTokens int64
}

// NewOpenAI builds a Responses API provider. Extra request options are
// appended after the ones derived from cfg.
func NewOpenAI(cfg Config, opts ...option.RequestOption) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if timeout := cfg.timeout(); timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(timeout))
	}
	if cfg.MaxAttempts > 0 {
		reqOpts = append(reqOpts, option.WithMaxRetries(cfg.MaxAttempts-1))
	}
	reqOpts = append(reqOpts, opts...)

	client := openai.NewClient(reqOpts...)
	maxOut := cfg.MaxOutputTokens
	if maxOut <= 0 {
		maxOut = defaultOpenAIMaxOutputTokens
	}
	return &OpenAI{client: &client, model: cfg.Model, maxOutputTokens: maxOut}
}

// GenerateObject implements Client.
func (p *OpenAI) GenerateObject(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	// Not strict: coercion fills whatever the model leaves out.
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        req.label(),
			Schema:      req.Schema,
			Strict:      openai.Bool(false),
			Description: openai.String(req.label() + " JSON"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(p.maxOutputTokens),
		Instructions:    openai.String(req.System),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.User, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}
	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, providerError(ProviderOpenAI, req, err)
	}
	raw, err := decodeObject(resp.OutputText())
	if err != nil {
		return nil, providerError(ProviderOpenAI, req, err)
	}
	return raw, nil
}

// GenerateText implements Client.
func (p *OpenAI) GenerateText(ctx context.Context, system, user string) (string, error) {
	req := Request{Name: "text", System: system, User: user}
	if err := req.validate(); err != nil {
		return "", err
	}
	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(p.maxOutputTokens),
		Instructions:    openai.String(system),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(user),
		},
	})
	if err != nil {
		return "", providerError(ProviderOpenAI, req, err)
	}
	return strings.TrimSpace(resp.OutputText()), nil
}

// HealthCheck implements Client.
func (p *OpenAI) HealthCheck(ctx context.Context) error {
	raw, err := p.GenerateObject(ctx, healthRequest())
	if err != nil {
		return err
	}
	return checkHealthPayload(raw)
}

func healthRequest() Request {
	return Request{
		Name:   "health",
		System: "You must respond with JSON only.",
		User:   `Respond with {"ok":true}`,
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"ok": map[string]any{"type": "boolean"}},
			"required":             []string{"ok"},
			"additionalProperties": false,
		},
	}
}

func checkHealthPayload(raw json.RawMessage) error {
	if !gjson.GetBytes(raw, "ok").Bool() {
		return errors.New("extraction health: unexpected response")
	}
	return nil
}
