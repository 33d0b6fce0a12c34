// Package llm provides an OpenRouter chat completions client.
//
// The extraction package wraps it as one of the semantic extraction providers:
// video intelligence batches and topic clustering go through CompleteJSON, and
// free-text generation goes through CompleteText.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive a JSON-mode response.
// Client.CompleteText: send system/user prompts, receive plain text.
// Client.HealthCheck: verify API key and model availability.
// DecodeJSON / ExtractJSONObject: tolerate code fences and prose around payloads.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx, empty completions, and network
// timeouts with exponential backoff (base 1s, max 10s, up to 4 attempts by
// default). Retry-After headers are honoured. Context cancellation aborts
// retries immediately.
package llm
