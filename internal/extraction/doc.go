// Package extraction is the boundary to the semantic extraction service.
//
// A Client turns a system contract plus a user payload into a JSON object.
// Three providers implement it: OpenRouter chat completions (through the
// llm package), the OpenAI Responses API, and Gemini. Callers never trust the
// shape of what comes back; the helpers in coerce.go read responses through
// gjson and substitute defaults for anything missing or mistyped.
package extraction
