package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"creatoriq/internal/extraction"
)

// ErrNoResponse is returned by FakeExtractor when no responder is set.
var ErrNoResponse = errors.New("fake extractor: no response configured")

// FakeExtractor implements extraction.Client for tests. Respond decides the
// structured response; every request is recorded.
type FakeExtractor struct {
	Respond   func(ctx context.Context, req extraction.Request) (json.RawMessage, error)
	Text      string
	HealthErr error

	mu       sync.Mutex
	requests []extraction.Request
}

func (f *FakeExtractor) GenerateObject(ctx context.Context, req extraction.Request) (json.RawMessage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	respond := f.Respond
	f.mu.Unlock()
	if respond == nil {
		return nil, ErrNoResponse
	}
	return respond(ctx, req)
}

func (f *FakeExtractor) GenerateText(ctx context.Context, system, user string) (string, error) {
	if f.Text == "" {
		return "", ErrNoResponse
	}
	return f.Text, nil
}

func (f *FakeExtractor) HealthCheck(ctx context.Context) error {
	return f.HealthErr
}

// Requests returns a copy of the recorded structured requests.
func (f *FakeExtractor) Requests() []extraction.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]extraction.Request(nil), f.requests...)
}

// Failing returns an extractor whose structured calls always fail with err.
func Failing(err error) *FakeExtractor {
	return &FakeExtractor{Respond: func(context.Context, extraction.Request) (json.RawMessage, error) {
		return nil, err
	}}
}

// Static returns an extractor that always answers with payload.
func Static(payload string) *FakeExtractor {
	return &FakeExtractor{Respond: func(context.Context, extraction.Request) (json.RawMessage, error) {
		return json.RawMessage(payload), nil
	}}
}
