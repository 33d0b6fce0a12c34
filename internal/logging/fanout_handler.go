package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// sink is one named log destination with its own level threshold.
type sink struct {
	name    string
	level   slog.Leveler
	handler slog.Handler
}

func (s sink) accepts(ctx context.Context, level slog.Level) bool {
	if s.level != nil && level < s.level.Level() {
		return false
	}
	return s.handler.Enabled(ctx, level)
}

// sinkHandler routes each record to every sink whose threshold admits it. A
// failing sink does not stop delivery to the others; errors are joined and
// tagged with the sink name.
type sinkHandler struct {
	sinks []sink
}

func newSinkHandler(sinks ...sink) slog.Handler {
	live := make([]sink, 0, len(sinks))
	for _, s := range sinks {
		if s.handler != nil {
			live = append(live, s)
		}
	}
	switch {
	case len(live) == 0:
		return NoopHandler{}
	case len(live) == 1 && live[0].level == nil:
		return live[0].handler
	}
	return &sinkHandler{sinks: live}
}

func (h *sinkHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.accepts(ctx, level) {
			return true
		}
	}
	return false
}

func (h *sinkHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, s := range h.sinks {
		if !s.accepts(ctx, record.Level) {
			continue
		}
		if err := s.handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("log sink %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(inner slog.Handler) slog.Handler { return inner.WithAttrs(attrs) })
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(inner slog.Handler) slog.Handler { return inner.WithGroup(name) })
}

func (h *sinkHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]sink, len(h.sinks))
	for i, s := range h.sinks {
		next[i] = sink{name: s.name, level: s.level, handler: fn(s.handler)}
	}
	return &sinkHandler{sinks: next}
}

// TeeHandler duplicates output to every non-nil handler, each filtered only by
// its own level.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	sinks := make([]sink, 0, len(handlers))
	for i, h := range handlers {
		sinks = append(sinks, sink{name: fmt.Sprintf("handler-%d", i), handler: h})
	}
	return newSinkHandler(sinks...)
}
