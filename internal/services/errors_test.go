package services_test

import (
	"errors"
	"strings"
	"testing"

	"creatoriq/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("disk I/O error")
	err := services.Wrap(services.ErrPersistence, "intelligence", "upsert", "Failed to upsert video intelligence", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"intelligence", "upsert", "Failed to upsert video intelligence", "disk I/O error"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"validation", services.Wrap(services.ErrValidation, "topics", "sync", "creator id is required", nil), false},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad provider", nil), false},
		{"persistence", services.Wrap(services.ErrPersistence, "topics", "replace", "Failed to replace topics", errors.New("locked")), true},
		{"timeout", services.Wrap(services.ErrTimeout, "lock", "acquire", "timed out", nil), true},
		{"plain", errors.New("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsRetryable(tt.err); got != tt.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
