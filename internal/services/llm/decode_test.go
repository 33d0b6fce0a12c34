package llm

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose", `Sure! Here it is: {"a":1} Hope that helps.`, `{"a":1}`},
		{"array", `result: [1,2]`, `[1,2]`},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONObject(tt.in); got != tt.want {
				t.Fatalf("ExtractJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeJSONReportsSnippet(t *testing.T) {
	var target map[string]any
	err := DecodeJSON("not json at all", &target)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got := err.Error(); !strings.Contains(got, "payload snippet") || !strings.Contains(got, "not json at all") {
		t.Fatalf("expected snippet in error, got %q", got)
	}
}
