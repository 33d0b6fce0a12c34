package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"creatoriq/internal/textutil"
)

// Parse validates raw as a JSON object and returns it for path lookups.
func Parse(raw json.RawMessage) (gjson.Result, error) {
	if len(raw) == 0 {
		return gjson.Result{}, fmt.Errorf("%w: empty payload", ErrNotObject)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON (%s)", ErrNotObject, textutil.Truncate(textutil.CollapseWhitespace(string(raw)), 160))
	}
	result := gjson.ParseBytes(raw)
	if !result.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: got %s", ErrNotObject, result.Type)
	}
	return result, nil
}

// Objects returns the object elements of the array at path. Anything that is
// not an array, and any element that is not an object, is skipped.
func Objects(r gjson.Result, path string) []gjson.Result {
	value := r.Get(path)
	if !value.IsArray() {
		return nil
	}
	var out []gjson.Result
	for _, item := range value.Array() {
		if item.IsObject() {
			out = append(out, item)
		}
	}
	return out
}

// String returns the trimmed string at path, or "" when it is absent or not
// a string.
func String(r gjson.Result, path string) string {
	value := r.Get(path)
	if value.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(value.Str)
}

// StringList returns the non-blank string elements of the array at path,
// de-duplicated case-insensitively and capped at limit (0 means no cap).
// A missing or mistyped value yields an empty, non-nil slice.
func StringList(r gjson.Result, path string, limit int) []string {
	value := r.Get(path)
	if !value.IsArray() {
		return []string{}
	}
	var raw []string
	for _, item := range value.Array() {
		if item.Type == gjson.String {
			raw = append(raw, item.Str)
		}
	}
	return textutil.DedupeStrings(raw, limit)
}

// IDList returns the trimmed, non-blank string elements of the array at path
// with exact duplicates removed. Identifiers are case-sensitive, so unlike
// StringList no case folding is applied.
func IDList(r gjson.Result, path string) []string {
	value := r.Get(path)
	out := []string{}
	if !value.IsArray() {
		return out
	}
	seen := map[string]struct{}{}
	for _, item := range value.Array() {
		if item.Type != gjson.String {
			continue
		}
		id := strings.TrimSpace(item.Str)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Confidence returns the number at path clamped to [0,1], or fallback when
// the value is absent or not a number.
func Confidence(r gjson.Result, path string, fallback float64) float64 {
	value := r.Get(path)
	if value.Type != gjson.Number {
		return fallback
	}
	switch n := value.Num; {
	case n < 0:
		return 0
	case n > 1:
		return 1
	default:
		return n
	}
}
