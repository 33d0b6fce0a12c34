package quality

import (
	"fmt"
	"strings"
)

// BrandTokens are the creator's visual identity markers.
type BrandTokens struct {
	PrimaryColor   string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondaryColor"`
	FontFamily     string `json:"fontFamily" yaml:"fontFamily"`
}

const (
	primaryColorPenalty   = 22
	secondaryColorPenalty = 10
	fontPenalty           = 10
	handlePenalty         = 8
	brandPlaceholderCost  = 30
)

func (e *Engine) brandFidelity(doc document, brand BrandTokens, handle string) GateEvaluation {
	score := 100
	var notes []string

	if color := strings.ToLower(strings.TrimSpace(brand.PrimaryColor)); color != "" && !strings.Contains(doc.lowered, color) {
		score -= primaryColorPenalty
		notes = append(notes, fmt.Sprintf("Primary brand color %s is not used anywhere in the markup.", brand.PrimaryColor))
	}
	if color := strings.ToLower(strings.TrimSpace(brand.SecondaryColor)); color != "" && !strings.Contains(doc.lowered, color) {
		score -= secondaryColorPenalty
		notes = append(notes, fmt.Sprintf("Secondary brand color %s is not used anywhere in the markup.", brand.SecondaryColor))
	}
	if font := strings.ToLower(strings.TrimSpace(brand.FontFamily)); font != "" && !containsFontToken(doc.lowered, font) {
		score -= fontPenalty
		notes = append(notes, fmt.Sprintf("Brand font %q is not referenced in the styles.", brand.FontFamily))
	}
	if handle = strings.TrimSpace(handle); handle != "" && !containsHandle(doc.lowered, handle) {
		score -= handlePenalty
		notes = append(notes, fmt.Sprintf("Creator handle %s does not appear in the artifact.", handle))
	}
	if found := doc.placeholders(); len(found) > 0 {
		score -= brandPlaceholderCost
		notes = append(notes, fmt.Sprintf("Placeholder text found (%s); replace it with finished copy.", strings.Join(found, ", ")))
	}
	return newGate(GateBrandFidelity, score, e.thresholds[GateBrandFidelity], notes)
}

// containsFontToken looks for the whole lower-cased font token. Whitespace is
// ignored on both sides, so "'inter', sans-serif" matches
// font-family:'Inter',sans-serif.
func containsFontToken(lowered, font string) bool {
	if strings.Contains(lowered, font) {
		return true
	}
	return strings.Contains(stripSpace(lowered), stripSpace(font))
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func containsHandle(lowered, handle string) bool {
	handle = strings.ToLower(handle)
	if strings.Contains(lowered, handle) {
		return true
	}
	bare := strings.TrimPrefix(handle, "@")
	return bare != "" && strings.Contains(lowered, bare)
}
