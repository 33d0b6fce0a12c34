package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 64

// Slugify folds accents, lowercases, and joins alphanumeric runs with hyphens:
// "Pricing Your Café Offer!" becomes "pricing-your-cafe-offer".
func Slugify(value string) string {
	// Transformers carry state, so build one per call.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	slug := b.String()
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		if cut := strings.LastIndexByte(slug, '-'); cut > maxSlugLength/2 {
			slug = slug[:cut]
		}
		slug = strings.Trim(slug, "-")
	}
	return slug
}
