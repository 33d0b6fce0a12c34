package knowledge

import "strings"

// ProductType enumerates the sellable artifact formats.
type ProductType string

const (
	ProductPDFGuide         ProductType = "pdf_guide"
	ProductMiniCourse       ProductType = "mini_course"
	ProductChallenge7Day    ProductType = "challenge_7day"
	ProductChecklistToolkit ProductType = "checklist_toolkit"
)

// DefaultProductType is used for fallback records and unknown inputs.
const DefaultProductType = ProductPDFGuide

// ProductTypes returns the enum in declaration order.
func ProductTypes() []ProductType {
	return []ProductType{ProductPDFGuide, ProductMiniCourse, ProductChallenge7Day, ProductChecklistToolkit}
}

// ParseProductType normalizes value and reports whether it names a known type.
func ParseProductType(value string) (ProductType, bool) {
	normalized := ProductType(strings.ToLower(strings.TrimSpace(value)))
	for _, pt := range ProductTypes() {
		if pt == normalized {
			return pt, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the known product types.
func (p ProductType) Valid() bool {
	_, ok := ParseProductType(string(p))
	return ok
}

// FilterProductTypes keeps known types, dropping duplicates and preserving order.
func FilterProductTypes(values []string, limit int) []ProductType {
	out := make([]ProductType, 0, len(values))
	seen := make(map[ProductType]struct{}, len(values))
	for _, value := range values {
		pt, ok := ParseProductType(value)
		if !ok {
			continue
		}
		if _, dup := seen[pt]; dup {
			continue
		}
		seen[pt] = struct{}{}
		out = append(out, pt)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
