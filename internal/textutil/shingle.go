package textutil

import "strings"

// ShingleSet is the set of distinct n-grams of a document.
type ShingleSet map[string]struct{}

// Shingles builds the set of size-token sliding windows (step 1) over tokens.
// Fewer tokens than size yields an empty set.
func Shingles(tokens []string, size int) ShingleSet {
	if size <= 0 || len(tokens) < size {
		return ShingleSet{}
	}
	set := make(ShingleSet, len(tokens)-size+1)
	for i := 0; i+size <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+size], " ")] = struct{}{}
	}
	return set
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets have similarity 0.
func Jaccard(a, b ShingleSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for shingle := range small {
		if _, ok := large[shingle]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
