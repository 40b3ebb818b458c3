package diff

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SimilarityRatio returns a similarity score in [0,1] based on Levenshtein
// distance over runes. Two empty strings are identical.
func SimilarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(dist)/float64(maxLen)
}
