package catalog

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

var levParams = levenshtein.NewParams()

// Similarity is the normalized edit-distance similarity of two strings in [0,1].
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, levParams)
}

// TokenSortRatio compares two strings ignoring word order: each side is
// tokenized on whitespace, sorted and rejoined before scoring. Handy for OCR
// keys where word order drifts ("income annual estimated").
func TokenSortRatio(a, b string) float64 {
	return Similarity(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
