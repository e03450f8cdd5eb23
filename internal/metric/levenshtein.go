package metric

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Levenshtein accepts pairs whose edit distance is below Threshold.
// With Damerau set, adjacent transpositions count as a single edit.
type Levenshtein struct {
	Threshold int
	Damerau   bool
}

// Accept reports whether a and b are within the edit threshold.
func (m Levenshtein) Accept(a, b string) bool {
	return editDistance(a, b, m.Damerau) < m.Threshold
}

// Validate checks that Threshold is nonnegative.
func (m Levenshtein) Validate() error {
	return validateThreshold(m.Threshold)
}

// NormalizedLevenshtein accepts pairs whose normalized similarity exceeds Ratio.
//
// Similarity is 1 - distance/max(len(a), len(b)) with lengths counted in
// runes; two empty strings are identical.
type NormalizedLevenshtein struct {
	Ratio   float64
	Damerau bool
}

// Accept reports whether a and b are similar enough.
func (m NormalizedLevenshtein) Accept(a, b string) bool {
	return normalizedSimilarity(a, b, m.Damerau) > m.Ratio
}

// Validate checks that Ratio lies strictly between 0 and 1.
func (m NormalizedLevenshtein) Validate() error {
	return validateRatio(m.Ratio)
}

func editDistance(a, b string, damerau bool) int {
	if damerau {
		return edlib.DamerauLevenshteinDistance(a, b)
	}
	return edlib.LevenshteinDistance(a, b)
}

func normalizedSimilarity(a, b string, damerau bool) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(editDistance(a, b, damerau))/float64(longest)
}
