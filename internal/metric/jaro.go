package metric

import "github.com/hbollon/go-edlib"

// Jaro accepts pairs whose Jaro similarity exceeds Ratio.
// With Winkler set, the Jaro-Winkler prefix bonus is applied first.
type Jaro struct {
	Ratio   float64
	Winkler bool
}

// Accept reports whether a and b are similar enough.
func (m Jaro) Accept(a, b string) bool {
	return m.similarity(a, b) > float32(m.Ratio)
}

// similarity is computed in float32 by edlib, so the ratio is narrowed to
// match rather than widening the similarity. Identical strings, including
// two empty ones, have similarity 1.
func (m Jaro) similarity(a, b string) float32 {
	if a == b {
		return 1
	}
	if m.Winkler {
		return edlib.JaroWinklerSimilarity(a, b)
	}
	return edlib.JaroSimilarity(a, b)
}

// Validate checks that Ratio lies strictly between 0 and 1.
func (m Jaro) Validate() error {
	return validateRatio(m.Ratio)
}
