package metric

import "github.com/hbollon/go-edlib"

// OSA accepts pairs whose optimal string alignment distance is below Threshold.
type OSA struct {
	Threshold int
}

// Accept reports whether a and b are within the edit threshold.
func (m OSA) Accept(a, b string) bool {
	return edlib.OSADamerauLevenshteinDistance(a, b) < m.Threshold
}

// Validate checks that Threshold is nonnegative.
func (m OSA) Validate() error {
	return validateThreshold(m.Threshold)
}
