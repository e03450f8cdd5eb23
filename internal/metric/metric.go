// Package metric provides the string similarity oracles that decide whether
// two records belong in the same cluster.
//
// Each metric is a small value type carrying its own parameters and exposing
// Accept. The distance numerics come from go-edlib; this package only turns
// a score into an accept/reject decision.
package metric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steveyegge/simclust/internal/cluster"
)

// Kind names one of the supported metrics.
type Kind string

const (
	KindJaro                  Kind = "jaro"
	KindLevenshtein           Kind = "levenshtein"
	KindNormalizedLevenshtein Kind = "normalized-levenshtein"
	KindOSA                   Kind = "osa"
)

// Kinds lists every supported metric.
func Kinds() []Kind {
	return []Kind{KindJaro, KindLevenshtein, KindNormalizedLevenshtein, KindOSA}
}

// Params selects a metric and its parameters.
// Ratio applies to ratio-style metrics, Threshold to distance-style metrics.
type Params struct {
	Kind      Kind
	Ratio     float64
	Threshold int
	// Winkler selects Jaro-Winkler prefix weighting (jaro only).
	Winkler bool
	// Damerau selects transposition-aware distances (levenshtein and
	// normalized-levenshtein only).
	Damerau bool
}

// New returns the oracle described by p after validating its parameters.
func New(p Params) (cluster.Oracle, error) {
	var m interface {
		cluster.Oracle
		Validate() error
	}
	switch p.Kind {
	case KindJaro:
		m = Jaro{Ratio: p.Ratio, Winkler: p.Winkler}
	case KindLevenshtein:
		m = Levenshtein{Threshold: p.Threshold, Damerau: p.Damerau}
	case KindNormalizedLevenshtein:
		m = NormalizedLevenshtein{Ratio: p.Ratio, Damerau: p.Damerau}
	case KindOSA:
		m = OSA{Threshold: p.Threshold}
	default:
		return nil, fmt.Errorf("unknown metric %q", p.Kind)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s parameters: %w", p.Kind, err)
	}
	return m, nil
}

// ParseRatio parses a similarity ratio, which must lie strictly between 0 and 1.
func ParseRatio(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a float", value)
	}
	if err := validateRatio(f); err != nil {
		return 0, err
	}
	return f, nil
}

// ParseThreshold parses an edit distance threshold, which must be a
// nonnegative integer.
func ParseThreshold(value string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s not a number", value)
	}
	if err := validateThreshold(i); err != nil {
		return 0, err
	}
	return i, nil
}

func validateRatio(r float64) error {
	if !(0 < r && r < 1) {
		return fmt.Errorf("%v is not between 0 and 1", r)
	}
	return nil
}

func validateThreshold(t int) error {
	if t < 0 {
		return fmt.Errorf("%d is negative", t)
	}
	return nil
}
