package deduplication

import (
	"fmt"
	"maps"
	"slices"
)

// Result is the outcome of collapsing content-equal records.
type Result struct {
	// Unique are the first occurrences of each distinct record, in input order.
	Unique []string `json:"unique"`

	// Positions maps an index in Unique to the record's original position.
	Positions []int `json:"positions"`

	// Duplicates maps a dropped position to the position of its first occurrence.
	// Key is always greater than value.
	Duplicates map[int]int `json:"duplicates,omitempty"`

	Stats Stats `json:"stats"`
}

// Stats summarizes a collapse.
type Stats struct {
	TotalRecords   int `json:"total_records"`
	UniqueCount    int `json:"unique_count"`
	DuplicateCount int `json:"duplicate_count"`
}

// Collapse keeps the first occurrence of every distinct record.
func Collapse(records []string) *Result {
	first := make(map[string]int, len(records))
	r := &Result{
		Unique:     make([]string, 0, len(records)),
		Positions:  make([]int, 0, len(records)),
		Duplicates: make(map[int]int),
	}

	for pos, rec := range records {
		if orig, seen := first[rec]; seen {
			r.Duplicates[pos] = orig
			continue
		}
		first[rec] = pos
		r.Unique = append(r.Unique, rec)
		r.Positions = append(r.Positions, pos)
	}

	r.Stats = Stats{
		TotalRecords:   len(records),
		UniqueCount:    len(r.Unique),
		DuplicateCount: len(r.Duplicates),
	}
	return r
}

// DuplicatePositions returns the dropped positions in ascending order.
func (r *Result) DuplicatePositions() []int {
	return slices.Sorted(maps.Keys(r.Duplicates))
}

// Validate checks that the result is internally consistent.
func (r *Result) Validate() error {
	if len(r.Positions) != len(r.Unique) {
		return fmt.Errorf("positions length (%d) does not match unique length (%d)",
			len(r.Positions), len(r.Unique))
	}
	if r.Stats.UniqueCount != len(r.Unique) {
		return fmt.Errorf("stats.unique_count (%d) does not match unique length (%d)",
			r.Stats.UniqueCount, len(r.Unique))
	}
	if r.Stats.DuplicateCount != len(r.Duplicates) {
		return fmt.Errorf("stats.duplicate_count (%d) does not match duplicates length (%d)",
			r.Stats.DuplicateCount, len(r.Duplicates))
	}
	if total := len(r.Unique) + len(r.Duplicates); r.Stats.TotalRecords != total {
		return fmt.Errorf("stats.total_records (%d) does not match unique + duplicates (%d)",
			r.Stats.TotalRecords, total)
	}

	kept := make(map[int]bool, len(r.Positions))
	for i, pos := range r.Positions {
		if pos < 0 || pos >= r.Stats.TotalRecords {
			return fmt.Errorf("positions contains invalid position %d (total: %d)", pos, r.Stats.TotalRecords)
		}
		if i > 0 && pos <= r.Positions[i-1] {
			return fmt.Errorf("positions must ascend (got %d after %d)", pos, r.Positions[i-1])
		}
		kept[pos] = true
	}

	for dup, orig := range r.Duplicates {
		if dup <= orig {
			return fmt.Errorf("duplicates: position %d must be > original position %d", dup, orig)
		}
		if kept[dup] {
			return fmt.Errorf("position %d is both kept and a duplicate", dup)
		}
		if !kept[orig] {
			return fmt.Errorf("duplicates references position %d as original, but it was not kept", orig)
		}
	}
	return nil
}
