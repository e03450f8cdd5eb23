// Package pairs enumerates the unordered index pairs of a record sequence.
//
// Pairs are produced lazily in lexicographic order (0,1), (0,2), ..., (n-2,n-1)
// by two cursors: an outer position and an inner position sweeping ahead of it.
// Iteration never needs an O(n²) buffer; callers that want parallel fan-out
// can pull fixed-size batches with NextBatch.
package pairs

import "iter"

// Pair is an unordered combination of two distinct record positions.
// I is always less than J.
type Pair struct {
	I int
	J int
}

// Count returns the number of unordered pairs over n records: n(n-1)/2.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Generator is a single-pass, non-restartable pair sequence.
type Generator struct {
	n     int
	outer int
	inner int
	left  int
}

// New returns a generator over the pairs of n records.
func New(n int) *Generator {
	return &Generator{
		n:     n,
		outer: 0,
		inner: 1,
		left:  Count(n),
	}
}

// Next returns the next pair, or false once the sequence is exhausted.
func (g *Generator) Next() (Pair, bool) {
	if g.inner >= g.n {
		g.outer++
		g.inner = g.outer + 1
		if g.inner >= g.n {
			return Pair{}, false
		}
	}

	p := Pair{I: g.outer, J: g.inner}
	g.inner++
	g.left--
	return p, true
}

// Remaining reports how many pairs have not been produced yet.
func (g *Generator) Remaining() int {
	return g.left
}

// NextBatch appends up to cap(dst)-len(dst) pairs to dst and returns it.
// A returned slice with no new pairs means the sequence is exhausted.
func (g *Generator) NextBatch(dst []Pair) []Pair {
	for len(dst) < cap(dst) {
		p, ok := g.Next()
		if !ok {
			break
		}
		dst = append(dst, p)
	}
	return dst
}

// All returns the pairs over n records as a sequence for range loops.
func All(n int) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		g := New(n)
		for {
			p, ok := g.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
