package cluster

import (
	"fmt"

	"github.com/steveyegge/simclust/internal/pairs"
)

// Partition is an ordered sequence of clusters of record positions.
//
// Every position 0..n-1 appears in exactly one cluster. Clusters are ordered
// by their smallest member and members ascend within a cluster, so a
// partition built twice from the same input is identical.
type Partition [][]int

// Build computes the connected components of the graph whose nodes are the
// positions 0..n-1 and whose edges are the accepted pairs.
//
// Transitive closure holds for any edge set: if (a,b) and (b,c) are accepted
// then a, b and c share a cluster whether or not (a,c) was accepted.
// Positions touched by no edge become singleton clusters.
//
// Pairs with a position outside 0..n-1 are skipped and contribute no edge,
// so their in-range member can end up a singleton. Pairs produced by the
// pairs package over the same n are always in range; callers assembling
// edges by hand can check the result with Partition.Validate and compare
// against the edges they meant to add.
func Build(n int, accepted []pairs.Pair) Partition {
	if n <= 0 {
		return Partition{}
	}

	ds := newDisjointSet(n)
	for _, p := range accepted {
		if p.I < 0 || p.J < 0 || p.I >= n || p.J >= n {
			continue
		}
		ds.union(p.I, p.J)
	}

	// Walking positions in order gives every cluster its slot at the
	// moment its smallest member is seen.
	slot := make([]int, n)
	for i := range slot {
		slot[i] = -1
	}
	out := Partition{}
	for pos := 0; pos < n; pos++ {
		root := ds.find(pos)
		k := slot[root]
		if k < 0 {
			k = len(out)
			slot[root] = k
			out = append(out, make([]int, 0, ds.setSize(root)))
		}
		out[k] = append(out[k], pos)
	}
	return out
}

// Len returns the number of clusters.
func (p Partition) Len() int {
	return len(p)
}

// Singletons returns the number of clusters holding a single record.
func (p Partition) Singletons() int {
	count := 0
	for _, c := range p {
		if len(c) == 1 {
			count++
		}
	}
	return count
}

// Records resolves positions to record text, preserving partition order.
func (p Partition) Records(records []string) [][]string {
	out := make([][]string, len(p))
	for k, c := range p {
		group := make([]string, len(c))
		for i, pos := range c {
			group[i] = records[pos]
		}
		out[k] = group
	}
	return out
}

// Validate checks that p covers 0..n-1 with non-empty, pairwise disjoint clusters.
func (p Partition) Validate(n int) error {
	seen := make([]bool, n)
	total := 0
	for k, c := range p {
		if len(c) == 0 {
			return fmt.Errorf("cluster %d is empty", k)
		}
		for _, pos := range c {
			if pos < 0 || pos >= n {
				return fmt.Errorf("cluster %d contains invalid position %d (total: %d)", k, pos, n)
			}
			if seen[pos] {
				return fmt.Errorf("position %d appears in more than one cluster", pos)
			}
			seen[pos] = true
			total++
		}
	}
	if total != n {
		return fmt.Errorf("partition covers %d of %d positions", total, n)
	}
	return nil
}
