package cluster

// disjointSet is a union-find structure over the positions 0..n-1, stored as
// an arena of parent and rank indices.
type disjointSet struct {
	parent []int
	rank   []uint8
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
		size:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
		ds.size[i] = 1
	}
	return ds
}

// find returns the root of x, halving the path on the way up.
func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

// union merges the sets holding a and b and reports whether they were distinct.
func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}

	switch {
	case ds.rank[ra] < ds.rank[rb]:
		ra, rb = rb, ra
	case ds.rank[ra] == ds.rank[rb]:
		ds.rank[ra]++
	}
	ds.parent[rb] = ra
	ds.size[ra] += ds.size[rb]
	return true
}

// setSize returns the number of positions in the set holding x.
func (ds *disjointSet) setSize(x int) int {
	return ds.size[ds.find(x)]
}
