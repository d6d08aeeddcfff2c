package container

// UnionFind is a disjoint-set over the compact integer arena ids used
// throughout isonet (half-patches, patches, shells). The find/union
// shape — path compression plus union by rank — mirrors the DSU
// embedded in katalvlaran/lvlath's prim_kruskal.Kruskal, adapted to
// int keys so callers never leave the integer-arena-id world of
// just to compute connected components.
type UnionFind struct {
	parent []int32
	rank   []uint8
}

// NewUnionFind returns a UnionFind over n singleton elements 0..n-1.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int32, n),
		rank:   make([]uint8, n),
	}
	for i := range uf.parent {
		uf.parent[i] = int32(i)
	}
	return uf
}

// Find returns the representative of x's set, compressing the path.
func (uf *UnionFind) Find(x int32) int32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing a and b.
func (uf *UnionFind) Union(a, b int32) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// Connected reports whether a and b are in the same set.
func (uf *UnionFind) Connected(a, b int32) bool {
	return uf.Find(a) == uf.Find(b)
}

// Components returns the elements grouped by set, keyed by each set's
// representative id; the ordering within each group follows element
// index order.
func (uf *UnionFind) Components() map[int32][]int32 {
	out := make(map[int32][]int32)
	for i := range uf.parent {
		r := uf.Find(int32(i))
		out[r] = append(out[r], int32(i))
	}
	return out
}

// Len returns the number of elements in the union-find.
func (uf *UnionFind) Len() int { return len(uf.parent) }
