// Package rayshoot resolves how the shells
// assembled by package connectivity nest in space into the arrangement
// cells boolean evaluation operates on, via geometric ray shooting.
//
// Shells are built from half-patches: every patch contributes two
// halves, one per side
// (2i the patch as stored, 2i+1 its reversal), and shells are the
// connected components of the half-patch adjacency graph threaded
// through chain edges. Two half-patches across a chain edge are
// unioned straight (front-to-front) if the two faces traverse the
// shared edge in opposite directions — consistent surface winding
// continuing across the chain — or crosswise (front-to-back) if they
// traverse it the same direction, meaning the surface flips side
// there. A patch's own two half-patches are never unioned directly:
// they are definitionally its two opposite faces.
//
// Nesting of the resulting shells into arrangement cells is still
// resolved geometrically rather than combinatorially: casting an
// actual ray along a fixed axis from a representative point of each
// shell and counting crossings with every other shell's triangulated
// faces, the same parity test the AABB point-in-polyhedron fallback
// uses for primitives with no patches at all (see package signprop).
package rayshoot

import (
	"math"
	"sort"

	"github.com/mtsarch/isonet/chainorder"
	"github.com/mtsarch/isonet/connectivity"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/vec3"
)

// Shell is a maximal connected set of half-patches: a two-sided patch
// surface stitched together across chain edges, oriented consistently.
// Reversed reports whether the shell contains at least one patch's
// reversed half (2i+1), i.e. some of its faces are taken opposite to
// how isomesh stored them.
type Shell struct {
	ID       int32
	Faces    []int32
	Reversed bool
}

type halfEdgeKey [2]int32

func makeHalfEdgeKey(a, b int32) halfEdgeKey {
	if a < b {
		return halfEdgeKey{a, b}
	}
	return halfEdgeKey{b, a}
}

func chainEdgeFaces(mesh *isomesh.Mesh, chainEdges [][2]int32) map[halfEdgeKey][]int32 {
	out := make(map[halfEdgeKey][]int32)
	for _, e := range chainEdges {
		k := makeHalfEdgeKey(e[0], e[1])
		if _, ok := out[k]; ok {
			continue
		}
		for fid, f := range mesh.Faces {
			n := len(f.Verts)
			for i := 0; i < n; i++ {
				if makeHalfEdgeKey(f.Verts[i], f.Verts[(i+1)%n]) == k {
					out[k] = append(out[k], int32(fid))
					break
				}
			}
		}
	}
	return out
}

func facePatch(patches []connectivity.Patch) map[int32]int32 {
	out := make(map[int32]int32)
	for pi, p := range patches {
		for _, fid := range p.Faces {
			out[fid] = int32(pi)
		}
	}
	return out
}

// directedEdge reports whether face fid's stored winding traverses
// (a,b) in that order rather than (b,a).
func directedEdge(mesh *isomesh.Mesh, fid, a, b int32) bool {
	verts := mesh.Faces[fid].Verts
	n := len(verts)
	for i := 0; i < n; i++ {
		if verts[i] == a && verts[(i+1)%n] == b {
			return true
		}
	}
	return false
}

// BuildShells partitions every patch's two half-patches into shells,
// stitched across the chain edges separating patches. The second
// return value maps each half-patch id (2*patchID for the patch as
// isomesh stored it, 2*patchID+1 for its reversal) to the shell it
// belongs to. The third return value is the patch-level adjacency
// (orientation discarded) ready for connectivity.BuildComponents.
func BuildShells(mesh *isomesh.Mesh, patches []connectivity.Patch, chains []connectivity.Chain) ([]Shell, []int32, [][2]int32) {
	patchOf := facePatch(patches)
	var chainEdges [][2]int32
	for _, ch := range chains {
		chainEdges = append(chainEdges, ch.Edges...)
	}
	ef := chainEdgeFaces(mesh, chainEdges)

	var halfAdj [][2]int32
	var patchAdj [][2]int32
	seen := make(map[halfEdgeKey]bool)
	for _, e := range chainEdges {
		k := makeHalfEdgeKey(e[0], e[1])
		if seen[k] {
			continue
		}
		seen[k] = true
		faces := ef[k]
		if len(faces) < 2 {
			continue
		}
		ordered := chainorder.OrderAroundEdge(mesh, k[0], k[1], faces)
		for i := range ordered {
			j := (i + 1) % len(ordered)
			fi, fj := ordered[i].Face, ordered[j].Face
			pi, pj := patchOf[fi], patchOf[fj]
			if pi != pj {
				patchAdj = append(patchAdj, [2]int32{pi, pj})
			}
			sameDir := directedEdge(mesh, fi, k[0], k[1]) == directedEdge(mesh, fj, k[0], k[1])
			if sameDir {
				halfAdj = append(halfAdj, [2]int32{2 * pi, 2*pj + 1})
				halfAdj = append(halfAdj, [2]int32{2*pi + 1, 2 * pj})
			} else {
				halfAdj = append(halfAdj, [2]int32{2 * pi, 2 * pj})
				halfAdj = append(halfAdj, [2]int32{2*pi + 1, 2*pj + 1})
			}
		}
	}

	uf := connectivity.BuildShells(2*len(patches), halfAdj)
	groups := uf.Components()

	var roots []int32
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	shellOfRoot := make(map[int32]int32, len(roots))
	shells := make([]Shell, 0, len(roots))
	for sid, root := range roots {
		shellOfRoot[root] = int32(sid)
		shells = append(shells, Shell{ID: int32(sid)})
	}

	halfPatchShell := make([]int32, 2*len(patches))
	for pid, p := range patches {
		for side := 0; side < 2; side++ {
			half := int32(2*pid + side)
			root := uf.Find(half)
			sid := shellOfRoot[root]
			halfPatchShell[half] = sid
			shells[sid].Faces = append(shells[sid].Faces, p.Faces...)
			if side == 1 {
				shells[sid].Reversed = true
			}
		}
	}
	return shells, halfPatchShell, patchAdj
}

// Cell is an arrangement cell: the bounded region enclosed by
// EnclosingShells, innermost last, interpreted as alternating
// inside/outside as each shell boundary is crossed moving outward.
type Cell struct {
	ID               int32
	EnclosingShells  []int32
}

// rayHitCount casts a ray from p along +X and counts how many of
// shell's triangulated faces it crosses, ignoring tangential grazes
// (a practical, not exact-arithmetic, test: adequate since cell
// membership only needs parity, not a robust predicate, given this
// package's geometric rather than combinatorial nesting resolution).
func rayHitCount(mesh *isomesh.Mesh, shell Shell, p vec3.Vec) int {
	count := 0
	for _, fid := range shell.Faces {
		verts := mesh.Faces[fid].Verts
		for i := 1; i+1 < len(verts); i++ {
			a := mesh.Verts[verts[0]].Pos
			b := mesh.Verts[verts[i]].Pos
			c := mesh.Verts[verts[i+1]].Pos
			if rayTriangleHitsPositiveX(p, a, b, c) {
				count++
			}
		}
	}
	return count
}

func rayTriangleHitsPositiveX(p, a, b, c vec3.Vec) bool {
	// Moller-Trumbore against direction (1,0,0).
	dir := vec3.Vec{X: 1}
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	h := dir.Cross(e2)
	det := e1.Dot(h)
	if math.Abs(det) < 1e-12 {
		return false
	}
	invDet := 1 / det
	s := p.Sub(a)
	u := s.Dot(h) * invDet
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return false
	}
	t := e2.Dot(q) * invDet
	return t > 1e-9
}

func shellRepresentative(mesh *isomesh.Mesh, shell Shell) vec3.Vec {
	fid := shell.Faces[0]
	verts := mesh.Faces[fid].Verts
	var centroid vec3.Vec
	for _, v := range verts {
		centroid = centroid.Add(mesh.Verts[v].Pos)
	}
	return centroid.DivScalar(float64(len(verts)))
}

func sortedFaceSet(faces []int32) []int32 {
	out := append([]int32(nil), faces...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sameFaceSet(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CanonicalShell maps every shell index to the representative id of
// its physical surface: a patch's two half-patches generically stitch
// into two shells made of the exact same faces (the same surface, seen
// from its two sides), which must collapse to a single spatial
// boundary before counting regions, or every closed surface would be
// double-counted as two.
func CanonicalShell(shells []Shell) []int32 {
	canon := make([]int32, len(shells))
	sets := make([][]int32, len(shells))
	for i, s := range shells {
		sets[i] = sortedFaceSet(s.Faces)
	}
	for i := range shells {
		canon[i] = int32(i)
		for j := 0; j < i; j++ {
			if sameFaceSet(sets[i], sets[j]) {
				canon[i] = canon[j]
				break
			}
		}
	}
	return canon
}

// BuildCells resolves shell nesting into arrangement cells: one
// exterior cell (EnclosingShells == nil) plus one cell per distinct
// physical surface (shells collapsed through CanonicalShell) whose
// EnclosingShells lists every surface geometrically containing it,
// outermost first.
func BuildCells(mesh *isomesh.Mesh, shells []Shell) []Cell {
	canon := CanonicalShell(shells)
	var reps []Shell
	seen := make(map[int32]bool)
	for i, s := range shells {
		if seen[canon[i]] {
			continue
		}
		seen[canon[i]] = true
		reps = append(reps, s)
	}

	n := len(reps)
	containment := make([][]bool, n)
	for i := range containment {
		containment[i] = make([]bool, n)
	}
	for i, s := range reps {
		p := shellRepresentative(mesh, s)
		for j, other := range reps {
			if i == j {
				continue
			}
			if rayHitCount(mesh, other, p)%2 == 1 {
				containment[i][j] = true
			}
		}
	}

	// depth(j) counts how many other surfaces contain surface j; sorting
	// an enclosing set by ascending depth lists the outermost one first.
	depth := make([]int, n)
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			if containment[k][j] {
				depth[j]++
			}
		}
	}

	cells := make([]Cell, 0, n+1)
	cells = append(cells, Cell{ID: 0, EnclosingShells: nil})
	for i, s := range reps {
		var enclosing []int32
		for j := range reps {
			if containment[i][j] {
				enclosing = append(enclosing, reps[j].ID)
			}
		}
		enclosing = append(enclosing, s.ID)
		sort.Slice(enclosing, func(a, b int) bool { return depth[enclosing[a]] < depth[enclosing[b]] })
		cells = append(cells, Cell{ID: int32(len(cells)), EnclosingShells: enclosing})
	}
	return cells
}
