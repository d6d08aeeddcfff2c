// Package dispatch scans, for each tetrahedron of the background
// mesh, the primitive set for zero-sets that cross it (mixed-sign
// corners), builds the corresponding barycentric planes, and invokes
// package arrangement to partition the tet.
//
// The per-tet active-primitive scan is prefiltered by an AABB spatial
// index (an rtreego R-tree of primitive AABBs) before falling back to
// the exact per-corner sign check, mirroring the coarse-to-fine
// philosophy of coarse grid stepping before the exact SDF evaluation
// at a cell.
//
// Two primitives whose boundaries coincide exactly inside a tet (see
// bary.Plane.Equivalent) fold onto one arrangement plane slot rather
// than cutting the tet twice: arrangement.Build only ever sees one
// plane per equivalence class, recorded in TetResult.Groups.
package dispatch

import (
	"github.com/dhconnelly/rtreego"

	"github.com/mtsarch/isonet/arrangement"
	"github.com/mtsarch/isonet/bary"
	"github.com/mtsarch/isonet/field"
	"github.com/mtsarch/isonet/primitive"
	"github.com/mtsarch/isonet/tetmesh"
	"github.com/mtsarch/isonet/vec3"
)

// rtreeBox adapts a primitive's AABB (min/max corners) to rtreego's
// Spatial interface.
type rtreeBox struct {
	primitiveIdx int
	min, max     vec3.Vec
}

func (b rtreeBox) Bounds() *rtreego.Rect {
	lengths := []float64{
		maxf(b.max.X-b.min.X, 1e-9),
		maxf(b.max.Y-b.min.Y, 1e-9),
		maxf(b.max.Z-b.min.Z, 1e-9),
	}
	pt := rtreego.Point{b.min.X, b.min.Y, b.min.Z}
	rect, _ := rtreego.NewRect(pt, lengths)
	return rect
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Index is a prebuilt AABB prefilter over a primitive set.
type Index struct {
	tree       *rtreego.Rtree
	primitives []primitive.Primitive
}

// BuildIndex constructs the AABB index for a primitive set.
func BuildIndex(primitives []primitive.Primitive) *Index {
	tree := rtreego.NewTree(3, 8, 32)
	for i, p := range primitives {
		b := p.AABB()
		tree.Insert(rtreeBox{primitiveIdx: i, min: b.Min, max: b.Max})
	}
	return &Index{tree: tree, primitives: primitives}
}

// CandidatesForBox returns the indices of primitives whose AABB
// overlaps the given box, a superset of the primitives that can
// possibly cross a tet inscribed in that box.
func (idx *Index) CandidatesForBox(min, max vec3.Vec) []int {
	lengths := []float64{
		maxf(max.X-min.X, 1e-9),
		maxf(max.Y-min.Y, 1e-9),
		maxf(max.Z-min.Z, 1e-9),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, lengths)
	hits := idx.tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(rtreeBox).primitiveIdx)
	}
	return out
}

// GroupedPrimitive is one primitive folded into a shared plane slot
// because its zero-set coincided exactly with another's inside a tet
// (see bary.Plane.Equivalent). Flipped records whether this primitive's
// raw field agreed in sign with the plane's representative or was its
// negation.
type GroupedPrimitive struct {
	Primitive int32
	Flipped   bool
}

// TetResult is one tetrahedron's arrangement together with the
// primitive indices whose planes were actually cut into it, in the
// same order as the planes passed to arrangement.Build. Primitives
// names, per plane slot, the representative primitive (the first one
// encountered); Groups carries every primitive folded into that slot,
// which is a single entry for the common case of no coincident planes.
type TetResult struct {
	TetID      int32
	Complex    *arrangement.Complex
	Primitives []int32
	Groups     [][]GroupedPrimitive
}

// Run evaluates every tet in mesh against phi's scalar field and
// returns one TetResult per tet that at least one primitive crosses.
// Tets no primitive crosses are omitted: they lie entirely inside or
// outside every primitive and contribute no iso-surface.
func Run(mesh *tetmesh.Mesh, phi *field.Field, idx *Index) ([]TetResult, error) {
	var results []TetResult
	for tid, tet := range mesh.Tets {
		box := tetBox(mesh, tet)
		candidates := idx.CandidatesForBox(box.min, box.max)

		var planes []bary.Plane
		var groups [][]GroupedPrimitive
		for _, pidx := range candidates {
			if !phi.MixedSign(pidx, tet) {
				continue
			}
			p := bary.FromScalarField(phi.AtTet(pidx, tet))
			merged := false
			for gi, existing := range planes {
				if same, flipped := existing.Equivalent(p); same {
					groups[gi] = append(groups[gi], GroupedPrimitive{Primitive: int32(pidx), Flipped: flipped})
					merged = true
					break
				}
			}
			if !merged {
				planes = append(planes, p)
				groups = append(groups, []GroupedPrimitive{{Primitive: int32(pidx)}})
			}
		}
		if len(planes) == 0 {
			continue
		}
		cx, err := arrangement.Build(planes)
		if err != nil {
			return nil, err
		}
		crossing := make([]int32, len(groups))
		for i, g := range groups {
			crossing[i] = g[0].Primitive
		}
		results = append(results, TetResult{TetID: int32(tid), Complex: cx, Primitives: crossing, Groups: groups})
	}
	return results, nil
}

type box struct{ min, max vec3.Vec }

func tetBox(mesh *tetmesh.Mesh, tet [4]int32) box {
	min, max := mesh.Verts[tet[0]], mesh.Verts[tet[0]]
	for _, vid := range tet[1:] {
		v := mesh.Verts[vid]
		min = min.Min(v)
		max = max.Max(v)
	}
	return box{min: min, max: max}
}
