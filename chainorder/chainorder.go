// Package chainorder orders the half-faces
// incident to a chain edge by dihedral angle around that edge, so that
// consecutive half-faces in the cyclic order are the ones that must be
// stitched into the same shell by package connectivity's union-find.
//
// The reference half-face ordering code orders half-faces by dihedral angle
// computed from each face's outward direction projected into the
// plane perpendicular to the shared edge. The same projection is used
// here, just over isomesh.Face/Vertex instead of a half-edge mesh
// structure.
package chainorder

import (
	"math"
	"sort"

	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/vec3"
)

type edgeKey [2]int32

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

func edgeFaces(mesh *isomesh.Mesh) map[edgeKey][]int32 {
	out := make(map[edgeKey][]int32)
	for fid, f := range mesh.Faces {
		n := len(f.Verts)
		for i := 0; i < n; i++ {
			a, b := f.Verts[i], f.Verts[(i+1)%n]
			k := makeEdgeKey(a, b)
			out[k] = append(out[k], int32(fid))
		}
	}
	return out
}

// HalfFace is one face as seen from one particular chain edge, with
// its cyclic angular position around that edge.
type HalfFace struct {
	Face  int32
	Angle float64
}

// OrderAroundEdge returns the faces incident to edge (a,b), sorted by
// dihedral angle around the edge axis, measured from an arbitrary
// reference direction perpendicular to the edge.
func OrderAroundEdge(mesh *isomesh.Mesh, a, b int32, faces []int32) []HalfFace {
	axis := mesh.Verts[b].Pos.Sub(mesh.Verts[a].Pos).Unit()
	// Build an arbitrary reference perpendicular to axis.
	ref := axis.Cross(vec3.Vec{X: 1})
	if ref.Length() < 1e-9 {
		ref = axis.Cross(vec3.Vec{Y: 1})
	}
	ref = ref.Unit()
	refPerp := axis.Cross(ref)

	mid := mesh.Verts[a].Pos.Lerp(mesh.Verts[b].Pos, 0.5)

	out := make([]HalfFace, 0, len(faces))
	for _, fid := range faces {
		third := thirdVertexPos(mesh, fid, a, b)
		d := third.Sub(mid)
		// project d into the plane perpendicular to axis
		d = d.Sub(axis.MulScalar(d.Dot(axis)))
		x := d.Dot(ref)
		y := d.Dot(refPerp)
		angle := math.Atan2(y, x)
		out = append(out, HalfFace{Face: int32(fid), Angle: angle})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Angle < out[j].Angle })
	return out
}

// thirdVertexPos returns the position of any face vertex that is
// neither a nor b, used as the face's outward direction witness.
func thirdVertexPos(mesh *isomesh.Mesh, fid int32, a, b int32) vec3.Vec {
	f := mesh.Faces[fid]
	for _, v := range f.Verts {
		if v != a && v != b {
			return mesh.Verts[v].Pos
		}
	}
	return mesh.Verts[a].Pos
}

// AdjacentFacePairs visits every non-manifold edge of mesh among the
// given edge set and returns, for each, the consecutive face pairs in
// cyclic dihedral order: the pairing that must be stitched across a
// chain into shared shells.
func AdjacentFacePairs(mesh *isomesh.Mesh, chainEdges [][2]int32) [][2]int32 {
	ef := edgeFaces(mesh)
	var pairs [][2]int32
	seen := make(map[edgeKey]bool)
	for _, e := range chainEdges {
		k := makeEdgeKey(e[0], e[1])
		if seen[k] {
			continue
		}
		seen[k] = true
		faces := ef[k]
		if len(faces) < 2 {
			continue
		}
		ordered := OrderAroundEdge(mesh, k[0], k[1], faces)
		for i := 0; i < len(ordered); i++ {
			j := (i + 1) % len(ordered)
			pairs = append(pairs, [2]int32{ordered[i].Face, ordered[j].Face})
		}
	}
	return pairs
}
