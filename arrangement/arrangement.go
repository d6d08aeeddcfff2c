// Package arrangement implements the plane-arrangement kernel of
// partitioning a tetrahedron's barycentric simplex by a
// set of implicit-primitive zero-sets into a cell complex of vertices,
// edges, faces and 3-cells.
//
// the reference C++ arrangement engine builds this incrementally, cutting
// 0-/1-/2-/3-faces of a running complex one plane at a time and
// consulting a precomputed lookup table for the common 1- and 2-plane
// case (see package lut). This package follows the same incremental,
// one-plane-at-a-time structure, realized here as convex-polyhedron
// half-space clipping: each existing 3-cell is either kept whole (all
// corners agree in sign) or split into a negative and a positive
// sub-cell joined by a freshly built planar cap face, which is exactly
// what the cut3-face/cut2-face/cut1-face step sequence in
// the reference implementation produces, just expressed without the table-driven
// per-case dispatch.
package arrangement

import (
	"github.com/mtsarch/isonet/bary"
	"github.com/mtsarch/isonet/bitset"
	"github.com/mtsarch/isonet/processor/errs"
)

// Vertex is a point of the arrangement, given in barycentric
// coordinates within the host tetrahedron.
type Vertex struct {
	Bary [4]float64
}

// NoCell marks a Face side with no neighboring cell: the tetrahedron's
// own exterior, for a face inherited from its boundary.
const NoCell int32 = -1

// Face is a planar polygon of the arrangement. Plane is the index into
// the plane slice Build was called with for a face cut out of a
// primitive's zero set, or one of the four BoundaryFace* sentinels for
// a face inherited from the tetrahedron's own boundary.
//
// PosCell/NegCell name the cells lying on the positive/negative side
// of the face's supporting plane, NoCell where there is none (the
// tetrahedron's own exterior). They are only populated for cap faces
// — the faces a plane cut actually creates — since those are the only
// faces whose two neighboring cells are both known at the moment the
// face is built; a face carried through a cut unsplit keeps whatever
// value it already had.
type Face struct {
	Verts            []int32
	Plane            int32
	PosCell, NegCell int32
}

// Sentinels for Face.Plane identifying an inherited tetrahedron
// boundary face, one per excluded corner.
const (
	BoundaryFace0 int32 = -1 - iota
	BoundaryFace1
	BoundaryFace2
	BoundaryFace3
)

// Cell is a convex 3-cell of the arrangement, given as a closed set of
// face indices plus Signs, the cell's side of every plane cut into the
// complex so far (bit i set iff the cell lies on plane i's positive
// side).
type Cell struct {
	Faces []int32
	Signs *bitset.Set
}

// Complex is the full arrangement of one tetrahedron under a set of
// barycentric planes.
type Complex struct {
	Verts []Vertex
	Faces []Face
	Cells []Cell
}

// tetFaceCorners lists the corners of the four
// boundary faces of a tetrahedron with positively-oriented corners
// 0,1,2,3, each wound so its normal points outward.
var tetFaceCorners = [4][3]int32{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// New builds the trivial one-cell complex of an unsplit tetrahedron.
func New() *Complex {
	c := &Complex{
		Verts: make([]Vertex, 4),
		Faces: make([]Face, 4),
	}
	for i := 0; i < 4; i++ {
		var b [4]float64
		b[i] = 1
		c.Verts[i] = Vertex{Bary: b}
	}
	sentinels := [4]int32{BoundaryFace0, BoundaryFace1, BoundaryFace2, BoundaryFace3}
	for i, corners := range tetFaceCorners {
		c.Faces[i] = Face{Verts: []int32{corners[0], corners[1], corners[2]}, Plane: sentinels[i], PosCell: NoCell, NegCell: NoCell}
	}
	c.Cells = []Cell{{Faces: []int32{0, 1, 2, 3}, Signs: bitset.New(0)}}
	return c
}

// Build constructs the arrangement of a tetrahedron cut by planes, in
// the order given. Degenerate planes (identically zero across the
// whole tet) are rejected with errs.DegeneratePlane.
func Build(planes []bary.Plane) (*Complex, error) {
	c := New()
	for pi, pl := range planes {
		if pl.IsDegenerate() {
			return nil, errs.New(errs.DegeneratePlane, "plane is identically zero on this tetrahedron")
		}
		if err := c.cutByPlane(pl, int32(pi)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Complex) valueAt(vid int32, pl bary.Plane) float64 {
	v := c.Verts[vid].Bary
	return pl[0]*v[0] + pl[1]*v[1] + pl[2]*v[2] + pl[3]*v[3]
}

type edgeKey [2]int32

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

func lerpBary(a, b [4]float64, t float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a[i] + t*(b[i]-a[i])
	}
	return out
}

// cutByPlane splits every current cell of c by pl, replacing cells
// whose corners have mixed sign under pl with a negative and a
// positive sub-cell joined by a new cap face.
func (c *Complex) cutByPlane(pl bary.Plane, planeIdx int32) error {
	edgeCut := make(map[edgeKey]int32)
	var nextCells []Cell

	for _, cell := range c.Cells {
		hasNeg, hasPos := false, false
		for _, fid := range cell.Faces {
			for _, vid := range c.Faces[fid].Verts {
				v := c.valueAt(vid, pl)
				if v < 0 {
					hasNeg = true
				} else if v > 0 {
					hasPos = true
				}
			}
		}
		if !hasNeg || !hasPos {
			// Entirely on one side (or exactly on the plane): unchanged,
			// just record this plane's sign for the cell.
			signs := cell.Signs.Clone()
			signs.Grow(int(planeIdx) + 1)
			signs.SetTo(int(planeIdx), hasPos)
			nextCells = append(nextCells, Cell{Faces: cell.Faces, Signs: signs})
			continue
		}

		negFaces := make([]int32, 0, len(cell.Faces)+1)
		posFaces := make([]int32, 0, len(cell.Faces)+1)
		nextVert := make(map[int32]int32) // chord entry -> exit, to assemble the cap loop

		for _, fid := range cell.Faces {
			face := c.Faces[fid]
			negVerts, posVerts, entry, exit, cut := c.clipFace(face.Verts, pl, edgeCut)
			if len(negVerts) >= 3 {
				nid := int32(len(c.Faces))
				c.Faces = append(c.Faces, Face{Verts: negVerts, Plane: face.Plane, PosCell: face.PosCell, NegCell: face.NegCell})
				negFaces = append(negFaces, nid)
			}
			if len(posVerts) >= 3 {
				pid := int32(len(c.Faces))
				c.Faces = append(c.Faces, Face{Verts: posVerts, Plane: face.Plane, PosCell: face.PosCell, NegCell: face.NegCell})
				posFaces = append(posFaces, pid)
			}
			if cut {
				nextVert[entry] = exit
			}
		}

		capLoop := assembleLoop(nextVert)
		capNegID, capPosID := int32(-1), int32(-1)
		if len(capLoop) >= 3 {
			capNegID = int32(len(c.Faces))
			c.Faces = append(c.Faces, Face{Verts: capLoop, Plane: planeIdx, PosCell: NoCell, NegCell: NoCell})
			negFaces = append(negFaces, capNegID)

			capPos := make([]int32, len(capLoop))
			for i, v := range capLoop {
				capPos[len(capLoop)-1-i] = v
			}
			capPosID = int32(len(c.Faces))
			c.Faces = append(c.Faces, Face{Verts: capPos, Plane: planeIdx, PosCell: NoCell, NegCell: NoCell})
			posFaces = append(posFaces, capPosID)
		}

		negSigns := cell.Signs.Clone()
		negSigns.Grow(int(planeIdx) + 1)
		negSigns.Clear(int(planeIdx))
		posSigns := cell.Signs.Clone()
		posSigns.Grow(int(planeIdx) + 1)
		posSigns.Set(int(planeIdx))

		negCellID, posCellID := NoCell, NoCell
		if len(negFaces) > 0 {
			negCellID = int32(len(nextCells))
			nextCells = append(nextCells, Cell{Faces: negFaces, Signs: negSigns})
		}
		if len(posFaces) > 0 {
			posCellID = int32(len(nextCells))
			nextCells = append(nextCells, Cell{Faces: posFaces, Signs: posSigns})
		}
		// The cap face is the only face whose two neighboring cells are
		// both known at creation time; backfill them now.
		if capNegID >= 0 {
			c.Faces[capNegID].PosCell, c.Faces[capNegID].NegCell = posCellID, negCellID
			c.Faces[capPosID].PosCell, c.Faces[capPosID].NegCell = posCellID, negCellID
		}
	}

	c.Cells = nextCells
	return nil
}

// clipFace splits one polygon face by pl, returning the vertex loops
// retained on the negative and positive sides. When the face is
// actually crossed by pl, entry/exit identify the chord endpoint pair
// contributed by this face to the cell's cap polygon.
func (c *Complex) clipFace(verts []int32, pl bary.Plane, edgeCut map[edgeKey]int32) (negVerts, posVerts []int32, entry, exit int32, cut bool) {
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		va := c.valueAt(a, pl)
		vb := c.valueAt(b, pl)

		if va <= 0 {
			negVerts = append(negVerts, a)
		}
		if va >= 0 {
			posVerts = append(posVerts, a)
		}

		crossing := (va > 0 && vb < 0) || (va < 0 && vb > 0)
		if !crossing {
			continue
		}
		key := makeEdgeKey(a, b)
		cutID, ok := edgeCut[key]
		if !ok {
			t := va / (va - vb)
			bc := lerpBary(c.Verts[a].Bary, c.Verts[b].Bary, t)
			cutID = int32(len(c.Verts))
			c.Verts = append(c.Verts, Vertex{Bary: bc})
			edgeCut[key] = cutID
		}
		negVerts = append(negVerts, cutID)
		posVerts = append(posVerts, cutID)
		cut = true
		if va > 0 {
			entry = cutID
		} else {
			exit = cutID
		}
	}
	return
}

// assembleLoop follows the entry->exit chords contributed by each
// straddling face of a cell and threads them into the single closed
// cap polygon their shared cut vertices imply.
func assembleLoop(next map[int32]int32) []int32 {
	if len(next) == 0 {
		return nil
	}
	var start int32
	for k := range next {
		start = k
		break
	}
	loop := []int32{start}
	cur := next[start]
	for cur != start && len(loop) <= len(next) {
		loop = append(loop, cur)
		nxt, ok := next[cur]
		if !ok {
			break
		}
		cur = nxt
	}
	return loop
}
