// Package isomesh extracts the global iso-surface mesh from the
// per-tet arrangements package dispatch produces: the
// faces of each tet's arrangement.Complex that lie on a primitive's
// zero set (Face.Plane >= 0) become the iso-mesh's faces, and their
// vertices are deduplicated across tets so that two tets sharing a
// background-mesh vertex, edge or face produce one shared iso-vertex
// rather than independent coincident copies.
//
// A tet-local arrangement vertex's barycentric coordinate pattern
// tells us which minimal tet sub-simplex it sits on, and that
// sub-simplex (expressed in terms of the background mesh's global
// vertex ids, which are already consistent across tets) is exactly the
// dedup key:
//   - one nonzero barycentric component: the vertex IS a background
//     mesh corner.
//   - two nonzero components: the vertex lies on a tet edge, keyed by
//     the edge's two global corner ids plus the primitive whose cut
//     produced it.
//   - three nonzero components: the vertex lies on a tet face shared
//     by (at most) two tets, keyed by the face's three global corner
//     ids plus the primitive. This folds distinct same-face
//     intersections of different primitive pairs onto the dominant
//     cutting primitive's key; it is exact for the common case of a
//     single primitive crossing a shared face and only approximates
//     the rarer multi-primitive coincident-face case.
//   - four nonzero components: a fresh interior point, never
//     deduplicated.
//
// Iso-faces whose vertices all lie on a tet corner, edge or face (none
// in a tet's interior) are deduplicated the same way: keyed by
// (smallest, largest, smallest-of-the-rest) of the face's global
// iso-vertex ids, every contribution with the same key folded into one
// Face's Contributors list rather than emitted as coincident polygons.
// This folds the two oppositely wound copies of a cap face that one
// tet's arrangement emits into the first copy's winding.
package isomesh

import (
	"sort"

	"github.com/mtsarch/isonet/dispatch"
	"github.com/mtsarch/isonet/tetmesh"
	"github.com/mtsarch/isonet/vec3"
)

// Vertex is a global iso-surface vertex.
type Vertex struct {
	Pos vec3.Vec

	// TetID/LocalIndex name the tet that first produced this vertex
	// and its local index inside that tet's arrangement.
	TetID      int32
	LocalIndex int32

	// MinimalSimplexFlag is 1/2/3/4 for a vertex lying on a tet
	// vertex/edge/face/interior, matching len(SimplexVerts).
	MinimalSimplexFlag int
	SimplexVerts       []int32

	// Primitives lists (up to three) primitive indices whose zero
	// sets were found to pass through this vertex.
	Primitives []int32
}

func (v *Vertex) addPrimitive(p int32) {
	if len(v.Primitives) >= 3 {
		return
	}
	for _, existing := range v.Primitives {
		if existing == p {
			return
		}
	}
	v.Primitives = append(v.Primitives, p)
}

// TetFace names one (tet, local-face) pair that contributed an
// iso-face.
type TetFace struct {
	Tet   int32
	Local int32
}

// Face is an iso-surface polygon, lying on the zero set of Primitive.
// Contributors lists every (tet, local-face) pair that produced it:
// more than one whenever several arrangement faces share the same
// vertex key (see the package doc), such as the two copies of a cap
// face inside one tet.
type Face struct {
	Verts        []int32
	Primitive    int32
	Contributors []TetFace
}

// Mesh is the deduplicated global iso-surface mesh.
type Mesh struct {
	Verts []Vertex
	Faces []Face

	cornerDedup     map[int32]int32
	edgeDedup       map[edgeKey]int32
	vertexFaceDedup map[vertexFaceKey]int32
	polyDedup       map[polyKey]int32
}

type edgeKey struct {
	a, b      int32
	primitive int32
}

// vertexFaceKey dedups iso-vertices landing on a shared tet face.
type vertexFaceKey struct {
	a, b, c   int32
	primitive int32
}

// polyKey dedups iso-faces landing entirely on a shared tet face: the
// smallest, largest, and smallest-of-the-remaining global vertex ids
// of the polygon, stable under rotation and under which of the two
// sharing tets produced it first.
type polyKey struct {
	smallest, largest, thirdSmallest int32
}

func makePolyKey(verts []int32) polyKey {
	sorted := make([]int32, len(verts))
	copy(sorted, verts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	third := sorted[0]
	if len(sorted) > 2 {
		third = sorted[1]
	}
	return polyKey{smallest: sorted[0], largest: sorted[len(sorted)-1], thirdSmallest: third}
}

func sorted2(a, b int32) (int32, int32) {
	if a <= b {
		return a, b
	}
	return b, a
}

func sorted3(a, b, c int32) (int32, int32, int32) {
	arr := [3]int32{a, b, c}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if arr[j] < arr[i] {
				arr[i], arr[j] = arr[j], arr[i]
			}
		}
	}
	return arr[0], arr[1], arr[2]
}

func nonzeroCount(b [4]float64) (count int, which [4]bool) {
	for i, v := range b {
		if v != 0 {
			count++
			which[i] = true
		}
	}
	return
}

// Extract builds the global iso-mesh from the background mesh and the
// per-tet arrangement results.
func Extract(mesh *tetmesh.Mesh, results []dispatch.TetResult) *Mesh {
	m := &Mesh{
		cornerDedup:     make(map[int32]int32),
		edgeDedup:       make(map[edgeKey]int32),
		vertexFaceDedup: make(map[vertexFaceKey]int32),
		polyDedup:       make(map[polyKey]int32),
	}
	for _, res := range results {
		tetID := res.TetID
		tetCorners := mesh.Tets[tetID]
		localToGlobal := make(map[int32]int32)
		resolve := func(localID int32, facePrimitive int32) int32 {
			if g, ok := localToGlobal[localID]; ok {
				m.Verts[g].addPrimitive(facePrimitive)
				return g
			}
			v := res.Complex.Verts[localID]
			count, which := nonzeroCount(v.Bary)
			pos := baryToPos(mesh, tetCorners, v.Bary)

			var g int32
			switch count {
			case 1:
				var corner int32
				for i, on := range which {
					if on {
						corner = tetCorners[i]
					}
				}
				if existing, ok := m.cornerDedup[corner]; ok {
					g = existing
				} else {
					g = m.appendVertex(pos, tetID, localID, 1, []int32{corner})
					m.cornerDedup[corner] = g
				}
			case 2:
				var corners [2]int32
				k := 0
				for i, on := range which {
					if on {
						corners[k] = tetCorners[i]
						k++
					}
				}
				a, b := sorted2(corners[0], corners[1])
				key := edgeKey{a: a, b: b, primitive: facePrimitive}
				if existing, ok := m.edgeDedup[key]; ok {
					g = existing
				} else {
					g = m.appendVertex(pos, tetID, localID, 2, []int32{a, b})
					m.edgeDedup[key] = g
				}
			case 3:
				var corners [3]int32
				k := 0
				for i, on := range which {
					if on {
						corners[k] = tetCorners[i]
						k++
					}
				}
				a, b, c := sorted3(corners[0], corners[1], corners[2])
				key := vertexFaceKey{a: a, b: b, c: c, primitive: facePrimitive}
				if existing, ok := m.vertexFaceDedup[key]; ok {
					g = existing
				} else {
					g = m.appendVertex(pos, tetID, localID, 3, []int32{a, b, c})
					m.vertexFaceDedup[key] = g
				}
			default:
				g = m.appendVertex(pos, tetID, localID, 4, append([]int32{}, tetCorners[:]...))
			}
			m.Verts[g].addPrimitive(facePrimitive)
			localToGlobal[localID] = g
			return g
		}

		for local, face := range res.Complex.Faces {
			if face.Plane < 0 {
				continue
			}
			primitive := res.Primitives[face.Plane]
			globalVerts := make([]int32, len(face.Verts))
			allOnSharedFace := true
			for i, lv := range face.Verts {
				globalVerts[i] = resolve(lv, primitive)
				if m.Verts[globalVerts[i]].MinimalSimplexFlag > 3 {
					allOnSharedFace = false
				}
			}

			if allOnSharedFace {
				key := makePolyKey(globalVerts)
				if existing, ok := m.polyDedup[key]; ok {
					m.Faces[existing].Contributors = append(m.Faces[existing].Contributors, TetFace{Tet: tetID, Local: int32(local)})
					continue
				}
				fid := int32(len(m.Faces))
				m.Faces = append(m.Faces, Face{
					Verts:        globalVerts,
					Primitive:    primitive,
					Contributors: []TetFace{{Tet: tetID, Local: int32(local)}},
				})
				m.polyDedup[key] = fid
				continue
			}

			m.Faces = append(m.Faces, Face{
				Verts:        globalVerts,
				Primitive:    primitive,
				Contributors: []TetFace{{Tet: tetID, Local: int32(local)}},
			})
		}
	}
	return m
}

func (m *Mesh) appendVertex(pos vec3.Vec, tetID, localIndex int32, flag int, simplexVerts []int32) int32 {
	id := int32(len(m.Verts))
	m.Verts = append(m.Verts, Vertex{
		Pos:                pos,
		TetID:              tetID,
		LocalIndex:         localIndex,
		MinimalSimplexFlag: flag,
		SimplexVerts:       simplexVerts,
	})
	return id
}

func baryToPos(mesh *tetmesh.Mesh, tet [4]int32, b [4]float64) vec3.Vec {
	var p vec3.Vec
	for i, vid := range tet {
		p = p.Add(mesh.Verts[vid].MulScalar(b[i]))
	}
	return p
}
