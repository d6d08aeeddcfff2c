// Package tetmesh builds the background tetrahedral mesh this pipeline
// requires: a bounding box split into a regular grid of cubes, each
// split into six tetrahedra sharing the cube's main diagonal.
//
// The vertex-dedup-by-coordinate map this uses to keep grid vertices
// unique follows a map[[3]float64]int32 keyed on exact coordinates,
// populated lazily as tets are appended, adapted to int32 ids and a
// flat []Vec buffer instead of a per-layer slice-of-slices, since the
// background mesh here has no FEA "layer" concept to preserve.
package tetmesh

import (
	"sort"

	"github.com/mtsarch/isonet/container"
	"github.com/mtsarch/isonet/vec3"
)

// Mesh is the background tetrahedral mesh: a deduplicated vertex
// buffer and a flat list of per-tet vertex-id quadruples.
type Mesh struct {
	Verts []vec3.Vec
	Tets  [][4]int32

	lookup map[[3]float64]int32
}

// New returns an empty Mesh ready to accept tets via AddTet.
func New() *Mesh {
	return &Mesh{lookup: make(map[[3]float64]int32)}
}

func (m *Mesh) addVertex(v vec3.Vec) int32 {
	key := [3]float64{v.X, v.Y, v.Z}
	if id, ok := m.lookup[key]; ok {
		return id
	}
	id := int32(len(m.Verts))
	m.Verts = append(m.Verts, v)
	m.lookup[key] = id
	return id
}

// AddTet appends one tetrahedron, deduplicating its four corners
// against vertices already in the mesh.
func (m *Mesh) AddTet(a, b, c, d vec3.Vec) int32 {
	id := int32(len(m.Tets))
	m.Tets = append(m.Tets, [4]int32{m.addVertex(a), m.addVertex(b), m.addVertex(c), m.addVertex(d)})
	return id
}

// Finalize drops the dedup index once no more tets will be added, a
// memory-release step performed once meshing completes.
func (m *Mesh) Finalize() { m.lookup = nil }

// cubeCorners gives the eight corners of a unit cube in the
// conventional 0..7 bit-indexed order (bit0=x, bit1=y, bit2=z).
func cubeCorners(min, step vec3.Vec) [8]vec3.Vec {
	var c [8]vec3.Vec
	for i := 0; i < 8; i++ {
		dx, dy, dz := 0.0, 0.0, 0.0
		if i&1 != 0 {
			dx = step.X
		}
		if i&2 != 0 {
			dy = step.Y
		}
		if i&4 != 0 {
			dz = step.Z
		}
		c[i] = vec3.Vec{X: min.X + dx, Y: min.Y + dy, Z: min.Z + dz}
	}
	return c
}

// sixTetsOfCube splits a cube into 6 tetrahedra around its main
// diagonal (corner 0 to corner 7), the standard Freudenthal
// triangulation used to keep a regular grid's tets consistently
// oriented and free of ambiguous face pairings between neighbors.
var sixTetsOfCube = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 7, 5},
	{0, 5, 7, 4},
	{0, 4, 7, 6},
	{0, 6, 7, 2},
	{0, 2, 7, 3},
}

// BuildBox generates the background mesh over [min, max], split into
// a resolution^3 grid of cubes each decomposed into six tets.
func BuildBox(min, max vec3.Vec, resolution int) *Mesh {
	if resolution < 1 {
		resolution = 1
	}
	m := New()
	step := vec3.Vec{
		X: (max.X - min.X) / float64(resolution),
		Y: (max.Y - min.Y) / float64(resolution),
		Z: (max.Z - min.Z) / float64(resolution),
	}
	for ix := 0; ix < resolution; ix++ {
		for iy := 0; iy < resolution; iy++ {
			for iz := 0; iz < resolution; iz++ {
				cellMin := vec3.Vec{
					X: min.X + float64(ix)*step.X,
					Y: min.Y + float64(iy)*step.Y,
					Z: min.Z + float64(iz)*step.Z,
				}
				corners := cubeCorners(cellMin, step)
				for _, t := range sixTetsOfCube {
					m.AddTet(corners[t[0]], corners[t[1]], corners[t[2]], corners[t[3]])
				}
			}
		}
	}
	m.Finalize()
	return m
}

// VertexIncidentTets returns, for every vertex id, the sorted list of
// tet ids that reference it — the adjacency index the per-primitive
// activation scan and cross-tet stitching both need to find
// neighboring tets without a linear scan.
func (m *Mesh) VertexIncidentTets() [][]int32 {
	acc := make([]container.SmallVector[int32], len(m.Verts))
	for tid, tet := range m.Tets {
		for _, vid := range tet {
			acc[vid].Append(int32(tid))
		}
	}
	out := make([][]int32, len(m.Verts))
	for i := range acc {
		out[i] = acc[i].Slice()
		sort.Slice(out[i], func(a, b int) bool { return out[i][a] < out[i][b] })
	}
	return out
}
