package boolean

import (
	"math"
	"testing"

	"github.com/mtsarch/isonet/bitset"
	"github.com/mtsarch/isonet/connectivity"
	"github.com/mtsarch/isonet/integral"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/signprop"
	"github.com/mtsarch/isonet/vec3"
)

// twoTriPatchMesh builds a tiny two-triangle patch standing in for a
// single primitive's boundary, CellA outside (0) and CellB inside (1).
func twoTriPatchMesh() (*isomesh.Mesh, []connectivity.Patch, []signprop.PatchAdjacency) {
	mesh := &isomesh.Mesh{
		Verts: []isomesh.Vertex{
			{Pos: vec3.Vec{}},
			{Pos: vec3.Vec{X: 1}},
			{Pos: vec3.Vec{Y: 1}},
			{Pos: vec3.Vec{X: 1, Y: 1}},
		},
		Faces: []isomesh.Face{
			{Verts: []int32{0, 1, 2}, Primitive: 0},
			{Verts: []int32{1, 3, 2}, Primitive: 0},
		},
	}
	patches := []connectivity.Patch{{Primitive: 0, Faces: []int32{0, 1}}}
	adjacency := []signprop.PatchAdjacency{{Patch: 0, Primitive: 0, CellA: 0, CellB: 1}}
	return mesh, patches, adjacency
}

// TestExtractBoundaryReversalSymmetry checks that inverting which cell
// is active (the effect of replacing a primitive's field phi with -phi)
// emits the same set of faces with every vertex order reversed, the
// same accumulated area, and a volume of the opposite sign.
func TestExtractBoundaryReversalSymmetry(t *testing.T) {
	mesh, patches, adjacency := twoTriPatchMesh()

	active := bitset.New(2)
	active.SetTo(1, true) // cell 1 (inside) active, cell 0 (outside) not

	evalFwd := integral.NewPlanar()
	boundaryFwd := ExtractBoundary(mesh, patches, adjacency, active, evalFwd)

	reversed := active.Clone()
	reversed.Not()
	reversed.Grow(2)

	evalRev := integral.NewPlanar()
	boundaryRev := ExtractBoundary(mesh, patches, adjacency, reversed, evalRev)

	if len(boundaryFwd) != len(boundaryRev) {
		t.Fatalf("face count changed under reversal: %d vs %d", len(boundaryFwd), len(boundaryRev))
	}
	if len(boundaryFwd) == 0 {
		t.Fatalf("expected at least one boundary face")
	}

	for i, f := range boundaryFwd {
		g := boundaryRev[i]
		if len(f.Verts) != len(g.Verts) {
			t.Fatalf("face %d vertex count changed: %d vs %d", i, len(f.Verts), len(g.Verts))
		}
		n := len(f.Verts)
		for k := 0; k < n; k++ {
			if f.Verts[k] != g.Verts[n-1-k] {
				t.Fatalf("face %d not exactly reversed: %v vs %v", i, f.Verts, g.Verts)
			}
		}
	}

	const tol = 1e-9
	if math.Abs(evalFwd.Area()-evalRev.Area()) > tol {
		t.Fatalf("area changed under reversal: %v vs %v", evalFwd.Area(), evalRev.Area())
	}
	if math.Abs(evalFwd.Volume()+evalRev.Volume()) > tol {
		t.Fatalf("volume did not negate under reversal: %v vs %v", evalFwd.Volume(), evalRev.Volume())
	}
}
