package boolean

import (
	"testing"

	"github.com/mtsarch/isonet/blobtree"
	"github.com/mtsarch/isonet/connectivity"
	"github.com/mtsarch/isonet/integral"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/signprop"
	"github.com/mtsarch/isonet/vec3"
)

func TestEvaluateCellsUnion(t *testing.T) {
	tree := blobtree.New()
	l0 := tree.AddLeaf(0)
	l1 := tree.AddLeaf(1)
	tree.Root = tree.AddOp(blobtree.Union, l0, l1)

	labels := &signprop.LabelMatrix{Inside: [][]bool{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}}
	active, err := EvaluateCells(tree, labels)
	if err != nil {
		t.Fatalf("EvaluateCells: %v", err)
	}
	want := []bool{false, true, true, true}
	for i, w := range want {
		if active.Test(i) != w {
			t.Fatalf("cell %d active=%v, want %v", i, active.Test(i), w)
		}
	}
}

func TestExtractBoundaryOnlyAtActiveInactiveBoundary(t *testing.T) {
	mesh := &isomesh.Mesh{
		Verts: []isomesh.Vertex{
			{Pos: vec3.Vec{}}, {Pos: vec3.Vec{X: 1}}, {Pos: vec3.Vec{Y: 1}},
		},
		Faces: []isomesh.Face{
			{Verts: []int32{0, 1, 2}, Primitive: 0},
		},
	}
	patches := []connectivity.Patch{{Primitive: 0, Faces: []int32{0}}}
	adjacency := []signprop.PatchAdjacency{{Primitive: 0, CellA: 0, CellB: 1}}

	tree := blobtree.New()
	l0 := tree.AddLeaf(0)
	tree.Root = l0
	labels := &signprop.LabelMatrix{Inside: [][]bool{{false}, {true}}}
	active, err := EvaluateCells(tree, labels)
	if err != nil {
		t.Fatalf("EvaluateCells: %v", err)
	}

	eval := integral.NewPlanar()
	boundary := ExtractBoundary(mesh, patches, adjacency, active, eval)
	if len(boundary) != 1 {
		t.Fatalf("boundary faces = %d, want 1", len(boundary))
	}
	if eval.Area() <= 0 {
		t.Fatalf("expected positive accumulated area")
	}
}
