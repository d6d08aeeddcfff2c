package signprop

import "testing"

func TestPropagateFlipsAcrossPatch(t *testing.T) {
	// 3 cells in a line: 0 -(prim0)- 1 -(prim1)- 2, exterior is cell 0.
	adjacency := []PatchAdjacency{
		{Primitive: 0, CellA: 0, CellB: 1},
		{Primitive: 1, CellA: 1, CellB: 2},
	}
	labels, err := Propagate(3, 2, 0, adjacency)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if labels.Inside[0][0] || labels.Inside[0][1] {
		t.Fatalf("exterior cell should be outside everything: %+v", labels.Inside[0])
	}
	if !labels.Inside[1][0] {
		t.Fatalf("cell 1 should be inside primitive 0")
	}
	if labels.Inside[1][1] {
		t.Fatalf("cell 1 should be outside primitive 1")
	}
	if !labels.Inside[2][0] || !labels.Inside[2][1] {
		t.Fatalf("cell 2 should be inside both primitives: %+v", labels.Inside[2])
	}
}

func TestApplyAABBFallback(t *testing.T) {
	labels, err := Propagate(2, 1, 0, nil)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	labels.ApplyAABBFallback([]int32{0}, func(primitive, cell int32) bool { return cell == 1 })
	if labels.Inside[0][0] {
		t.Fatalf("cell 0 should stay outside")
	}
	if !labels.Inside[1][0] {
		t.Fatalf("cell 1 should be marked inside via fallback")
	}
}
