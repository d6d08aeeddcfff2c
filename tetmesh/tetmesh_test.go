package tetmesh

import (
	"testing"

	"github.com/mtsarch/isonet/vec3"
)

func TestBuildBoxVertexDedup(t *testing.T) {
	m := BuildBox(vec3.Vec{}, vec3.Vec{X: 1, Y: 1, Z: 1}, 2)
	if len(m.Tets) != 6*8 {
		t.Fatalf("tets = %d, want %d", len(m.Tets), 6*8)
	}
	// A 2x2x2 grid of cubes has 3^3 = 27 distinct grid vertices.
	if len(m.Verts) != 27 {
		t.Fatalf("verts = %d, want 27", len(m.Verts))
	}
}

func TestVertexIncidentTets(t *testing.T) {
	m := BuildBox(vec3.Vec{}, vec3.Vec{X: 1, Y: 1, Z: 1}, 1)
	idx := m.VertexIncidentTets()
	if len(idx) != len(m.Verts) {
		t.Fatalf("index length = %d, want %d", len(idx), len(m.Verts))
	}
	for _, tets := range idx {
		if len(tets) == 0 {
			t.Fatalf("every grid corner should be incident to at least one tet")
		}
	}
}
