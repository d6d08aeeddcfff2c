package dispatch

import (
	"testing"

	"github.com/mtsarch/isonet/field"
	"github.com/mtsarch/isonet/primitive"
	"github.com/mtsarch/isonet/tetmesh"
	"github.com/mtsarch/isonet/vec3"
)

func TestRunSkipsNonCrossingTets(t *testing.T) {
	mesh := tetmesh.BuildBox(vec3.Vec{}, vec3.Vec{X: 4, Y: 4, Z: 4}, 2)
	sphere := primitive.Sphere{Center: vec3.Vec{X: 2, Y: 2, Z: 2}, Radius: 1}
	prims := []primitive.Primitive{sphere}

	phi := field.New(1, len(mesh.Verts))
	for v, p := range mesh.Verts {
		phi.Set(0, v, sphere.EvaluateScalar(p))
	}

	idx := BuildIndex(prims)
	results, err := Run(mesh, phi, idx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("expected at least one tet crossed by the sphere")
	}
	if len(results) >= len(mesh.Tets) {
		t.Fatalf("expected only a subset of tets to be crossed, got %d of %d", len(results), len(mesh.Tets))
	}
}

// TestRunFoldsCoplanarPrimitives checks that two primitives whose
// boundaries coincide exactly (duplicate cutting planes) fold onto a
// single arrangement plane slot rather than cutting every tet twice.
func TestRunFoldsCoplanarPrimitives(t *testing.T) {
	mesh := tetmesh.BuildBox(vec3.Vec{}, vec3.Vec{X: 2, Y: 2, Z: 2}, 1)
	seam := primitive.Plane{Point: vec3.Vec{X: 1, Y: 1, Z: 1}, Normal: vec3.Vec{X: 1}}
	prims := []primitive.Primitive{seam, seam}

	phi := field.New(2, len(mesh.Verts))
	for pi, prim := range prims {
		for v, p := range mesh.Verts {
			phi.Set(pi, v, prim.EvaluateScalar(p))
		}
	}

	idx := BuildIndex(prims)
	results, err := Run(mesh, phi, idx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, res := range results {
		if len(res.Primitives) != 1 {
			t.Fatalf("tet %d: expected the duplicate planes to fold to one slot, got %d", res.TetID, len(res.Primitives))
		}
		group := res.Groups[0]
		if len(group) != 2 {
			continue
		}
		found = true
		for _, g := range group {
			if g.Flipped {
				t.Fatalf("tet %d: identical planes should not be flagged flipped", res.TetID)
			}
		}
	}
	if !found {
		t.Fatalf("expected at least one tet where both duplicate primitives crossed and merged")
	}
}
