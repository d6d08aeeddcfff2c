package processor

import (
	"math"
	"testing"

	"github.com/mtsarch/isonet/blobtree"
	"github.com/mtsarch/isonet/config"
	"github.com/mtsarch/isonet/primitive"
	"github.com/mtsarch/isonet/vec3"
)

// processorNew is a thin wrapper so every scenario reports New's error
// through the same t.Fatalf call site convention.
func processorNew(cfg *config.Config, prims []primitive.Primitive, tree *blobtree.Tree, t *testing.T) (*Processor, error) {
	t.Helper()
	return New(cfg, prims, tree)
}

func withinTolerance(t *testing.T, name string, got, want, relTol float64) {
	t.Helper()
	if want == 0 {
		if math.Abs(got) > relTol {
			t.Fatalf("%s: got %v, want ~0", name, got)
		}
		return
	}
	rel := math.Abs(got-want) / math.Abs(want)
	if rel > relTol {
		t.Fatalf("%s: got %v, want %v (%.1f%% off, tolerance %.1f%%)", name, got, want, rel*100, relTol*100)
	}
}

func singleSphereTree() (*blobtree.Tree, []primitive.Primitive) {
	tree := blobtree.New()
	leaf := tree.AddLeaf(0)
	tree.Root = leaf
	prims := []primitive.Primitive{
		primitive.Sphere{Center: vec3.Vec{}, Radius: 1},
	}
	return tree, prims
}

// Scenario 1: a single isolated sphere. Its boundary is one closed
// 2-manifold patch, so it contributes exactly two half-patch shells
// collapsing to one physical surface (CanonicalShell), one interior
// cell plus the exterior cell, and one connected component.
func TestRunSingleSphere(t *testing.T) {
	cfg := config.New(
		config.WithResolution(10),
		config.WithBounds(vec3.Vec{X: -2, Y: -2, Z: -2}, vec3.Vec{X: 2, Y: 2, Z: 2}),
	)
	tree, prims := singleSphereTree()

	p, err := processorNew(cfg, prims, tree, t)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantArea := 4 * math.Pi
	wantVolume := 4.0 / 3.0 * math.Pi
	withinTolerance(t, "area", res.Area, wantArea, 0.05)
	withinTolerance(t, "volume", res.Volume, wantVolume, 0.05)

	if res.Components != 1 {
		t.Fatalf("expected 1 component, got %d", res.Components)
	}
	if res.Shells != 2 {
		t.Fatalf("expected 2 shells, got %d", res.Shells)
	}
	if res.Cells != 2 {
		t.Fatalf("expected 2 cells (exterior + interior), got %d", res.Cells)
	}
	if res.Active != 1 {
		t.Fatalf("expected exactly 1 active cell, got %d", res.Active)
	}
}

// Scenario 2: two disjoint spheres joined by Union. Neither patch
// shares an edge with the other (no chain edges ever form between
// them), so each contributes its own pair of half-patch shells and its
// own connected component.
func TestRunTwoDisjointSpheresUnion(t *testing.T) {
	cfg := config.New(
		config.WithResolution(12),
		config.WithBounds(vec3.Vec{X: -3, Y: -2, Z: -2}, vec3.Vec{X: 3, Y: 2, Z: 2}),
	)
	tree := blobtree.New()
	l0 := tree.AddLeaf(0)
	l1 := tree.AddLeaf(1)
	tree.Root = tree.AddOp(blobtree.Union, l0, l1)
	prims := []primitive.Primitive{
		primitive.Sphere{Center: vec3.Vec{X: -1.5}, Radius: 0.8},
		primitive.Sphere{Center: vec3.Vec{X: 1.5}, Radius: 0.8},
	}

	p, err := processorNew(cfg, prims, tree, t)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Components != 2 {
		t.Fatalf("expected 2 components, got %d", res.Components)
	}
	if res.Shells != 4 {
		t.Fatalf("expected 4 shells, got %d", res.Shells)
	}
	if res.Cells != 3 {
		t.Fatalf("expected 3 cells (exterior + one per sphere), got %d", res.Cells)
	}
	if res.Active != 2 {
		t.Fatalf("expected 2 active cells, got %d", res.Active)
	}

	wantVolume := 2 * (4.0 / 3.0 * math.Pi * math.Pow(0.8, 3))
	wantArea := 2 * (4 * math.Pi * math.Pow(0.8, 2))
	withinTolerance(t, "volume", res.Volume, wantVolume, 0.05)
	withinTolerance(t, "area", res.Area, wantArea, 0.05)
}

// Scenario 3: a box with a fully interior sphere removed. The two
// boundaries (box outer surface, sphere cavity wall) never share an
// edge, so they form two disjoint surfaces and two components, the
// same topology as two disjoint solids even though here one is a
// cavity rather than a separate body.
func TestRunBoxMinusInteriorSphere(t *testing.T) {
	cfg := config.New(
		config.WithResolution(12),
		config.WithBounds(vec3.Vec{X: -1.2, Y: -1.2, Z: -1.2}, vec3.Vec{X: 1.2, Y: 1.2, Z: 1.2}),
	)
	tree := blobtree.New()
	d0 := tree.AddLeaf(0)
	d1 := tree.AddLeaf(1)
	tree.Root = tree.AddOp(blobtree.Difference, d0, d1)
	prims := []primitive.Primitive{
		primitive.Box{Center: vec3.Vec{}, HalfExtent: vec3.Vec{X: 1, Y: 1, Z: 1}},
		primitive.Sphere{Center: vec3.Vec{}, Radius: 0.3},
	}

	p, err := processorNew(cfg, prims, tree, t)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Components != 2 {
		t.Fatalf("expected 2 components (box surface, cavity surface), got %d", res.Components)
	}
	if res.Shells != 4 {
		t.Fatalf("expected 4 shells, got %d", res.Shells)
	}
	if res.Cells != 3 {
		t.Fatalf("expected 3 cells (exterior, box-minus-sphere, sphere interior), got %d", res.Cells)
	}
	if res.Active != 1 {
		t.Fatalf("expected exactly 1 active cell (the shell between box and cavity), got %d", res.Active)
	}

	wantVolume := 8.0 - 4.0/3.0*math.Pi*math.Pow(0.3, 3)
	withinTolerance(t, "volume", res.Volume, wantVolume, 0.05)
}

// Scenario 4: two primitives whose boundaries exactly coincide (a
// duplicated cutting plane). dispatch.Run folds the two planes into
// one equivalence class (see bary.Plane.Equivalent and
// dispatch.TestRunFoldsCoplanarPrimitives), so the union of the two
// half-spaces behaves exactly like either half-space alone instead of
// producing a degenerate zero-width double surface.
func TestRunCoplanarPrimitivesMergeToOneSurface(t *testing.T) {
	cfg := config.New(
		config.WithResolution(8),
		config.WithBounds(vec3.Vec{X: -1, Y: -1, Z: -1}, vec3.Vec{X: 1, Y: 1, Z: 1}),
	)
	solo := blobtree.New()
	soloLeaf := solo.AddLeaf(0)
	solo.Root = soloLeaf
	soloPrims := []primitive.Primitive{
		primitive.Box{Center: vec3.Vec{}, HalfExtent: vec3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
	}
	sp, err := processorNew(cfg, soloPrims, solo, t)
	if err != nil {
		t.Fatalf("New(solo): %v", err)
	}
	soloRes, err := sp.Run()
	if err != nil {
		t.Fatalf("Run(solo): %v", err)
	}

	dup := blobtree.New()
	dl0 := dup.AddLeaf(0)
	dl1 := dup.AddLeaf(1)
	dup.Root = dup.AddOp(blobtree.Union, dl0, dl1)
	dupPrims := []primitive.Primitive{
		primitive.Box{Center: vec3.Vec{}, HalfExtent: vec3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		primitive.Box{Center: vec3.Vec{}, HalfExtent: vec3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
	}
	dp, err := processorNew(cfg, dupPrims, dup, t)
	if err != nil {
		t.Fatalf("New(dup): %v", err)
	}
	dupRes, err := dp.Run()
	if err != nil {
		t.Fatalf("Run(dup): %v", err)
	}

	withinTolerance(t, "area", dupRes.Area, soloRes.Area, 0.05)
	withinTolerance(t, "volume", dupRes.Volume, soloRes.Volume, 0.05)
	if dupRes.Active != soloRes.Active {
		t.Fatalf("expected duplicated box to activate the same number of cells as the solo box, got %d vs %d", dupRes.Active, soloRes.Active)
	}
}

// Scenario 5: a sphere sized so its boundary passes exactly through a
// background-mesh vertex (phi == 0 there). This is the degenerate
// corner predicate.OrientK's exact big.Rat fallback exists for; the
// end-to-end check here is only that Run still completes and returns
// a plausible volume instead of erroring or producing NaN/degenerate
// output when a primitive's zero set is non-generic with respect to
// the mesh.
func TestRunSphereTouchingGridVertexExactly(t *testing.T) {
	cfg := config.New(
		config.WithResolution(8),
		config.WithBounds(vec3.Vec{X: -2, Y: -2, Z: -2}, vec3.Vec{X: 2, Y: 2, Z: 2}),
	)
	// Resolution 8 over [-2,2] places grid vertices at multiples of 0.5;
	// a sphere of radius 1 centered at the origin passes exactly
	// through (1,0,0), (0,1,0), etc.
	tree := blobtree.New()
	leaf := tree.AddLeaf(0)
	tree.Root = leaf
	prims := []primitive.Primitive{
		primitive.Sphere{Center: vec3.Vec{}, Radius: 1},
	}

	p, err := processorNew(cfg, prims, tree, t)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Volume <= 0 || math.IsNaN(res.Volume) {
		t.Fatalf("expected a finite positive volume despite the degenerate vertex, got %v", res.Volume)
	}
	if res.Area <= 0 || math.IsNaN(res.Area) {
		t.Fatalf("expected a finite positive area despite the degenerate vertex, got %v", res.Area)
	}
}

// Scenario 6: two nested spheres combined with Difference, the inner
// one fully inside the outer one and not touching it, giving a
// spherical-shell solid. Topologically identical to scenario 3 (two
// disjoint boundary surfaces, two components), just with two spheres
// instead of a box and a sphere.
func TestRunNestedSpheresDifference(t *testing.T) {
	cfg := config.New(
		config.WithResolution(12),
		config.WithBounds(vec3.Vec{X: -1, Y: -1, Z: -1}, vec3.Vec{X: 1, Y: 1, Z: 1}),
	)
	tree := blobtree.New()
	d0 := tree.AddLeaf(0)
	d1 := tree.AddLeaf(1)
	tree.Root = tree.AddOp(blobtree.Difference, d0, d1)
	prims := []primitive.Primitive{
		primitive.Sphere{Center: vec3.Vec{}, Radius: 0.8},
		primitive.Sphere{Center: vec3.Vec{}, Radius: 0.3},
	}

	p, err := processorNew(cfg, prims, tree, t)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Components != 2 {
		t.Fatalf("expected 2 components, got %d", res.Components)
	}
	if res.Cells != 3 {
		t.Fatalf("expected 3 cells, got %d", res.Cells)
	}
	if res.Active != 1 {
		t.Fatalf("expected exactly 1 active cell (the shell between the two spheres), got %d", res.Active)
	}

	wantVolume := 4.0 / 3.0 * math.Pi * (math.Pow(0.8, 3) - math.Pow(0.3, 3))
	withinTolerance(t, "volume", res.Volume, wantVolume, 0.05)
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := config.New(config.WithResolution(0))
	tree, prims := singleSphereTree()
	if _, err := New(cfg, prims, tree); err == nil {
		t.Fatalf("expected an error for an invalid configuration")
	}
}
