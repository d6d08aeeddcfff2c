// Package processor orchestrates the full pipeline: background
// meshing, per-tet plane-arrangement dispatch, global iso-mesh
// stitching, patch/chain/shell/cell assembly, primitive-sign
// propagation, and blobtree boolean evaluation, producing a filtered
// boundary mesh plus its surface area and enclosed volume.
package processor

import (
	"github.com/mtsarch/isonet/blobtree"
	"github.com/mtsarch/isonet/boolean"
	"github.com/mtsarch/isonet/config"
	"github.com/mtsarch/isonet/connectivity"
	"github.com/mtsarch/isonet/dispatch"
	"github.com/mtsarch/isonet/field"
	"github.com/mtsarch/isonet/integral"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/primitive"
	"github.com/mtsarch/isonet/processor/errs"
	"github.com/mtsarch/isonet/rayshoot"
	"github.com/mtsarch/isonet/signprop"
	"github.com/mtsarch/isonet/tetmesh"
	"github.com/mtsarch/isonet/vec3"
)

// Result is the output of a full Run: the filtered boundary mesh, its
// accumulated surface area and enclosed volume, and the arrangement
// statistics (cell/shell/component counts) end-to-end scenarios check
// against.
type Result struct {
	Boundary []isomesh.Face
	Verts    []isomesh.Vertex
	Area     float64
	Volume   float64
	Active   int // number of active arrangement cells, for diagnostics

	Cells      int // total arrangement cells (inside+outside)
	Shells     int // total shells across every component
	Components int // connected surface components, orientation ignored
}

// Processor holds a validated Config and the primitive/blobtree inputs
// for one run.
type Processor struct {
	cfg        *config.Config
	primitives []primitive.Primitive
	tree       *blobtree.Tree
}

// New validates cfg and returns a Processor ready to Run the given
// primitive set against tree.
func New(cfg *config.Config, primitives []primitive.Primitive, tree *blobtree.Tree) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !tree.Valid() {
		return nil, errs.New(errs.BlobtreeEvaluationFailed, "blobtree has no root")
	}
	return &Processor{cfg: cfg, primitives: primitives, tree: tree}, nil
}

// Run executes the full pipeline (components A through I).
func (p *Processor) Run() (*Result, error) {
	mesh := tetmesh.BuildBox(p.cfg.AABBMin, p.cfg.AABBMax, p.cfg.Resolution)

	phi := field.New(len(p.primitives), len(mesh.Verts))
	for pi, prim := range p.primitives {
		for vi, v := range mesh.Verts {
			phi.Set(pi, vi, prim.EvaluateScalar(v))
		}
	}

	idx := dispatch.BuildIndex(p.primitives)
	tetResults, err := dispatch.Run(mesh, phi, idx)
	if err != nil {
		return nil, err
	}

	iso := isomesh.Extract(mesh, tetResults)

	patches, err := connectivity.BuildPatches(iso)
	if err != nil {
		return nil, err
	}
	chains := connectivity.BuildChains(iso)

	shells, halfPatchShell, patchAdj := rayshoot.BuildShells(iso, patches, chains)
	cells := rayshoot.BuildCells(iso, shells)
	canonShell := rayshoot.CanonicalShell(shells)

	adjacency := make([]signprop.PatchAdjacency, 0, len(patches))
	for patchID, patch := range patches {
		if len(patch.Faces) == 0 {
			continue
		}
		// Half-patch 2*patchID is the patch as isomesh stored it; the
		// shell it belongs to is the one whose innermost enclosing cell
		// this patch's stored winding faces. BuildCells works over
		// canonicalized (deduped) shells, so the lookup must too.
		shellID := canonShell[halfPatchShell[2*patchID]]
		innerCell := findCellForShell(cells, shellID)
		outerCell := findOuterCell(cells, innerCell)
		adjacency = append(adjacency, signprop.PatchAdjacency{
			Patch:     int32(patchID),
			Primitive: patch.Primitive,
			CellA:     outerCell,
			CellB:     innerCell,
		})
	}

	exterior := exteriorCellID(cells)
	labels, err := signprop.Propagate(len(cells), len(p.primitives), exterior, adjacency)
	if err != nil {
		return nil, err
	}

	touched := touchedPrimitives(patches, len(p.primitives))
	untouched := untouchedPrimitives(touched, len(p.primitives))
	if len(untouched) > 0 {
		labels.ApplyAABBFallback(untouched, func(prim int32, cell int32) bool {
			rep := cellRepresentative(iso, cells, shells, cell)
			return p.primitives[prim].EvaluateScalar(rep) < 0
		})
	}

	active, err := boolean.EvaluateCells(p.tree, labels)
	if err != nil {
		return nil, err
	}

	eval := integral.NewPlanar()
	boundary := boolean.ExtractBoundary(iso, patches, adjacency, active, eval)

	return &Result{
		Boundary:   boundary,
		Verts:      iso.Verts,
		Area:       eval.Area(),
		Volume:     eval.Volume(),
		Active:     active.PopCount(),
		Cells:      len(cells),
		Shells:     len(shells),
		Components: len(connectivity.BuildComponents(len(patches), patchAdj).Components()),
	}, nil
}

// findCellForShell returns the cell index whose innermost enclosing
// shell is shellID.
func findCellForShell(cells []rayshoot.Cell, shellID int32) int32 {
	for _, c := range cells {
		n := len(c.EnclosingShells)
		if n > 0 && c.EnclosingShells[n-1] == shellID {
			return c.ID
		}
	}
	return 0
}

// findOuterCell returns the cell enclosing innerCell one level up:
// the cell whose enclosing-shell list is innerCell's list with its
// innermost shell removed.
func findOuterCell(cells []rayshoot.Cell, innerCell int32) int32 {
	var inner rayshoot.Cell
	for _, c := range cells {
		if c.ID == innerCell {
			inner = c
			break
		}
	}
	if len(inner.EnclosingShells) == 0 {
		return inner.ID
	}
	prefix := inner.EnclosingShells[:len(inner.EnclosingShells)-1]
	for _, c := range cells {
		if sameShellList(c.EnclosingShells, prefix) {
			return c.ID
		}
	}
	return 0
}

func sameShellList(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func exteriorCellID(cells []rayshoot.Cell) int32 {
	for _, c := range cells {
		if len(c.EnclosingShells) == 0 {
			return c.ID
		}
	}
	return 0
}

func touchedPrimitives(patches []connectivity.Patch, n int) []bool {
	out := make([]bool, n)
	for _, p := range patches {
		if int(p.Primitive) < n {
			out[p.Primitive] = true
		}
	}
	return out
}

func untouchedPrimitives(touched []bool, n int) []int32 {
	var out []int32
	for i := 0; i < n; i++ {
		if !touched[i] {
			out = append(out, int32(i))
		}
	}
	return out
}

// cellRepresentative returns a point known to lie inside cell: the
// centroid of its innermost shell's first face, or the origin for the
// exterior cell (adequate only as a coarse AABB-style probe, which is
// all the fallback sign test needs).
func cellRepresentative(mesh *isomesh.Mesh, cells []rayshoot.Cell, shells []rayshoot.Shell, cell int32) vec3.Vec {
	var target rayshoot.Cell
	for _, c := range cells {
		if c.ID == cell {
			target = c
			break
		}
	}
	if len(target.EnclosingShells) == 0 {
		return vec3.Vec{}
	}
	innermost := target.EnclosingShells[len(target.EnclosingShells)-1]
	for _, s := range shells {
		if s.ID == innermost && len(s.Faces) > 0 {
			f := mesh.Faces[s.Faces[0]]
			var centroid vec3.Vec
			for _, v := range f.Verts {
				centroid = centroid.Add(mesh.Verts[v].Pos)
			}
			return centroid.DivScalar(float64(len(f.Verts)))
		}
	}
	return vec3.Vec{}
}
