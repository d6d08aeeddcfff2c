// Package boolean evaluates the blobtree
// boolean expression over each arrangement cell's propagated label row
// to decide which cells are "active" (inside the combined solid), then
// extracting the boundary mesh between active and inactive cells with
// outward winding, accumulating area/volume through a caller-supplied
// integral.Evaluator.
package boolean

import (
	"github.com/mtsarch/isonet/bitset"
	"github.com/mtsarch/isonet/blobtree"
	"github.com/mtsarch/isonet/connectivity"
	"github.com/mtsarch/isonet/integral"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/processor/errs"
	"github.com/mtsarch/isonet/signprop"
	"github.com/mtsarch/isonet/vec3"
)

func toPositions(mesh *isomesh.Mesh, verts []int32) []vec3.Vec {
	out := make([]vec3.Vec, len(verts))
	for i, v := range verts {
		out[i] = mesh.Verts[v].Pos
	}
	return out
}

// evalNode recursively evaluates tree starting at nodeIdx against one
// cell's primitive label row.
func evalNode(tree *blobtree.Tree, nodeIdx int32, row []bool) (bool, error) {
	if nodeIdx == blobtree.None || int(nodeIdx) >= len(tree.Nodes) {
		return false, errs.New(errs.BlobtreeEvaluationFailed, "node index out of range")
	}
	node := tree.Nodes[nodeIdx]
	if node.Leaf {
		if int(node.Primitive) >= len(row) || node.Primitive < 0 {
			return false, errs.New(errs.BlobtreeEvaluationFailed, "leaf references unknown primitive")
		}
		return row[node.Primitive], nil
	}
	left, err := evalNode(tree, node.Left, row)
	if err != nil {
		return false, err
	}
	right, err := evalNode(tree, node.Right, row)
	if err != nil {
		return false, err
	}
	switch node.Op {
	case blobtree.Union:
		return left || right, nil
	case blobtree.Intersection:
		return left && right, nil
	case blobtree.Difference:
		return left && !right, nil
	default:
		return false, errs.New(errs.BlobtreeEvaluationFailed, "unknown operator")
	}
}

// EvaluateCells returns a bitset with bit c set iff cell c lies inside
// the solid tree describes, given the propagated per-cell labels.
func EvaluateCells(tree *blobtree.Tree, labels *signprop.LabelMatrix) (*bitset.Set, error) {
	if !tree.Valid() {
		return nil, errs.New(errs.BlobtreeEvaluationFailed, "blobtree has no root")
	}
	active := bitset.New(len(labels.Inside))
	for cell, row := range labels.Inside {
		in, err := evalNode(tree, tree.Root, row)
		if err != nil {
			return nil, err
		}
		active.SetTo(cell, in)
	}
	return active, nil
}

// ExtractBoundary walks every patch and, wherever it separates an
// active cell from an inactive one, emits its faces as boundary faces
// — reversed where needed so the winding always faces out of the
// active cell (inside the combined solid) into the inactive one — and
// feeds each face's world positions to eval.
func ExtractBoundary(mesh *isomesh.Mesh, patches []connectivity.Patch, adjacency []signprop.PatchAdjacency, active *bitset.Set, eval integral.Evaluator) []isomesh.Face {
	adjByPatch := make(map[int32]signprop.PatchAdjacency, len(adjacency))
	for _, adj := range adjacency {
		adjByPatch[adj.Patch] = adj
	}

	var boundary []isomesh.Face
	for patchID, patch := range patches {
		adj, ok := adjByPatch[int32(patchID)]
		if !ok {
			// A patch with no faces never received an adjacency entry;
			// nothing to emit for it.
			continue
		}
		aActive := active.Test(int(adj.CellA))
		bActive := active.Test(int(adj.CellB))
		if aActive == bActive {
			continue
		}
		reverse := bActive // stored winding faces B (the side the shell encloses); B active: flip so the face points out of B into A
		for _, fid := range patch.Faces {
			f := mesh.Faces[fid]
			verts := make([]int32, len(f.Verts))
			copy(verts, f.Verts)
			if reverse {
				for l, r := 0, len(verts)-1; l < r; l, r = l+1, r-1 {
					verts[l], verts[r] = verts[r], verts[l]
				}
			}
			boundary = append(boundary, isomesh.Face{Verts: verts, Primitive: f.Primitive, Contributors: f.Contributors})
			eval.AddFace(toPositions(mesh, verts))
		}
	}
	return boundary
}
