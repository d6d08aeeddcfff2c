// Package signprop propagates, for every
// arrangement cell, which side (inside/outside) of every primitive it
// lies on, by BFS over the cell-adjacency graph whose edges are the
// patches connectivity.BuildPatches assembled — crossing a primitive's
// patch flips that primitive's bit for the cell on the far side.
//
// The traversal again uses github.com/katalvlaran/lvlath's core.Graph
// and bfs.BFS as the engine, cell ids formatted to strings only at the
// call boundary, consistent with connectivity's usage of the same
// library for patch/chain flood fill.
package signprop

import (
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"github.com/mtsarch/isonet/processor/errs"
)

// PatchAdjacency records that crossing one patch of Primitive moves
// from CellA to CellB (sign flips for Primitive only). Patch is the
// index of the patch this adjacency describes, keyed explicitly
// rather than implied by slice position, since not every patch
// produces an adjacency entry.
type PatchAdjacency struct {
	Patch        int32
	Primitive    int32
	CellA, CellB int32
}

// LabelMatrix is the propagated per-cell, per-primitive inside/outside
// label: Inside[cell][primitive] is true iff that cell lies inside
// that primitive.
type LabelMatrix struct {
	Inside [][]bool
}

func newLabelMatrix(cellCount, primitiveCount int) *LabelMatrix {
	rows := make([][]bool, cellCount)
	for i := range rows {
		rows[i] = make([]bool, primitiveCount)
	}
	return &LabelMatrix{Inside: rows}
}

func cloneRow(row []bool) []bool {
	out := make([]bool, len(row))
	copy(out, row)
	return out
}

func rowsEqual(a, b []bool) bool {
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

// Propagate assigns a LabelMatrix row to every cell, starting from
// exteriorCell (outside every primitive by definition) and crossing
// patch edges per adjacency. Non-tree adjacency edges are checked for
// consistency with the tree-derived labels; a mismatch is
// errs.InconsistentCellLabel.
func Propagate(cellCount, primitiveCount int, exteriorCell int32, adjacency []PatchAdjacency) (*LabelMatrix, error) {
	g := core.NewGraph(core.WithDirected(false))
	for c := 0; c < cellCount; c++ {
		if err := g.AddVertex(strconv.Itoa(c)); err != nil {
			return nil, errs.Wrap(errs.InconsistentCellLabel, err)
		}
	}
	type edgeInfo struct {
		primitive int32
	}
	edgeOf := make(map[[2]int32]edgeInfo)
	for _, a := range adjacency {
		key := orderedKey(a.CellA, a.CellB)
		edgeOf[key] = edgeInfo{primitive: a.Primitive}
		if _, err := g.AddEdge(strconv.Itoa(int(a.CellA)), strconv.Itoa(int(a.CellB)), 1); err != nil {
			return nil, errs.Wrap(errs.InconsistentCellLabel, err)
		}
	}

	labels := newLabelMatrix(cellCount, primitiveCount)
	res, err := bfs.BFS(g, strconv.Itoa(int(exteriorCell)))
	if err != nil {
		return nil, errs.Wrap(errs.InconsistentCellLabel, err)
	}

	assigned := make([]bool, cellCount)
	assigned[exteriorCell] = true
	for _, idStr := range res.Order {
		id, _ := strconv.Atoi(idStr)
		if int32(id) == exteriorCell {
			continue
		}
		parentStr := res.Parent[idStr]
		parentID, _ := strconv.Atoi(parentStr)
		info := edgeOf[orderedKey(int32(parentID), int32(id))]
		row := cloneRow(labels.Inside[parentID])
		row[info.primitive] = !row[info.primitive]
		labels.Inside[id] = row
		assigned[id] = true
	}

	for key, info := range edgeOf {
		a, b := key[0], key[1]
		if !assigned[a] || !assigned[b] {
			continue
		}
		expected := cloneRow(labels.Inside[a])
		expected[info.primitive] = !expected[info.primitive]
		if !rowsEqual(expected, labels.Inside[b]) {
			return nil, errs.New(errs.InconsistentCellLabel, "cell label mismatch across a patch")
		}
	}

	return labels, nil
}

func orderedKey(a, b int32) [2]int32 {
	if a <= b {
		return [2]int32{a, b}
	}
	return [2]int32{b, a}
}

// ApplyAABBFallback resolves the label of every primitive that owns no
// patch at all (its zero set never crosses any cell boundary, e.g. it
// wholly contains or wholly excludes the domain) by directly sampling
// inside(cellRepresentative) for that primitive, per cell.
func (m *LabelMatrix) ApplyAABBFallback(untouchedPrimitives []int32, cellRepresentativeInside func(primitive int32, cell int32) bool) {
	for cell := range m.Inside {
		for _, p := range untouchedPrimitives {
			m.Inside[cell][p] = cellRepresentativeInside(p, int32(cell))
		}
	}
}
