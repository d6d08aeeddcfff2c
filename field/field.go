// Package field wraps the per-(function,vertex) signed distance
// matrix over gonum's mat.Dense, so that "all values of
// one primitive" and "all values at one vertex" are cheap row/column
// views rather than a hand-rolled 2-D slice.
package field

import "gonum.org/v1/gonum/mat"

// Field is the scalar field matrix phi(f,v): rows are primitives,
// columns are background-mesh vertices. phi<0 means inside, per the
// convention this package fixes.
type Field struct {
	m *mat.Dense
}

// New allocates a Field for nPrimitives x nVerts.
func New(nPrimitives, nVerts int) *Field {
	return &Field{m: mat.NewDense(nPrimitives, nVerts, nil)}
}

// NewFromRows builds a Field from one []float64 row per primitive.
func NewFromRows(rows [][]float64) *Field {
	if len(rows) == 0 {
		return &Field{m: mat.NewDense(0, 0, nil)}
	}
	nv := len(rows[0])
	f := New(len(rows), nv)
	for p, row := range rows {
		for v, val := range row {
			f.m.Set(p, v, val)
		}
	}
	return f
}

// At returns phi(primitive, vertex).
func (f *Field) At(primitive, vertex int) float64 { return f.m.At(primitive, vertex) }

// Set assigns phi(primitive, vertex).
func (f *Field) Set(primitive, vertex int, v float64) { f.m.Set(primitive, vertex, v) }

// NumPrimitives returns the number of rows (primitives).
func (f *Field) NumPrimitives() int { r, _ := f.m.Dims(); return r }

// NumVerts returns the number of columns (background-mesh vertices).
func (f *Field) NumVerts() int { _, c := f.m.Dims(); return c }

// AtTet returns the values of primitive p at the four local vertices
// of the given tetrahedron (vertex ids in local tet order).
func (f *Field) AtTet(primitive int, tet [4]int32) [4]float64 {
	var out [4]float64
	for i, vid := range tet {
		out[i] = f.m.At(primitive, int(vid))
	}
	return out
}

// MixedSign reports whether primitive p's values across the four tet
// corners take both a strictly-positive and a strictly-negative
// value, i.e. the primitive's zero set may pass through the tet. This
// backs the per-tet activation scan dispatch performs.
func (f *Field) MixedSign(primitive int, tet [4]int32) bool {
	hasPos, hasNeg := false, false
	for _, vid := range tet {
		v := f.m.At(primitive, int(vid))
		if v > 0 {
			hasPos = true
		} else if v < 0 {
			hasNeg = true
		}
	}
	return hasPos && hasNeg
}
