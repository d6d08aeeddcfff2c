// Package bary implements barycentric planes inside a 3-simplex, per
// a plane is four coefficients (f0,f1,f2,f3) such that a
// point of barycentric coordinates b lies on the plane iff
// sum(f_i * b_i) == 0, and the sign of a simplex vertex i under the
// plane is simply the sign of f_i.
package bary

import (
	"math"

	"github.com/mtsarch/isonet/predicate"
)

// Plane is a barycentric plane's four coefficients, one per tet corner.
type Plane [4]float64

// SignAt returns the sign of the plane at tet corner i (0..3).
func (p Plane) SignAt(i int) predicate.Sign {
	v := p[i]
	switch {
	case v > 0:
		return predicate.Positive
	case v < 0:
		return predicate.Negative
	default:
		return predicate.Zero
	}
}

// IsDegenerate reports whether the plane vanishes identically on the
// tet (all four coefficients zero), the case the arrangement kernel's "Failure
// modes" flags as an error to the caller.
func (p Plane) IsDegenerate() bool {
	return p[0] == 0 && p[1] == 0 && p[2] == 0 && p[3] == 0
}

// FromScalarField builds the barycentric plane for primitive's SDF
// values at the four vertices of a tetrahedron, in local-vertex order.
func FromScalarField(values [4]float64) Plane {
	return Plane(values)
}

// Equivalent reports whether p and q cut the same tet in the same
// place: q is a nonzero scalar multiple of p. This is the common
// coplanar case of two primitives whose boundaries coincide exactly
// inside a tet (e.g. two solids sharing a designed seam). flipped is
// true when the multiple is negative, meaning the two planes agree on
// where the cut is but disagree on which side is which.
func (p Plane) Equivalent(q Plane) (same, flipped bool) {
	var ratio float64
	found := false
	for i := 0; i < 4; i++ {
		switch {
		case p[i] != 0:
			ratio = q[i] / p[i]
			found = true
		case q[i] != 0:
			return false, false
		}
		if found {
			break
		}
	}
	if !found {
		// p is identically zero; equivalent only if q is too, which
		// the loop above would already have rejected otherwise.
		return true, false
	}
	const eps = 1e-9
	for i := 0; i < 4; i++ {
		scale := math.Abs(p[i]) + math.Abs(q[i]) + 1
		if math.Abs(q[i]-ratio*p[i]) > eps*scale {
			return false, false
		}
	}
	return true, ratio < 0
}
