// Package predicate implements the robust sign predicates the plane
// arrangement kernel (package arrangement) needs to classify tet
// vertices, edges, and faces against a new cutting plane.
//
// Grounded on the reference predicate library: its orient1d/2d/3d
// family does not take raw 3-D coordinates — it takes, per function,
// the function's values at the corners of the simplex (exactly our
// bary.Plane barycentric coefficients), and returns the sign of the
// point where the first k functions simultaneously vanish, evaluated
// against function k. Algebraically this is the sign of the
// determinant of the matrix whose rows are those coefficient vectors,
// times the sign of the same determinant with the last row replaced by
// ones; OrientK below computes one determinant sign and
// Orient1D/2D/3D combine the two.
//
// No third-party arbitrary-precision library appears anywhere in the
// retrieval pack, so the exact-arithmetic fallback stage is built on
// the standard library's math/big — there is nothing in the corpus to
// ground a substitute on.
package predicate

import (
	"math"
	"math/big"
)

// Sign is the discrete outcome of a robust predicate.
type Sign int8

const (
	// Invalid means the predicate is ill-posed (a degenerate/constant
	// function), matching the conventional orient3d "invalid" outcome.
	Invalid Sign = 2
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

func (s Sign) String() string {
	switch s {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	case Zero:
		return "zero"
	default:
		return "invalid"
	}
}

// epsFilter is the semi-static error bound for the float64 fast path:
// a conservative multiple of machine epsilon scaled by the matrix
// dimension, in the tradition of Shewchuk-style adaptive predicates.
const epsFilterPerDim = 1e3

// OrientK computes the sign of det(rows), where rows is a square
// matrix of function values (rows[i][j] = value of function i at
// simplex corner j). It is used with k=2 (orient1d over an edge,
// 2x2), k=3 (orient2d over a tet face, 3x3) and k=4 (orient3d over a
// tetrahedron, 4x4).
//
// The three-stage scheme never returns an uncertain result: a
// filtered float64 determinant decides the common case; ties within
// the error bound escalate to a higher-precision big.Float pass; ties
// there escalate to an exact big.Rat determinant, which is decisive
// because every float64 is an exact rational.
func OrientK(rows [][]float64) Sign {
	n := len(rows)
	for _, r := range rows {
		if len(r) != n {
			return Invalid
		}
	}
	if n == 0 {
		return Invalid
	}
	if det, bound, ok := filteredDet(rows); ok {
		if det > bound {
			return Positive
		}
		if det < -bound {
			return Negative
		}
	}
	if det, bound, ok := intervalDet(rows); ok {
		if det.Sign() > 0 && det.Cmp(bound) > 0 {
			return Positive
		}
		neg := new(big.Float).Neg(bound)
		if det.Sign() < 0 && det.Cmp(neg) < 0 {
			return Negative
		}
	}
	d := exactDet(rows)
	switch d.Sign() {
	case 1:
		return Positive
	case -1:
		return Negative
	default:
		return Zero
	}
}

// filteredDet computes the determinant in plain float64 and a
// conservative error bound; ok is false only for n=0.
func filteredDet(rows [][]float64) (det, bound float64, ok bool) {
	n := len(rows)
	if n == 0 {
		return 0, 0, false
	}
	m := make([][]float64, n)
	maxAbs := 0.0
	for i, r := range rows {
		m[i] = append([]float64(nil), r...)
		for _, v := range r {
			if a := math.Abs(v); a > maxAbs {
				maxAbs = a
			}
		}
	}
	det = gaussDet(m)
	bound = epsFilterPerDim * float64(n) * math.Pow(maxAbs, float64(n)) * 2.220446049250313e-16
	return det, bound, true
}

// gaussDet computes det(m) destructively via partial-pivot Gaussian
// elimination; m is consumed.
func gaussDet(m [][]float64) float64 {
	n := len(m)
	det := 1.0
	for col := 0; col < n; col++ {
		piv := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if a := math.Abs(m[r][col]); a > best {
				best, piv = a, r
			}
		}
		if best == 0 {
			return 0
		}
		if piv != col {
			m[col], m[piv] = m[piv], m[col]
			det = -det
		}
		det *= m[col][col]
		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c < n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}
	return det
}

// intervalDet evaluates the determinant with 200 bits of precision
// and a conservative relative error bound, standing in for an
// interval-arithmetic second filter stage.
func intervalDet(rows [][]float64) (det *big.Float, bound *big.Float, ok bool) {
	n := len(rows)
	if n == 0 {
		return nil, nil, false
	}
	const prec = 200
	m := make([][]*big.Float, n)
	maxAbs := new(big.Float).SetPrec(prec)
	for i, r := range rows {
		m[i] = make([]*big.Float, n)
		for j, v := range r {
			m[i][j] = new(big.Float).SetPrec(prec).SetFloat64(v)
			a := new(big.Float).SetPrec(prec).Abs(m[i][j])
			if a.Cmp(maxAbs) > 0 {
				maxAbs.Set(a)
			}
		}
	}
	det = bigGaussDet(m, prec)
	bound = new(big.Float).SetPrec(prec).SetFloat64(1e-40)
	pow := new(big.Float).SetPrec(prec).SetFloat64(1)
	for i := 0; i < n; i++ {
		pow.Mul(pow, maxAbs)
	}
	bound.Mul(bound, pow)
	return det, bound, true
}

func bigGaussDet(m [][]*big.Float, prec uint) *big.Float {
	n := len(m)
	det := new(big.Float).SetPrec(prec).SetFloat64(1)
	zero := new(big.Float).SetPrec(prec)
	for col := 0; col < n; col++ {
		piv := col
		best := new(big.Float).SetPrec(prec).Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			a := new(big.Float).SetPrec(prec).Abs(m[r][col])
			if a.Cmp(best) > 0 {
				best, piv = a, r
			}
		}
		if best.Cmp(zero) == 0 {
			return zero
		}
		if piv != col {
			m[col], m[piv] = m[piv], m[col]
			det.Neg(det)
		}
		det.Mul(det, m[col][col])
		for r := col + 1; r < n; r++ {
			f := new(big.Float).SetPrec(prec).Quo(m[r][col], m[col][col])
			if f.Sign() == 0 {
				continue
			}
			for c := col; c < n; c++ {
				t := new(big.Float).SetPrec(prec).Mul(f, m[col][c])
				m[r][c].Sub(m[r][c], t)
			}
		}
	}
	return det
}

// exactDet computes the determinant exactly over the rationals: every
// float64 is an exact dyadic rational, so big.Rat.SetFloat64 loses no
// information and Gaussian elimination over *big.Rat is decisive.
func exactDet(rows [][]float64) *big.Rat {
	n := len(rows)
	m := make([][]*big.Rat, n)
	for i, r := range rows {
		m[i] = make([]*big.Rat, n)
		for j, v := range r {
			m[i][j] = new(big.Rat).SetFloat64(v)
			if m[i][j] == nil {
				m[i][j] = new(big.Rat) // NaN/Inf inputs fold to zero; caller treats as degenerate
			}
		}
	}
	det := big.NewRat(1, 1)
	zero := new(big.Rat)
	for col := 0; col < n; col++ {
		piv := -1
		for r := col; r < n; r++ {
			if m[r][col].Sign() != 0 {
				piv = r
				break
			}
		}
		if piv == -1 {
			return zero
		}
		if piv != col {
			m[col], m[piv] = m[piv], m[col]
			det.Neg(det)
		}
		det.Mul(det, m[col][col])
		for r := col + 1; r < n; r++ {
			if m[r][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Quo(m[r][col], m[col][col])
			for c := col; c < n; c++ {
				t := new(big.Rat).Mul(f, m[col][c])
				m[r][c].Sub(m[r][c], t)
			}
		}
	}
	return det
}

// crossingSign returns the sign of the last row's function at the point
// where the other rows' functions all vanish. It is Invalid when those
// functions have no single common zero on the simplex's affine hull.
func crossingSign(rows [][]float64) Sign {
	s := OrientK(rows)
	if s == Zero || s == Invalid {
		return s
	}
	ones := make([]float64, len(rows))
	for i := range ones {
		ones[i] = 1
	}
	d := OrientK(append(append([][]float64(nil), rows[:len(rows)-1]...), ones))
	if d == Zero || d == Invalid {
		return Invalid
	}
	return s * d
}

// Orient1D computes the sign of the zero-crossing of f0 relative to
// f1 on an edge, given each function's two endpoint values.
func Orient1D(f0, f1 [2]float64) Sign {
	return crossingSign([][]float64{f0[:], f1[:]})
}

// Orient2D computes the sign of the intersection of f0's and f1's
// zero sets relative to f2, given each function's three corner values
// on a triangle.
func Orient2D(f0, f1, f2 [3]float64) Sign {
	return crossingSign([][]float64{f0[:], f1[:], f2[:]})
}

// Orient3D computes the sign of the intersection of f0, f1 and f2's
// zero sets relative to f3, given each function's four corner values
// on a tetrahedron.
func Orient3D(f0, f1, f2, f3 [4]float64) Sign {
	return crossingSign([][]float64{f0[:], f1[:], f2[:], f3[:]})
}
