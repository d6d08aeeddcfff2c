// Package primitive implements the closed set of implicit-solid leaf
// kinds the external interface exposes to a blobtree: a
// Primitive is anything that can be evaluated at a point and bounded
// by an axis-aligned box. Rather than the reference ISolid hierarchy
// open-ended virtual-dispatch hierarchy (ISolid, IExtrudedSolidBase<T>
// with a template parameter per axis-line kind), this package instead uses a
// closed tagged-variant set, so every kind here is a concrete struct
// implementing the same Primitive interface.
package primitive

import (
	"math"

	"github.com/mtsarch/isonet/spatial"
	"github.com/mtsarch/isonet/vec3"
)

// Primitive is an implicit solid: negative inside, zero on the
// boundary, positive outside, matching the sign convention this package
// fixes for the scalar field.
type Primitive interface {
	// EvaluateScalar returns the signed distance (or a signed
	// distance-like field; exactness is not required away from the
	// zero set) of p.
	EvaluateScalar(p vec3.Vec) float64
	// AABB returns a conservative bound containing the entire solid.
	AABB() spatial.Box
}

// Sphere is centered at Center with radius Radius.
type Sphere struct {
	Center vec3.Vec
	Radius float64
}

func (s Sphere) EvaluateScalar(p vec3.Vec) float64 { return p.Sub(s.Center).Length() - s.Radius }

func (s Sphere) AABB() spatial.Box {
	r := vec3.Vec{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return spatial.NewBox(s.Center.Sub(r), s.Center.Add(r))
}

// Plane is the half-space behind a plane through Point with outward
// unit Normal.
type Plane struct {
	Point  vec3.Vec
	Normal vec3.Vec
}

func (pl Plane) EvaluateScalar(p vec3.Vec) float64 {
	return p.Sub(pl.Point).Dot(pl.Normal.Unit())
}

func (pl Plane) AABB() spatial.Box {
	const big = 1e6
	return spatial.NewBox(vec3.Vec{X: -big, Y: -big, Z: -big}, vec3.Vec{X: big, Y: big, Z: big})
}

// Box is an axis-aligned solid box of half-extents HalfExtent centered
// at Center.
type Box struct {
	Center     vec3.Vec
	HalfExtent vec3.Vec
}

func (b Box) EvaluateScalar(p vec3.Vec) float64 {
	d := p.Sub(b.Center)
	qx := absf(d.X) - b.HalfExtent.X
	qy := absf(d.Y) - b.HalfExtent.Y
	qz := absf(d.Z) - b.HalfExtent.Z
	outside := vec3.Vec{X: maxf(qx, 0), Y: maxf(qy, 0), Z: maxf(qz, 0)}.Length()
	inside := minf(maxf(qx, maxf(qy, qz)), 0)
	return outside + inside
}

func (b Box) AABB() spatial.Box {
	return spatial.NewBox(b.Center.Sub(b.HalfExtent), b.Center.Add(b.HalfExtent))
}

// Cylinder is an infinite-capped circular cylinder of Radius and
// HalfHeight, with its axis running from Base along Axis (unit vector).
type Cylinder struct {
	Base      vec3.Vec
	Axis      vec3.Vec
	Radius    float64
	HalfHeight float64
}

func (c Cylinder) EvaluateScalar(p vec3.Vec) float64 {
	axis := c.Axis.Unit()
	d := p.Sub(c.Base)
	along := d.Dot(axis)
	radial := d.Sub(axis.MulScalar(along)).Length()
	dr := radial - c.Radius
	dh := absf(along) - c.HalfHeight
	if dr <= 0 && dh <= 0 {
		return maxf(dr, dh)
	}
	return vec3.Vec{X: maxf(dr, 0), Y: maxf(dh, 0)}.Length()
}

func (c Cylinder) AABB() spatial.Box {
	axis := c.Axis.Unit()
	center := c.Base
	// Conservative: a sphere-like box of radius sqrt(r^2+h^2) covers
	// any axis orientation without trigonometric per-axis projection.
	extent := maxf(c.Radius, c.HalfHeight)
	_ = axis
	r := vec3.Vec{X: extent, Y: extent, Z: extent}
	return spatial.NewBox(center.Sub(r), center.Add(r))
}

// Cone is a solid cone with apex at Apex, axis direction Axis (unit),
// half-angle AngleRad and height Height along the axis from the apex.
type Cone struct {
	Apex     vec3.Vec
	Axis     vec3.Vec
	AngleRad float64
	Height   float64
}

func (c Cone) EvaluateScalar(p vec3.Vec) float64 {
	axis := c.Axis.Unit()
	d := p.Sub(c.Apex)
	along := d.Dot(axis)
	radial := d.Sub(axis.MulScalar(along)).Length()
	coneRadius := along * tanApprox(c.AngleRad)
	sideDist := radial - coneRadius
	topDist := along - c.Height
	if along < 0 {
		return d.Length()
	}
	if sideDist <= 0 && topDist <= 0 {
		return maxf(sideDist, topDist)
	}
	return vec3.Vec{X: maxf(sideDist, 0), Y: maxf(topDist, 0)}.Length()
}

func (c Cone) AABB() spatial.Box {
	r := c.Height * tanApprox(c.AngleRad)
	extent := maxf(r, c.Height)
	rr := vec3.Vec{X: extent, Y: extent, Z: extent}
	return spatial.NewBox(c.Apex.Sub(rr), c.Apex.Add(rr))
}

// Mesh is an implicit solid defined by closest-point distance to a
// closed triangle mesh, inside/outside resolved by Winding (true
// inside, false outside) precomputed by the caller (e.g. by a prior
// ray-parity or winding-number pass external to this package, per
// the caller-supplied primitives this package catalogues).
type Mesh struct {
	Verts    []vec3.Vec
	Tris     [][3]int32
	Inside   func(p vec3.Vec) bool
	bounds   spatial.Box
}

// NewMesh builds a Mesh, precomputing its AABB.
func NewMesh(verts []vec3.Vec, tris [][3]int32, inside func(vec3.Vec) bool) *Mesh {
	m := &Mesh{Verts: verts, Tris: tris, Inside: inside}
	if len(verts) > 0 {
		m.bounds = spatial.FromPoints(verts)
	}
	return m
}

func (m *Mesh) EvaluateScalar(p vec3.Vec) float64 {
	d := m.closestTriDist(p)
	if m.Inside != nil && m.Inside(p) {
		return -d
	}
	return d
}

func (m *Mesh) AABB() spatial.Box { return m.bounds }

func (m *Mesh) closestTriDist(p vec3.Vec) float64 {
	best := 0.0
	first := true
	for _, tri := range m.Tris {
		a, b, c := m.Verts[tri[0]], m.Verts[tri[1]], m.Verts[tri[2]]
		d := pointTriangleDist(p, a, b, c)
		if first || d < best {
			best = d
			first = false
		}
	}
	return best
}

func pointTriangleDist(p, a, b, c vec3.Vec) float64 {
	// Closest point on triangle via barycentric clamping (the
	// standard Ericson "Real-Time Collision Detection" scheme).
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return p.Sub(a).Length()
	}
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return p.Sub(b).Length()
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return p.Sub(a.Add(ab.MulScalar(v))).Length()
	}
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return p.Sub(c).Length()
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return p.Sub(a.Add(ac.MulScalar(w))).Length()
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return p.Sub(b.Add(c.Sub(b).MulScalar(w))).Length()
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return p.Sub(a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))).Length()
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// tanApprox names the half-angle tangent at its two call sites so the
// intent reads clearly rather than a bare math.Tan.
func tanApprox(rad float64) float64 { return math.Tan(rad) }
