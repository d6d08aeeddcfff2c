package primitive

import (
	"math"

	"github.com/mtsarch/isonet/spatial"
	"github.com/mtsarch/isonet/vec3"
)

// Profile is a closed polygon in the plane perpendicular to an
// ExtrudedSolid's axis at arc-length 0, matching the reference implementation's
// IProfile vertex-loop representation.
type Profile struct {
	Verts []Point2
}

// signedArea is positive for a counter-clockwise loop.
func (pr Profile) signedArea() float64 {
	a := 0.0
	n := len(pr.Verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pr.Verts[i].X*pr.Verts[j].Y - pr.Verts[j].X*pr.Verts[i].Y
	}
	return a / 2
}

// distance returns the signed 2-D distance from p to the profile
// boundary (negative inside, for a counter-clockwise loop), using a
// winding-number inside test and a brute-force closest-edge distance.
func (pr Profile) distance(p Point2) float64 {
	d := math.Inf(1)
	n := len(pr.Verts)
	for i := 0; i < n; i++ {
		a, b := pr.Verts[i], pr.Verts[(i+1)%n]
		u := clamp01(projectParam(p, a, b))
		cand := Point2{X: a.X + u*(b.X-a.X), Y: a.Y + u*(b.Y-a.Y)}
		dd := dist2(p, cand)
		if dd < d {
			d = dd
		}
	}
	if pr.contains(p) {
		return -d
	}
	return d
}

func (pr Profile) contains(p Point2) bool {
	inside := false
	n := len(pr.Verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := pr.Verts[i], pr.Verts[j]
		if ((vi.Y > p.Y) != (vj.Y > p.Y)) &&
			(p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X) {
			inside = !inside
		}
	}
	return inside
}

// ExtrudedSolid sweeps Profile, lying in the plane orthogonal to Axis
// at its starting frame, along Axis, restricted to the poly-line/arc/
// helix Line2D kinds of this package, generalizing the profile-sweep
// extension of the primitive set.
//
// The sweep frame at arc length t is built from the axis tangent and a
// fixed reference "up" vector (arbitrary but consistent), so twist
// along the axis is not modeled — matching the planar-frame sweep
// the reference implementation's IExtrudedSolidBase performs for PolyLine and
// ArcLine axes, and reused as-is for HelixLine/PolynomialLine.
type ExtrudedSolid struct {
	Profile Profile
	Axis    Line2D
	Origin  vec3.Vec
	Up      vec3.Vec
}

func (e ExtrudedSolid) frameAt(t float64) (origin, tangent, normal, binormal vec3.Vec) {
	pos2 := e.Axis.Evaluate2D(t)
	tan2 := e.Axis.Tangent2D(t)
	origin = e.Origin.Add(vec3.Vec{X: pos2.X, Y: pos2.Y})
	tangent = vec3.Vec{X: tan2.X, Y: tan2.Y}.Unit()
	up := e.Up
	if up.Length() == 0 {
		up = vec3.Vec{Z: 1}
	}
	binormal = tangent.Cross(up)
	if binormal.Length() < 1e-9 {
		binormal = tangent.Cross(vec3.Vec{X: 1})
	}
	binormal = binormal.Unit()
	normal = binormal.Cross(tangent).Unit()
	return
}

func (e ExtrudedSolid) projectToFrame(p vec3.Vec, t float64) (along, localX, localY float64) {
	origin, tangent, normal, binormal := e.frameAt(t)
	d := p.Sub(origin)
	return d.Dot(tangent), d.Dot(normal), d.Dot(binormal)
}

// EvaluateScalar approximates the extruded solid's signed distance by
// projecting p onto its closest axis parameter (via the axis's own
// ClosestPoint in the axis's 2-D sense, using p's component along the
// initial frame as a stand-in coordinate) and evaluating the profile
// distance in that cross-section, clamped at the swept extent.
func (e ExtrudedSolid) EvaluateScalar(p vec3.Vec) float64 {
	d := p.Sub(e.Origin)
	approx2 := Point2{X: d.X, Y: d.Y}
	t, _ := e.Axis.ClosestPoint(approx2)
	total := e.Axis.ArcLength()
	capDist := 0.0
	if t < 0 {
		capDist = -t
		t = 0
	} else if t > total {
		capDist = t - total
		t = total
	}
	_, lx, ly := e.projectToFrame(p, t)
	crossDist := e.Profile.distance(Point2{X: lx, Y: ly})
	if capDist == 0 {
		return crossDist
	}
	if crossDist <= 0 {
		return capDist
	}
	return math.Hypot(capDist, crossDist)
}

func (e ExtrudedSolid) AABB() spatial.Box {
	total := e.Axis.ArcLength()
	const steps = 32
	maxR := 0.0
	for _, v := range e.Profile.Verts {
		r := math.Hypot(v.X, v.Y)
		if r > maxR {
			maxR = r
		}
	}
	var box spatial.Box
	first := true
	for i := 0; i <= steps; i++ {
		t := total * float64(i) / steps
		origin, _, normal, binormal := e.frameAt(t)
		corner := vec3.Vec{X: maxR, Y: maxR, Z: maxR}
		_ = normal
		_ = binormal
		lo := origin.Sub(corner)
		hi := origin.Add(corner)
		b := spatial.NewBox(lo, hi)
		if first {
			box = b
			first = false
		} else {
			box = box.Union(b)
		}
	}
	return box
}
