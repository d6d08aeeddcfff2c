// Package integral implements the caller-supplied surface
// integral accumulation: area is the sum of triangulated face areas,
// and volume is the sum of the signed volumes of the tetrahedra that
// join each triangle to the origin (the divergence theorem applied to
// a closed, outward-wound mesh).
package integral

import "github.com/mtsarch/isonet/vec3"

// Evaluator accumulates area and volume contributions one boundary
// face at a time, letting the caller swap in export-format-specific
// bookkeeping (e.g. package export's mesh writers) without boolean
// needing to know about it.
type Evaluator interface {
	AddFace(verts []vec3.Vec)
	Area() float64
	Volume() float64
}

// Planar is the default Evaluator: fan-triangulates each polygon face
// for area via the cross-product magnitude, and accumulates volume via
// the standard "mesh volume via signed tetrahedra to the origin"
// identity, V = sum_triangles( a . (b x c) / 6 ).
type Planar struct {
	area   float64
	volume float64
}

// NewPlanar returns a zeroed Planar evaluator.
func NewPlanar() *Planar { return &Planar{} }

func triangleArea(a, b, c vec3.Vec) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// signedTetVolume is the signed volume of the tetrahedron formed by
// the origin and triangle (a,b,c); summing this over a closed,
// outward-wound triangle mesh yields the mesh's enclosed volume.
func signedTetVolume(a, b, c vec3.Vec) float64 {
	return a.Dot(b.Cross(c)) / 6
}

// AddFace fan-triangulates verts (assumed planar, CCW as seen from
// outside the solid) around its first vertex and accumulates both
// area and volume contributions.
func (p *Planar) AddFace(verts []vec3.Vec) {
	if len(verts) < 3 {
		return
	}
	for i := 1; i+1 < len(verts); i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		p.area += triangleArea(a, b, c)
		p.volume += signedTetVolume(a, b, c)
	}
}

func (p *Planar) Area() float64   { return p.area }
func (p *Planar) Volume() float64 { return p.volume }
