// Package spatial provides the AABB type used by the primitive
// AABB/contains interface. It holds no spatial index; package dispatch
// builds its own R-tree prefilter on github.com/dhconnelly/rtreego.
package spatial

import (
	"github.com/mtsarch/isonet/vec3"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max vec3.Vec
}

// NewBox returns the box spanning min and max (component-wise sorted).
func NewBox(min, max vec3.Vec) Box {
	return Box{Min: min.Min(max), Max: min.Max(max)}
}

// Contains reports whether p lies within the box, inclusive of its
// boundary.
func (b Box) Contains(p vec3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Overlaps reports whether b and other share any volume.
func (b Box) Overlaps(other Box) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// FromPoints returns the bounding box of a non-empty point set.
func FromPoints(pts []vec3.Vec) Box {
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return Box{Min: min, Max: max}
}
