// Package vec3 is the 3-D vector type shared by every other package in
// isonet: a method-style Add/Sub/Dot/Cross/Length/MulScalar API built
// directly on gonum's spatial/r3 package instead of a hand-rolled
// float triple, so gonum.org/v1/gonum covers both the scalar-field
// matrix and the geometry.
package vec3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec is a 3-D vector / point.
type Vec struct {
	X, Y, Z float64
}

func toR3(v Vec) r3.Vec   { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromR3(v r3.Vec) Vec { return Vec{X: v.X, Y: v.Y, Z: v.Z} }

// Add returns v + other.
func (v Vec) Add(other Vec) Vec { return fromR3(r3.Add(toR3(v), toR3(other))) }

// Sub returns v - other.
func (v Vec) Sub(other Vec) Vec { return fromR3(r3.Sub(toR3(v), toR3(other))) }

// Dot returns the dot product of v and other.
func (v Vec) Dot(other Vec) float64 { return r3.Dot(toR3(v), toR3(other)) }

// Cross returns the cross product v x other.
func (v Vec) Cross(other Vec) Vec { return fromR3(r3.Cross(toR3(v), toR3(other))) }

// Length returns the Euclidean norm of v.
func (v Vec) Length() float64 { return r3.Norm(toR3(v)) }

// MulScalar returns v scaled by k.
func (v Vec) MulScalar(k float64) Vec { return fromR3(r3.Scale(k, toR3(v))) }

// DivScalar returns v divided component-wise by k.
func (v Vec) DivScalar(k float64) Vec { return Vec{v.X / k, v.Y / k, v.Z / k} }

// AddScalar adds k to every component.
func (v Vec) AddScalar(k float64) Vec { return Vec{v.X + k, v.Y + k, v.Z + k} }

// Neg returns -v.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y, -v.Z} }

// Unit returns v normalized to unit length; the zero vector maps to itself.
func (v Vec) Unit() Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.DivScalar(l)
}

// MaxComponent returns the largest of X, Y, Z.
func (v Vec) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Ceil rounds each component up to the nearest integer.
func (v Vec) Ceil() Vec {
	return Vec{math.Ceil(v.X), math.Ceil(v.Y), math.Ceil(v.Z)}
}

// Min returns the component-wise minimum of v and other.
func (v Vec) Min(other Vec) Vec {
	return Vec{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec) Max(other Vec) Vec {
	return Vec{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// Lerp returns the linear interpolation between v and other at parameter t.
func (v Vec) Lerp(other Vec, t float64) Vec {
	return v.Add(other.Sub(v).MulScalar(t))
}

// Less gives the lexicographic (X, then Y, then Z) order used by the
// topological ray-shooting vertex ordering package rayshoot performs.
func Less(a, b Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
