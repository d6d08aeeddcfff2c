package rayshoot

import (
	"testing"

	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/vec3"
)

func cubeMesh(center vec3.Vec, half float64, primitive int32) *isomesh.Mesh {
	c := center
	h := half
	corners := []vec3.Vec{
		{X: c.X - h, Y: c.Y - h, Z: c.Z - h},
		{X: c.X + h, Y: c.Y - h, Z: c.Z - h},
		{X: c.X + h, Y: c.Y + h, Z: c.Z - h},
		{X: c.X - h, Y: c.Y + h, Z: c.Z - h},
		{X: c.X - h, Y: c.Y - h, Z: c.Z + h},
		{X: c.X + h, Y: c.Y - h, Z: c.Z + h},
		{X: c.X + h, Y: c.Y + h, Z: c.Z + h},
		{X: c.X - h, Y: c.Y + h, Z: c.Z + h},
	}
	faceIdx := [6][4]int32{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	}
	m := &isomesh.Mesh{}
	for _, v := range corners {
		m.Verts = append(m.Verts, isomesh.Vertex{Pos: v})
	}
	for _, fi := range faceIdx {
		m.Faces = append(m.Faces, isomesh.Face{Verts: []int32{fi[0], fi[1], fi[2], fi[3]}, Primitive: primitive})
	}
	return m
}

func TestRayHitCountParityInsideOutside(t *testing.T) {
	m := cubeMesh(vec3.Vec{}, 1, 0)
	shell := Shell{ID: 0, Faces: []int32{0, 1, 2, 3, 4, 5}}
	if rayHitCount(m, shell, vec3.Vec{}) % 2 != 1 {
		t.Fatalf("center of cube should have odd ray-hit parity (inside)")
	}
	if rayHitCount(m, shell, vec3.Vec{X: 10}) % 2 != 0 {
		t.Fatalf("far outside point should have even ray-hit parity (outside)")
	}
}
