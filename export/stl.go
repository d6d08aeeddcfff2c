// Package export writes a processor.Result's boundary mesh out as
// binary STL (an os.Create+bufio.Writer+binary.Write writer), 3MF,
// DXF, SVG and PNG.
package export

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/vec3"
)

// Triangle is one facet of a triangulated boundary, in the shape a
// binary STL writer expects.
type Triangle struct {
	Normal   vec3.Vec
	V1,V2,V3 vec3.Vec
}

// Triangulate fan-triangulates every face of mesh, restricted to the
// given face ids (use nil for the whole mesh).
func Triangulate(mesh *isomesh.Mesh, faces []isomesh.Face) []Triangle {
	var out []Triangle
	for _, f := range faces {
		if len(f.Verts) < 3 {
			continue
		}
		p0 := mesh.Verts[f.Verts[0]].Pos
		for i := 1; i+1 < len(f.Verts); i++ {
			p1 := mesh.Verts[f.Verts[i]].Pos
			p2 := mesh.Verts[f.Verts[i+1]].Pos
			n := p1.Sub(p0).Cross(p2.Sub(p0))
			if l := n.Length(); l > 0 {
				n = n.DivScalar(l)
			}
			out = append(out, Triangle{Normal: n, V1: p0, V2: p1, V3: p2})
		}
	}
	return out
}

// WriteSTL writes tris as a binary STL file.
func WriteSTL(path string, tris []Triangle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	var header [80]byte
	copy(header[:], []byte("isonet boundary mesh"))
	if _, err := buf.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(tris))); err != nil {
		return err
	}
	for _, t := range tris {
		if err := writeSTLTriangle(buf, t); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func writeSTLTriangle(buf *bufio.Writer, t Triangle) error {
	vecs := [4]vec3.Vec{t.Normal, t.V1, t.V2, t.V3}
	for _, v := range vecs {
		if err := binary.Write(buf, binary.LittleEndian, float32(v.X)); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, float32(v.Y)); err != nil {
			return err
		}
		if err := binary.Write(buf, binary.LittleEndian, float32(v.Z)); err != nil {
			return err
		}
	}
	return binary.Write(buf, binary.LittleEndian, uint16(0))
}
