package export

import (
	"github.com/yofu/dxf"

	"github.com/mtsarch/isonet/isomesh"
)

// WriteDXF emits every boundary edge as a LINE entity in a
// single-layer DXF drawing, for import into CAD tools that don't read
// 3MF.
func WriteDXF(path string, mesh *isomesh.Mesh, faces []isomesh.Face) error {
	d := dxf.NewDrawing()
	d.AddLayer("BOUNDARY", dxf.DefaultColor, dxf.DefaultLineType, true)

	for _, face := range faces {
		n := len(face.Verts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := mesh.Verts[face.Verts[i]].Pos
			b := mesh.Verts[face.Verts[(i+1)%n]].Pos
			d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}
	return d.SaveAs(path)
}
