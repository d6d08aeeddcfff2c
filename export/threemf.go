package export

import (
	"os"

	"github.com/hpinc/go3mf"
	"github.com/mtsarch/isonet/isomesh"
)

// WriteThreeMF writes the boundary mesh (already fan-triangulated via
// Triangulate) as a single-object 3MF package.
func WriteThreeMF(path string, mesh *isomesh.Mesh, faces []isomesh.Face) error {
	tris := Triangulate(mesh, faces)

	model := &go3mf.Model{}
	obj := &go3mf.Object{
		ID:   1,
		Type: go3mf.ObjectTypeModel,
	}

	for _, t := range tris {
		i1 := obj.Mesh.Vertices.Add(go3mf.Point3D{float32(t.V1.X), float32(t.V1.Y), float32(t.V1.Z)})
		i2 := obj.Mesh.Vertices.Add(go3mf.Point3D{float32(t.V2.X), float32(t.V2.Y), float32(t.V2.Z)})
		i3 := obj.Mesh.Vertices.Add(go3mf.Point3D{float32(t.V3.X), float32(t.V3.Y), float32(t.V3.Z)})
		obj.Mesh.Triangles.Triangle = append(obj.Mesh.Triangles.Triangle, go3mf.Triangle{V1: i1, V2: i2, V3: i3})
	}

	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := go3mf.NewEncoder(f)
	return enc.Encode(model)
}
