//-----------------------------------------------------------------------------
/*

Run the implicit-surface boolean pipeline on a hardcoded two-sphere
union/difference blobtree and write the boundary mesh out as STL, 3MF,
DXF, SVG and PNG.

*/
//-----------------------------------------------------------------------------

package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/mtsarch/isonet/blobtree"
	"github.com/mtsarch/isonet/config"
	"github.com/mtsarch/isonet/export"
	"github.com/mtsarch/isonet/isomesh"
	"github.com/mtsarch/isonet/primitive"
	"github.com/mtsarch/isonet/processor"
	"github.com/mtsarch/isonet/vec3"
)

//-----------------------------------------------------------------------------

func main() {
	outDir := flag.String("out", ".", "directory to write output files into")
	resolution := flag.Int("res", 24, "background tet-mesh resolution")
	op := flag.String("op", "union", "boolean op: union, intersection or difference")
	flag.Parse()

	tree, err := buildTree(*op)
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	prims := []primitive.Primitive{
		primitive.Sphere{Center: vec3.Vec{X: -0.5}, Radius: 1},
		primitive.Sphere{Center: vec3.Vec{X: 0.5}, Radius: 1},
	}

	cfg := config.New(
		config.WithResolution(*resolution),
		config.WithBounds(vec3.Vec{X: -2.5, Y: -1.5, Z: -1.5}, vec3.Vec{X: 2.5, Y: 1.5, Z: 1.5}),
	)

	p, err := processor.New(cfg, prims, tree)
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	res, err := p.Run()
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	log.Printf("boundary faces=%d area=%.4f volume=%.4f active cells=%d",
		len(res.Boundary), res.Area, res.Volume, res.Active)

	write(*outDir, res)
}

func buildTree(op string) (*blobtree.Tree, error) {
	tree := blobtree.New()
	a := tree.AddLeaf(0)
	b := tree.AddLeaf(1)
	switch op {
	case "union":
		tree.Root = tree.AddOp(blobtree.Union, a, b)
	case "intersection":
		tree.Root = tree.AddOp(blobtree.Intersection, a, b)
	case "difference":
		tree.Root = tree.AddOp(blobtree.Difference, a, b)
	default:
		return nil, errUnknownOp(op)
	}
	return tree, nil
}

type errUnknownOp string

func (e errUnknownOp) Error() string { return "unknown boolean op: " + string(e) }

func write(dir string, res *processor.Result) {
	mesh := &isomesh.Mesh{Verts: res.Verts, Faces: res.Boundary}
	tris := export.Triangulate(mesh, res.Boundary)

	if err := export.WriteSTL(filepath.Join(dir, "boundary.stl"), tris); err != nil {
		log.Fatalf("error: %s", err)
	}
	if err := export.WriteThreeMF(filepath.Join(dir, "boundary.3mf"), mesh, res.Boundary); err != nil {
		log.Fatalf("error: %s", err)
	}
	if err := export.WriteDXF(filepath.Join(dir, "boundary.dxf"), mesh, res.Boundary); err != nil {
		log.Fatalf("error: %s", err)
	}
	if err := export.WriteSVGSlice(filepath.Join(dir, "boundary.svg"), mesh, res.Boundary, 512, 512); err != nil {
		log.Fatalf("error: %s", err)
	}
	if err := export.WritePNG(filepath.Join(dir, "boundary.png"), mesh, res.Boundary, 512, 512); err != nil {
		log.Fatalf("error: %s", err)
	}
}
