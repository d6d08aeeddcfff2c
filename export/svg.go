package export

import (
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/mtsarch/isonet/isomesh"
)

// WriteSVGSlice projects every boundary face onto the XY plane and
// writes the resulting polygon outlines as a flat SVG drawing, useful
// as a quick visual sanity check of a run without a full 3-D viewer.
func WriteSVGSlice(path string, mesh *isomesh.Mesh, faces []isomesh.Face, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(width, height)
	defer canvas.End()

	cx, cy := float64(width)/2, float64(height)/2
	scale := sliceScale(mesh, width, height)

	for _, face := range faces {
		if len(face.Verts) < 3 {
			continue
		}
		xs := make([]int, len(face.Verts))
		ys := make([]int, len(face.Verts))
		for i, vid := range face.Verts {
			p := mesh.Verts[vid].Pos
			xs[i] = int(cx + p.X*scale)
			ys[i] = int(cy - p.Y*scale)
		}
		canvas.Polygon(xs, ys, "fill:none;stroke:black;stroke-width:1")
	}
	return nil
}

func sliceScale(mesh *isomesh.Mesh, width, height int) float64 {
	var maxExtent float64
	for _, v := range mesh.Verts {
		if a := absf(v.Pos.X); a > maxExtent {
			maxExtent = a
		}
		if a := absf(v.Pos.Y); a > maxExtent {
			maxExtent = a
		}
	}
	if maxExtent == 0 {
		return 1
	}
	span := float64(width)
	if height < width {
		span = float64(height)
	}
	return span / (2.2 * maxExtent)
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
