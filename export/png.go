package export

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/draw"

	"github.com/mtsarch/isonet/isomesh"
)

// supersample is the factor the outline is rasterized at before being
// downscaled to the requested size, giving draw2d's aliased line
// drawing some antialiasing for free.
const supersample = 2

// WritePNG rasterizes the same XY-projected boundary outline
// WriteSVGSlice draws, as a raster preview for contexts that can't
// render SVG. The outline is drawn at supersample scale and
// downsampled with a Catmull-Rom resampler to smooth jagged edges.
func WritePNG(path string, mesh *isomesh.Mesh, faces []isomesh.Face, width, height int) error {
	bigW, bigH := width*supersample, height*supersample
	img := image.NewRGBA(image.Rect(0, 0, bigW, bigH))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFillColor(color.White)
	gc.Clear()
	gc.SetStrokeColor(color.Black)
	gc.SetLineWidth(float64(supersample))

	cx, cy := float64(bigW)/2, float64(bigH)/2
	scale := sliceScale(mesh, bigW, bigH)

	for _, face := range faces {
		if len(face.Verts) < 3 {
			continue
		}
		p0 := mesh.Verts[face.Verts[0]].Pos
		gc.MoveTo(cx+p0.X*scale, cy-p0.Y*scale)
		for _, vid := range face.Verts[1:] {
			p := mesh.Verts[vid].Pos
			gc.LineTo(cx+p.X*scale, cy-p.Y*scale)
		}
		gc.Close()
		gc.Stroke()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
