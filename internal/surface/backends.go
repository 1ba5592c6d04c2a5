package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"os"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dsvg"
)

// Raster is a Canvas drawing into an RGBA image.
type Raster struct {
	*Canvas
	img *image.RGBA
}

// NewRaster allocates a w×h pixel raster.
func NewRaster(w, h int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Raster{
		Canvas: NewCanvas(draw2dimg.NewGraphicContext(img), Geometry{Width: float64(w), Height: float64(h)}),
		img:    img,
	}
}

// Image returns the backing image. It is overwritten by the next frame.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size returns the pixel dimensions.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// SavePNG writes the current image to path.
func (r *Raster) SavePNG(path string) error {
	if err := draw2dimg.SaveToPngFile(path, r.img); err != nil {
		return fmt.Errorf("saving png: %w", err)
	}
	return nil
}

// SVG is a Canvas building an SVG document.
type SVG struct {
	*Canvas
	doc *draw2dsvg.Svg
}

// NewSVG starts an SVG document of size g.
func NewSVG(g Geometry) *SVG {
	doc := draw2dsvg.NewSvg()
	return &SVG{
		Canvas: NewCanvas(draw2dsvg.NewGraphicContext(doc), g),
		doc:    doc,
	}
}

// Bytes renders the document with its viewport set to the canvas geometry.
func (s *SVG) Bytes() ([]byte, error) {
	body, err := xml.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding svg: %w", err)
	}
	g := s.Geometry()
	attrs := fmt.Sprintf(`<svg width="%g" height="%g" viewBox="0 0 %g %g" `, g.Width, g.Height, g.Width, g.Height)
	body = bytes.Replace(body, []byte("<svg "), []byte(attrs), 1)
	return append([]byte(xml.Header), body...), nil
}

// SaveSVG writes the document to path.
func (s *SVG) SaveSVG(path string) error {
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("saving svg: %w", err)
	}
	return nil
}
