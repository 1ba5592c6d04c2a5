package surface

import (
	"bytes"
	"image/color"
	"math"
	"testing"
)

func TestPaintAtInterpolatesAlongGradientAxis(t *testing.T) {
	p := Linear(Point{X: 0, Y: 0}, Point{X: 100, Y: 0}, RGB(0, 0, 0), RGB(200, 100, 50))

	if got := p.At(Point{X: -10, Y: 40}); got != RGB(0, 0, 0) {
		t.Fatalf("expected start colour before the axis, got %v", got)
	}
	if got := p.At(Point{X: 50, Y: 99}); got != RGB(100, 50, 25) {
		t.Fatalf("expected midpoint colour, got %v", got)
	}
	if got := p.At(Point{X: 500, Y: 0}); got != RGB(200, 100, 50) {
		t.Fatalf("expected end colour past the axis, got %v", got)
	}
}

func TestPaintAtDegenerateGradientUsesStart(t *testing.T) {
	p := Linear(Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, RGB(1, 2, 3), RGB(4, 5, 6))
	if got := p.At(Point{X: 9, Y: 9}); got != RGB(1, 2, 3) {
		t.Fatalf("expected start colour, got %v", got)
	}
}

func TestHSVPrimaries(t *testing.T) {
	cases := []struct {
		h    float64
		want color.NRGBA
	}{
		{0, RGB(255, 0, 0)},
		{1.0 / 3, RGB(0, 255, 0)},
		{2.0 / 3, RGB(0, 0, 255)},
		{-1.0 / 3, RGB(0, 0, 255)},
	}
	for _, c := range cases {
		if got := HSV(c.h, 1, 1); got != c.want {
			t.Errorf("HSV(%v) = %v, want %v", c.h, got, c.want)
		}
	}
}

func TestWithAlphaClamps(t *testing.T) {
	if got := WithAlpha(RGB(9, 9, 9), 2).A; got != 255 {
		t.Fatalf("expected alpha 255, got %d", got)
	}
	if got := WithAlpha(RGB(9, 9, 9), -1).A; got != 0 {
		t.Fatalf("expected alpha 0, got %d", got)
	}
}

func TestRecorderCopiesPaths(t *testing.T) {
	r := NewRecorder()
	pts := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	r.StrokePath(pts, false, Pen{Paint: Solid(RGB(1, 1, 1)), Width: 1})
	pts[0].X = 99

	if got := r.Ops[0].Points[0].X; got != 1 {
		t.Fatalf("expected recorded path to be a copy, got x=%v", got)
	}
	if r.Count(OpStrokePath) != 1 || r.Count(OpFillRect) != 0 {
		t.Fatalf("unexpected op counts: %+v", r.Ops)
	}

	r.Reset()
	if len(r.Ops) != 0 {
		t.Fatalf("expected reset to drop ops, got %d", len(r.Ops))
	}
}

func TestOpExtentCoversArcCircle(t *testing.T) {
	op := Op{Kind: OpStrokeArc, Center: Point{X: 10, Y: 20}, Radius: 5}
	ext := op.Extent()
	if len(ext) != 2 || ext[0] != (Point{X: 5, Y: 15}) || ext[1] != (Point{X: 15, Y: 25}) {
		t.Fatalf("unexpected arc extent %v", ext)
	}
}

func TestGeometryHelpers(t *testing.T) {
	g := Geometry{Width: 200, Height: 100}
	if g.Min() != 100 {
		t.Fatalf("expected min 100, got %v", g.Min())
	}
	if g.Center() != (Point{X: 100, Y: 50}) {
		t.Fatalf("unexpected centre %v", g.Center())
	}
	if !g.Contains(Point{X: 200.0000001, Y: 0}, 1e-6) {
		t.Fatal("expected edge point within tolerance")
	}
	if g.Contains(Point{X: -1, Y: 0}, 1e-6) {
		t.Fatal("expected negative x outside")
	}
	p := Polar(g.Center(), math.Pi/2, 10)
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-60) > 1e-9 {
		t.Fatalf("expected polar point below centre, got %v", p)
	}
}

func TestRasterFillsRect(t *testing.T) {
	r := NewRaster(40, 20)
	r.Clear(color.Black)
	r.FillRect(Rect{X: 10, Y: 5, W: 20, H: 10}, Solid(RGB(255, 0, 0)))

	got := r.Image().RGBAAt(20, 10)
	if got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("expected red fill inside rect, got %v", got)
	}
	if bg := r.Image().RGBAAt(2, 2); bg != (color.RGBA{A: 255}) {
		t.Fatalf("expected black background, got %v", bg)
	}
	if w, h := r.Size(); w != 40 || h != 20 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
}

func TestSVGBytesCarriesViewport(t *testing.T) {
	s := NewSVG(Geometry{Width: 100, Height: 50})
	s.Clear(color.Black)
	s.StrokeLine(Point{X: 0, Y: 0}, Point{X: 100, Y: 50}, Pen{Paint: Solid(RGB(255, 255, 255)), Width: 2})

	data, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes returned error: %v", err)
	}
	if !bytes.Contains(data, []byte(`viewBox="0 0 100 50"`)) {
		t.Fatalf("expected viewBox in svg, got %s", data)
	}
}
