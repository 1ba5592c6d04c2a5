package surface

import (
	"image/color"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dkit"
)

// gradientSteps is how many flat bands approximate a gradient, since draw2d
// only paints flat colours.
const gradientSteps = 16

// Canvas adapts a draw2d graphic context to Surface.
type Canvas struct {
	gc   draw2d.GraphicContext
	geom Geometry
}

// NewCanvas wraps gc, which draws onto a surface of size g.
func NewCanvas(gc draw2d.GraphicContext, g Geometry) *Canvas {
	gc.SetLineCap(draw2d.RoundCap)
	gc.SetLineJoin(draw2d.RoundJoin)
	return &Canvas{gc: gc, geom: g}
}

// Geometry returns the size of the underlying surface.
func (c *Canvas) Geometry() Geometry {
	return c.geom
}

// Clear paints the whole surface with bg.
func (c *Canvas) Clear(bg color.Color) {
	c.gc.BeginPath()
	c.gc.SetFillColor(bg)
	draw2dkit.Rectangle(c.gc, 0, 0, c.geom.Width, c.geom.Height)
	c.gc.Fill()
}

func (c *Canvas) FillRect(r Rect, p Paint) {
	if r.W == 0 || r.H == 0 {
		return
	}
	if p.Gradient == nil {
		c.fillRect(r, p.Color)
		return
	}
	// Slice along the dominant gradient axis.
	g := p.Gradient
	if math.Abs(g.To.X-g.From.X) >= math.Abs(g.To.Y-g.From.Y) {
		step := r.W / gradientSteps
		for i := 0; i < gradientSteps; i++ {
			band := Rect{X: r.X + float64(i)*step, Y: r.Y, W: step, H: r.H}
			c.fillRect(band, p.At(Point{X: band.X + step/2, Y: r.Y + r.H/2}))
		}
		return
	}
	step := r.H / gradientSteps
	for i := 0; i < gradientSteps; i++ {
		band := Rect{X: r.X, Y: r.Y + float64(i)*step, W: r.W, H: step}
		c.fillRect(band, p.At(Point{X: r.X + r.W/2, Y: band.Y + step/2}))
	}
}

func (c *Canvas) fillRect(r Rect, col color.Color) {
	c.gc.BeginPath()
	c.gc.SetFillColor(col)
	draw2dkit.Rectangle(c.gc, r.X, r.Y, r.X+r.W, r.Y+r.H)
	c.gc.Fill()
}

// FillPath fills a closed polygon. Gradients are sampled at the centroid.
func (c *Canvas) FillPath(pts []Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	c.gc.BeginPath()
	c.gc.SetFillColor(p.At(centroid(pts)))
	c.trace(pts, true)
	c.gc.Fill()
}

func (c *Canvas) StrokeLine(from, to Point, pen Pen) {
	if pen.Paint.Gradient == nil {
		c.segment(from, to, pen.Paint.Color, pen.Width)
		return
	}
	prev := from
	for i := 1; i <= gradientSteps; i++ {
		t := float64(i) / gradientSteps
		next := Point{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}
		c.segment(prev, next, pen.Paint.At(midpoint(prev, next)), pen.Width)
		prev = next
	}
}

func (c *Canvas) StrokePath(pts []Point, closed bool, pen Pen) {
	if len(pts) < 2 {
		return
	}
	if pen.Paint.Gradient == nil {
		c.gc.BeginPath()
		c.gc.SetStrokeColor(pen.Paint.Color)
		c.gc.SetLineWidth(pen.Width)
		c.trace(pts, closed)
		c.gc.Stroke()
		return
	}
	for i := 1; i < len(pts); i++ {
		c.segment(pts[i-1], pts[i], pen.Paint.At(midpoint(pts[i-1], pts[i])), pen.Width)
	}
	if closed {
		last := pts[len(pts)-1]
		c.segment(last, pts[0], pen.Paint.At(midpoint(last, pts[0])), pen.Width)
	}
}

func (c *Canvas) FillArc(center Point, radius, start, end float64, p Paint) {
	sweep := end - start
	if radius <= 0 || sweep == 0 {
		return
	}
	c.gc.BeginPath()
	c.gc.SetFillColor(p.At(center))
	if math.Abs(sweep) >= 2*math.Pi {
		draw2dkit.Circle(c.gc, center.X, center.Y, radius)
	} else {
		c.gc.MoveTo(center.X, center.Y)
		c.gc.ArcTo(center.X, center.Y, radius, radius, start, sweep)
		c.gc.Close()
	}
	c.gc.Fill()
}

func (c *Canvas) StrokeArc(center Point, radius, start, end float64, pen Pen) {
	sweep := end - start
	if radius <= 0 || sweep == 0 {
		return
	}
	c.gc.BeginPath()
	c.gc.SetStrokeColor(pen.Paint.At(Polar(center, start, radius)))
	c.gc.SetLineWidth(pen.Width)
	c.gc.ArcTo(center.X, center.Y, radius, radius, start, sweep)
	c.gc.Stroke()
}

func (c *Canvas) segment(from, to Point, col color.Color, width float64) {
	c.gc.BeginPath()
	c.gc.SetStrokeColor(col)
	c.gc.SetLineWidth(width)
	c.gc.MoveTo(from.X, from.Y)
	c.gc.LineTo(to.X, to.Y)
	c.gc.Stroke()
}

func (c *Canvas) trace(pts []Point, closed bool) {
	c.gc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.gc.LineTo(p.X, p.Y)
	}
	if closed {
		c.gc.Close()
	}
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func centroid(pts []Point) Point {
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}
