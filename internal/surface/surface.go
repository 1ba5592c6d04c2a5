// Package surface defines the drawing primitives a visualization issues for one
// frame, and the surfaces that receive them: a Recorder for tests and draw2d
// backed canvases for raster and SVG output.
package surface

import "math"

// Point is a position in drawing units. The origin is the top-left corner and
// y grows downward.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// Geometry is the size of the target surface at the moment of rendering.
type Geometry struct {
	Width  float64
	Height float64
}

// Center returns the middle of the surface.
func (g Geometry) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Min returns the shorter side.
func (g Geometry) Min() float64 {
	return math.Min(g.Width, g.Height)
}

// Empty reports whether nothing can be drawn on a surface of this size.
func (g Geometry) Empty() bool {
	return g.Width <= 0 || g.Height <= 0
}

// Contains reports whether p lies inside the surface, allowing eps of slack for
// floating point error.
func (g Geometry) Contains(p Point, eps float64) bool {
	return p.X >= -eps && p.Y >= -eps && p.X <= g.Width+eps && p.Y <= g.Height+eps
}

// Polar returns the point at the given angle and distance from c. Angle 0 points
// right and angles grow clockwise on screen.
func Polar(c Point, angle, radius float64) Point {
	return Point{
		X: c.X + radius*math.Cos(angle),
		Y: c.Y + radius*math.Sin(angle),
	}
}

// Pen describes how a stroke is painted.
type Pen struct {
	Paint Paint
	Width float64
}

// Surface receives the primitives of one frame. A Surface handed to a renderer
// is only valid for the duration of that call.
type Surface interface {
	FillRect(r Rect, p Paint)
	FillPath(pts []Point, p Paint)
	StrokeLine(from, to Point, pen Pen)
	StrokePath(pts []Point, closed bool, pen Pen)
	// FillArc fills the sector between start and end (radians, clockwise).
	// A sweep of 2π or more fills the whole disc.
	FillArc(center Point, radius, start, end float64, p Paint)
	StrokeArc(center Point, radius, start, end float64, pen Pen)
}
