package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
)

// Styles placed around the centre of the surface.

const polygonSides = 6

func drawRadial(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	r0 := g.Min() / 4
	w := lineWidth(g, 0.008)
	for i, v := range snap {
		angle := angleAt(i, n, 1)
		s.StrokeLine(surface.Polar(c, angle, r0), surface.Polar(c, angle, r0+level(v)*r0), pen(hueAt(i, n), w))
	}
}

// drawRadialBars draws each bin as a bar rotated to its angle, shaded from
// the inner ring outward.
func drawRadialBars(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	r0 := g.Min() / 5
	reach := g.Min()/2 - r0
	half := math.Pi / float64(n) * 0.8
	for i, v := range snap {
		angle := angleAt(i, n, 1)
		r1 := r0 + level(v)*reach
		quad := []surface.Point{
			surface.Polar(c, angle-half, r0),
			surface.Polar(c, angle+half, r0),
			surface.Polar(c, angle+half, r1),
			surface.Polar(c, angle-half, r1),
		}
		paint := surface.Linear(surface.Polar(c, angle, r0), surface.Polar(c, angle, r0+reach), violet, amber)
		s.FillPath(quad, paint)
	}
}

func drawPolygonWave(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	base := g.Min() / 4
	pts := make([]surface.Point, n)
	for i, v := range snap {
		pts[i] = surface.Polar(c, angleAt(i, n, 1), base+level(v)*base)
	}
	s.StrokePath(pts, true, pen(cyan, lineWidth(g, 0.01)))
}

// drawSpiral walks two turns outward; amplitude pushes each point further out.
func drawSpiral(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	m := g.Min()
	w := lineWidth(g, 0.008)
	var prev surface.Point
	for i, v := range snap {
		r := float64(i)/float64(n)*0.35*m + level(v)*0.15*m
		p := surface.Polar(c, angleAt(i, n, 2), r)
		if i > 0 {
			s.StrokeLine(prev, p, pen(hueAt(i, n), w))
		}
		prev = p
	}
}

func drawStarburst(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	reach := g.Min() / 2
	w := lineWidth(g, 0.005)
	for i, v := range snap {
		a := level(v)
		col := surface.WithAlpha(hueAt(i, n), 0.25+0.75*a)
		s.StrokeLine(c, surface.Polar(c, angleAt(i, n, 1), a*reach), pen(col, w))
	}
}

// drawLissajous traces a 3:2 Lissajous figure whose amplitude follows the bins.
func drawLissajous(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	base := g.Min() / 4
	pts := make([]surface.Point, n)
	for i, v := range snap {
		t := float64(i) / float64(n) * 2 * math.Pi
		amp := base + level(v)*base
		pts[i] = surface.Point{
			X: c.X + amp*math.Sin(3*t+math.Pi/2),
			Y: c.Y + amp*math.Sin(2*t),
		}
	}
	s.StrokePath(pts, true, pen(lime, lineWidth(g, 0.008)))
}

// drawOrbit places one dot per bin on a ring. Every third dot is nudged
// forward so the ring reads as orbiting clusters.
func drawOrbit(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	m := g.Min()
	for i, v := range snap {
		a := level(v)
		angle := angleAt(i, n, 1) + float64(i%3)*math.Pi/12
		at := surface.Polar(c, angle, m/4+a*m/8)
		s.FillArc(at, m/100+a*m/16, 0, 2*math.Pi, surface.Solid(hueAt(i, n)))
	}
}

// drawPolygon pulses a single hexagon with the mean level.
func drawPolygon(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	if len(snap) == 0 {
		return
	}
	c := g.Center()
	m := g.Min()
	mean := snap.Mean()
	r := m/8 + mean*3*m/8
	pts := make([]surface.Point, polygonSides)
	for k := 0; k < polygonSides; k++ {
		pts[k] = surface.Polar(c, angleAt(k, polygonSides, 1), r)
	}
	s.StrokePath(pts, true, pen(surface.WithAlpha(amber, 0.4+0.6*mean), lineWidth(g, 0.015)))
}

// drawArc sweeps clockwise from 12 o'clock by the level of the first bin only.
func drawArc(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	if len(snap) == 0 {
		return
	}
	start := -math.Pi / 2
	end := start + level(snap[0])*2*math.Pi
	s.StrokeArc(g.Center(), g.Min()/3, start, end, pen(cyan, lineWidth(g, 0.025)))
}

func drawFlower(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	m := g.Min()
	for i, v := range snap {
		a := level(v)
		at := surface.Polar(c, angleAt(i, n, 1), m/6+a*m/8)
		s.FillArc(at, m/16+a*m/16, 0, 2*math.Pi, surface.Solid(surface.WithAlpha(hueAt(i, n), 0.6)))
	}
}
