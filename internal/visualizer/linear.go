package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
)

// Styles laid out left to right across the surface.

const (
	gridCols       = 16
	gridRows       = 8
	waterfallLayer = 4
)

// drawBars grows one bar per bin up from the bottom edge. Heights are the raw
// byte values, so short surfaces clip the loudest bins.
func drawBars(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	step := g.Width / float64(n)
	w := math.Max(step-1, step/2)
	for i, v := range snap {
		h := float64(v)
		s.FillRect(surface.Rect{X: float64(i) * step, Y: g.Height - h, W: w, H: h}, surface.Solid(hueAt(i, n)))
	}
}

func drawMirroredBars(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	step := g.Width / float64(n)
	w := math.Max(step-1, step/2)
	mid := g.Height / 2
	for i, v := range snap {
		h := level(v) * mid
		s.FillRect(surface.Rect{X: float64(i) * step, Y: mid - h, W: w, H: 2 * h}, surface.Solid(hueAt(i, n)))
	}
}

// drawDots pulses one dot per bin along the horizontal centre line.
func drawDots(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	step := g.Width / float64(n)
	maxR := math.Min(step/2, g.Height/2)
	for i, v := range snap {
		a := level(v)
		c := surface.Point{X: (float64(i) + 0.5) * step, Y: g.Height / 2}
		s.FillArc(c, a*maxR, 0, 2*math.Pi, surface.Solid(surface.WithAlpha(magenta, 0.3+0.7*a)))
	}
}

func drawZigzag(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	mid := g.Height / 2
	pts := make([]surface.Point, n)
	for i, v := range snap {
		dir := 1.0
		if i%2 == 1 {
			dir = -1
		}
		pts[i] = surface.Point{X: spanX(i, n, g.Width), Y: mid - dir*level(v)*mid}
	}
	s.StrokePath(pts, false, pen(lime, lineWidth(g, 0.01)))
}

func drawGradientWave(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	pts := make([]surface.Point, n)
	for i, v := range snap {
		pts[i] = surface.Point{X: spanX(i, n, g.Width), Y: g.Height - level(v)*g.Height}
	}
	paint := surface.Linear(surface.Point{}, surface.Point{X: g.Width}, cyan, magenta)
	s.StrokePath(pts, false, surface.Pen{Paint: paint, Width: lineWidth(g, 0.015)})
}

// drawGrid lights alternate cells of a fixed checkerboard. Each lit cell reads
// the bin at its proportional position, so cost does not grow with the
// snapshot length.
func drawGrid(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	const cells = gridCols * gridRows
	cw := g.Width / gridCols
	ch := g.Height / gridRows
	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			if (row+col)%2 == 1 {
				continue
			}
			k := row*gridCols + col
			idx := int(math.Round(float64(k) * float64(n-1) / float64(cells-1)))
			a := level(snap[idx])
			s.FillRect(surface.Rect{X: float64(col) * cw, Y: float64(row) * ch, W: cw, H: ch},
				surface.Solid(surface.HSV(0.55, 0.6, a)))
		}
	}
}

// drawKaleidoscope mirrors the bars into the four quadrants around the
// centre, lowest bins innermost.
func drawKaleidoscope(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	c := g.Center()
	bw := c.X / float64(n)
	for i, v := range snap {
		h := level(v) * c.Y
		paint := surface.Solid(hueAt(i, n))
		right := c.X + float64(i)*bw
		left := c.X - float64(i+1)*bw
		s.FillRect(surface.Rect{X: right, Y: c.Y - h, W: bw, H: h}, paint)
		s.FillRect(surface.Rect{X: left, Y: c.Y - h, W: bw, H: h}, paint)
		s.FillRect(surface.Rect{X: right, Y: c.Y, W: bw, H: h}, paint)
		s.FillRect(surface.Rect{X: left, Y: c.Y, W: bw, H: h}, paint)
	}
}

// drawSineWave modulates a two-period sine carrier by the bin amplitudes.
func drawSineWave(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	mid := g.Height / 2
	pts := make([]surface.Point, n)
	for i, v := range snap {
		phase := float64(i) / float64(n) * 4 * math.Pi
		pts[i] = surface.Point{X: spanX(i, n, g.Width), Y: mid + math.Sin(phase)*level(v)*mid}
	}
	s.StrokePath(pts, false, pen(amber, lineWidth(g, 0.01)))
}

// drawWaterfall stacks translucent area layers back to front; each layer is a
// shorter copy of the spectrum so overlaps add up where the signal is loud.
func drawWaterfall(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	n := len(snap)
	if n == 0 {
		return
	}
	for k := 0; k < waterfallLayer; k++ {
		scale := 1 - float64(k)/waterfallLayer
		reach := g.Height - float64(k)*g.Height/16
		pts := make([]surface.Point, 0, n+2)
		pts = append(pts, surface.Point{X: 0, Y: g.Height})
		for i, v := range snap {
			pts = append(pts, surface.Point{X: spanX(i, n, g.Width), Y: g.Height - level(v)*scale*reach})
		}
		pts = append(pts, surface.Point{X: g.Width, Y: g.Height})
		col := surface.HSV(0.5+float64(k)/(2*waterfallLayer), 0.8, 1)
		s.FillPath(pts, surface.Solid(surface.WithAlpha(col, 0.3)))
	}
}
