package visualizer

import (
	"image/color"
	"math"

	"github.com/olivier-w/climpviz/internal/surface"
)

var (
	cyan    = surface.RGB(0, 210, 255)
	magenta = surface.RGB(255, 64, 200)
	amber   = surface.RGB(255, 176, 32)
	lime    = surface.RGB(120, 255, 90)
	violet  = surface.RGB(140, 90, 255)
)

// level maps a bin value to 0..1.
func level(v byte) float64 {
	return float64(v) / 255
}

// hueAt spreads one full hue rotation across n bins.
func hueAt(i, n int) color.NRGBA {
	return surface.HSV(float64(i)/float64(n), 0.75, 0.95)
}

// angleAt places bin i of n uniformly around the circle, starting at 12 o'clock.
func angleAt(i, n int, turns float64) float64 {
	return float64(i)/float64(n)*2*math.Pi*turns - math.Pi/2
}

// spanX spreads n points across the full width, first at 0 and last at w.
func spanX(i, n int, w float64) float64 {
	if n < 2 {
		return w / 2
	}
	return float64(i) * w / float64(n-1)
}

// lineWidth scales a stroke with the surface, never thinner than one unit.
func lineWidth(g surface.Geometry, frac float64) float64 {
	return math.Max(1, g.Min()*frac)
}

func pen(c color.NRGBA, width float64) surface.Pen {
	return surface.Pen{Paint: surface.Solid(c), Width: width}
}
