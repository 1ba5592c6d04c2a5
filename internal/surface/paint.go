package surface

import (
	"image/color"
	"math"
)

// Gradient is a linear two-stop gradient along the From→To axis.
type Gradient struct {
	From  Point
	To    Point
	Start color.NRGBA
	End   color.NRGBA
}

// Paint is either a flat colour or, when Gradient is set, a linear gradient.
type Paint struct {
	Color    color.NRGBA
	Gradient *Gradient
}

// Solid returns a flat paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c}
}

// Linear returns a two-stop gradient paint. Color holds the start stop so
// backends without gradient support still get a sensible colour.
func Linear(from, to Point, start, end color.NRGBA) Paint {
	return Paint{
		Color:    start,
		Gradient: &Gradient{From: from, To: to, Start: start, End: end},
	}
}

// At returns the colour of the paint at p.
func (p Paint) At(pt Point) color.NRGBA {
	g := p.Gradient
	if g == nil {
		return p.Color
	}
	dx := g.To.X - g.From.X
	dy := g.To.Y - g.From.Y
	den := dx*dx + dy*dy
	if den == 0 {
		return g.Start
	}
	t := ((pt.X-g.From.X)*dx + (pt.Y-g.From.Y)*dy) / den
	return Lerp(g.Start, g.End, t)
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(clamp01(a) * 255)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp blends a toward b, t clamped to [0,1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// HSV converts hue (turns, wrapped), saturation and value to an opaque colour.
func HSV(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	s = clamp01(s)
	v = clamp01(v)

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return color.NRGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
