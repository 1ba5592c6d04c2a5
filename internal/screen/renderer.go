// Package screen turns a rendered raster into text a terminal can draw.
package screen

import (
	"image"
	"image/color"
	"strings"

	"github.com/muesli/termenv"
)

// Mode selects how pixels map onto terminal cells.
type Mode uint8

const (
	// ModeBlocks packs two pixel rows per cell with "▀", or falls back to
	// an ASCII brightness ramp without colour.
	ModeBlocks Mode = iota
	// ModeBraille raises the dots of a 2x4 braille grid per cell.
	ModeBraille
)

func (m Mode) String() string {
	if m == ModeBraille {
		return "braille"
	}
	return "blocks"
}

// ParseMode maps a mode name to a Mode. Unknown names give ModeBlocks.
func ParseMode(name string) Mode {
	if strings.EqualFold(name, "braille") {
		return ModeBraille
	}
	return ModeBlocks
}

// Renderer converts an RGBA image into a terminal string.
// It supports three outputs:
//   - Color (half-block): uses "▀" with fg/bg colors to pack 2 pixel rows per terminal row.
//   - ASCII (no color): maps each cell to a brightness character.
//   - Braille: one dot per pixel block, coloured when the terminal allows.
type Renderer struct {
	profile termenv.Profile
	mode    Mode
	seqs    *seqCache
	sb      strings.Builder
}

// NewRenderer creates a renderer using the current terminal's color capabilities.
func NewRenderer() *Renderer {
	return NewRendererWithProfile(detectProfile())
}

// NewRendererWithProfile creates a renderer for an explicit colour profile.
func NewRendererWithProfile(p termenv.Profile) *Renderer {
	return &Renderer{profile: p, seqs: newSeqCache(p)}
}

// Color reports whether the renderer emits colour escapes.
func (r *Renderer) Color() bool {
	return r.profile != termenv.Ascii
}

// Mode returns the active output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// SetMode switches the output mode for the next Render.
func (r *Renderer) SetMode(m Mode) {
	r.mode = m
}

// Profile returns the colour profile in use.
func (r *Renderer) Profile() termenv.Profile {
	return r.profile
}

// PixelSize returns raster dimensions for a cols x rows cell area at scale
// pixels per cell column. Cells are about twice as tall as wide, so each
// row gets two scaled pixel rows in either mode.
func PixelSize(cols, rows, scale int) (w, h int) {
	if cols <= 0 || rows <= 0 || scale <= 0 {
		return 0, 0
	}
	return cols * scale, rows * 2 * scale
}

// Render converts img into cols x rows terminal cells. Each cell averages
// the block of source pixels it covers.
func (r *Renderer) Render(img *image.RGBA, cols, rows int) string {
	if img == nil || img.Bounds().Empty() || cols <= 0 || rows <= 0 {
		return ""
	}

	r.sb.Reset()
	r.sb.Grow(cols * rows * 24)

	switch {
	case r.mode == ModeBraille:
		r.renderBraille(img, cols, rows)
	case r.Color():
		r.renderHalfBlock(img, cols, rows)
	default:
		r.renderASCII(img, cols, rows)
	}
	return r.sb.String()
}

// renderHalfBlock uses "▀" (upper half block) with fg = top pixel, bg = bottom pixel.
func (r *Renderer) renderHalfBlock(img *image.RGBA, cols, rows int) {
	var lastFg, lastBg string
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := blockAverage(img, col, row*2, cols, rows*2)
			bot := blockAverage(img, col, row*2+1, cols, rows*2)

			if fg := r.seqs.seq(top, false); fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bg := r.seqs.seq(bot, true); bg != lastBg {
				r.sb.WriteString(bg)
				lastBg = bg
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		lastFg, lastBg = "", ""
		if row < rows-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(img *image.RGBA, cols, rows int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r.sb.WriteByte(brightnessChar(luminance(blockAverage(img, col, row, cols, rows))))
		}
		if row < rows-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// blockAverage averages the source pixels under output pixel (x, y) of an
// outW x outH grid laid over img.
func blockAverage(img *image.RGBA, x, y, outW, outH int) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	x0, x1 := x*w/outW, (x+1)*w/outW
	y0, y1 := y*h/outH, (y+1)*h/outH
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	var sr, sg, sb, n int
	for py := y0; py < y1 && py < h; py++ {
		off := img.PixOffset(b.Min.X+x0, b.Min.Y+py)
		for px := x0; px < x1 && px < w; px++ {
			sr += int(img.Pix[off])
			sg += int(img.Pix[off+1])
			sb += int(img.Pix[off+2])
			off += 4
			n++
		}
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
}
