package screen

import (
	"image"
	"image/color"
)

// brailleThreshold is the luminance above which a dot is raised. Frames are
// cleared to a near-black background, so anything drawn clears it.
const brailleThreshold = 40

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// renderBraille packs a 2x4 dot grid into every cell. The cell takes the
// average colour of its raised dots.
func (r *Renderer) renderBraille(img *image.RGBA, cols, rows int) {
	dotCols, dotRows := cols*2, rows*4
	var last string
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var pattern uint
			var sr, sg, sb, lit int
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					c := blockAverage(img, col*2+dx, row*4+dy, dotCols, dotRows)
					if luminance(c) <= brailleThreshold {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					sr += int(c.R)
					sg += int(c.G)
					sb += int(c.B)
					lit++
				}
			}
			if lit > 0 && r.Color() {
				avg := color.RGBA{R: uint8(sr / lit), G: uint8(sg / lit), B: uint8(sb / lit), A: 255}
				if fg := r.seqs.seq(avg, false); fg != last {
					r.sb.WriteString(fg)
					last = fg
				}
			}
			r.sb.WriteRune(rune(0x2800 + pattern))
		}
		if r.Color() {
			r.sb.WriteString(ansiReset)
			last = ""
		}
		if row < rows-1 {
			r.sb.WriteByte('\n')
		}
	}
}
