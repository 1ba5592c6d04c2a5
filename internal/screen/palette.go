package screen

import (
	"image/color"
	"sync"

	"github.com/muesli/termenv"
)

// ASCII brightness ramp from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

const ansiReset = "\x1b[0m"

// seqCacheLimit bounds the escape cache; spectra produce many distinct
// colours, so the cache is dropped rather than grown without end.
const seqCacheLimit = 4096

var (
	detectOnce sync.Once
	termColor  termenv.Profile
)

// detectProfile reads the terminal colour profile once per process.
// NO_COLOR and CLICOLOR_FORCE are honoured.
func detectProfile() termenv.Profile {
	detectOnce.Do(func() {
		termColor = termenv.EnvColorProfile()
	})
	return termColor
}

// brightnessChar maps a 0-255 luminance to an ASCII character.
func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(c color.RGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}

// seqCache memoises the escape sequence for each colour and layer.
type seqCache struct {
	profile termenv.Profile
	fg, bg  map[uint32]string
}

func newSeqCache(p termenv.Profile) *seqCache {
	return &seqCache{profile: p, fg: make(map[uint32]string), bg: make(map[uint32]string)}
}

func (c *seqCache) seq(col color.RGBA, background bool) string {
	m := c.fg
	if background {
		m = c.bg
	}
	key := uint32(col.R)<<16 | uint32(col.G)<<8 | uint32(col.B)
	if s, ok := m[key]; ok {
		return s
	}
	if len(m) >= seqCacheLimit {
		clear(m)
	}
	s := ""
	col.A = 255
	if params := c.profile.FromColor(col).Sequence(background); params != "" {
		s = termenv.CSI + params + "m"
	}
	m[key] = s
	return s
}
