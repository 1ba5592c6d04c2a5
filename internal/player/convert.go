package player

import (
	"encoding/binary"
	"io"
)

const (
	outputRate      = 44100
	outputChannels  = 2
	outputFrameSize = outputChannels * 2
	bytesPerSec     = outputRate * outputFrameSize

	convertChunkFrames = 4096
)

// converter adapts a decoder to the device format: 44.1 kHz, 16-bit stereo.
// Mono is duplicated to both sides; extra channels beyond the first two are
// dropped. Rate changes use linear interpolation.
type converter struct {
	src   audioDecoder
	srcCh int
	step  float64 // source frames per output frame

	chunk []byte
	off   int

	cur, next [2]float64
	phase     float64
	primed    bool
	drained   bool

	pos   int64
	total int64
}

// newConverter returns src unchanged when it already matches the device format.
func newConverter(src audioDecoder) audioDecoder {
	if src.SampleRate() == outputRate && src.ChannelCount() == outputChannels {
		return src
	}
	srcCh := max(src.ChannelCount(), 1)
	step := float64(src.SampleRate()) / outputRate
	srcFrames := src.Length() / int64(srcCh*2)
	return &converter{
		src:   src,
		srcCh: srcCh,
		step:  step,
		total: int64(float64(srcFrames)/step) * outputFrameSize,
	}
}

func (c *converter) readFrame() ([2]float64, bool) {
	size := c.srcCh * 2
	if c.chunk == nil {
		c.chunk = make([]byte, 0, convertChunkFrames*size)
	}
	for len(c.chunk)-c.off < size {
		rest := copy(c.chunk[:cap(c.chunk)], c.chunk[c.off:])
		n, err := c.src.Read(c.chunk[rest:cap(c.chunk)])
		c.chunk = c.chunk[:rest+n]
		c.off = 0
		if n == 0 && err != nil {
			return [2]float64{}, false
		}
	}

	b := c.chunk[c.off : c.off+size]
	c.off += size
	left := float64(int16(binary.LittleEndian.Uint16(b)))
	right := left
	if c.srcCh > 1 {
		right = float64(int16(binary.LittleEndian.Uint16(b[2:])))
	}
	return [2]float64{left, right}, true
}

func (c *converter) Read(p []byte) (int, error) {
	if len(p) < outputFrameSize {
		return 0, nil
	}
	if !c.primed {
		f, ok := c.readFrame()
		if !ok {
			return 0, io.EOF
		}
		c.cur, c.next = f, f
		if f, ok = c.readFrame(); ok {
			c.next = f
		} else {
			c.drained = true
		}
		c.primed = true
	}

	n := 0
	for n+outputFrameSize <= len(p) {
		for c.phase >= 1 {
			if c.drained {
				c.pos += int64(n)
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			c.cur = c.next
			if f, ok := c.readFrame(); ok {
				c.next = f
			} else {
				c.drained = true
			}
			c.phase--
		}
		for ch := range outputChannels {
			v := c.cur[ch] + (c.next[ch]-c.cur[ch])*c.phase
			putSample(p[n+ch*2:], int(v))
		}
		n += outputFrameSize
		c.phase += c.step
	}
	c.pos += int64(n)
	return n, nil
}

func (c *converter) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = c.pos + offset
	case io.SeekEnd:
		pos = c.total + offset
	}
	pos = max(0, min(pos, c.total))
	pos -= pos % outputFrameSize

	exact := float64(pos/outputFrameSize) * c.step
	srcFrame := int64(exact)
	if _, err := c.src.Seek(srcFrame*int64(c.srcCh*2), io.SeekStart); err != nil {
		return c.pos, err
	}
	c.chunk = c.chunk[:0]
	c.off = 0
	c.primed = false
	c.drained = false
	c.phase = exact - float64(srcFrame)
	c.pos = pos
	return pos, nil
}

func (c *converter) Length() int64     { return c.total }
func (c *converter) SampleRate() int   { return outputRate }
func (c *converter) ChannelCount() int { return outputChannels }
