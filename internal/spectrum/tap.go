package spectrum

import (
	"encoding/binary"
	"sync"
)

// Tap is a thread-safe mono ring buffer fed from the playback pipeline. It
// implements io.Writer over interleaved signed 16-bit little-endian PCM.
type Tap struct {
	mu       sync.Mutex
	buf      []float64
	size     int
	w        int // write position
	len      int // current fill level
	seq      uint64
	channels int
	partial  []byte // bytes of an incomplete frame carried between writes
}

// NewTap creates a tap holding the most recent size mono samples.
func NewTap(size, channels int) *Tap {
	if channels < 1 {
		channels = 1
	}
	return &Tap{
		buf:      make([]float64, size),
		size:     size,
		channels: channels,
	}
}

// SetChannels changes the interleaving of subsequent writes and drops any
// buffered partial frame.
func (t *Tap) SetChannels(n int) {
	if n < 1 {
		n = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.channels = n
	t.partial = t.partial[:0]
}

// Write mixes PCM frames down to mono and appends them. It never fails.
func (t *Tap) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	frameBytes := 2 * t.channels
	data := p
	if len(t.partial) > 0 {
		data = append(t.partial, p...)
	}
	frames := len(data) / frameBytes
	for f := 0; f < frames; f++ {
		off := f * frameBytes
		var sum float64
		for c := 0; c < t.channels; c++ {
			sum += float64(int16(binary.LittleEndian.Uint16(data[off+2*c:])))
		}
		t.push(sum / float64(t.channels) / 32768.0)
	}
	t.partial = append(t.partial[:0], data[frames*frameBytes:]...)
	if frames > 0 {
		t.seq++
	}
	return len(p), nil
}

// Push appends mono samples in [-1,1].
func (t *Tap) Push(samples ...float64) {
	if len(samples) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples {
		t.push(s)
	}
	t.seq++
}

func (t *Tap) push(s float64) {
	t.buf[t.w] = s
	t.w = (t.w + 1) % t.size
	if t.len < t.size {
		t.len++
	}
}

// Samples returns up to n most recent samples in chronological order, and the
// write sequence they belong to. The sequence changes whenever new audio
// arrives.
func (t *Tap) Samples(n int) ([]float64, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n > t.len {
		n = t.len
	}
	if n <= 0 {
		return nil, t.seq
	}

	out := make([]float64, n)
	start := (t.w - n + t.size) % t.size
	for i := 0; i < n; i++ {
		out[i] = t.buf[(start+i)%t.size]
	}
	return out, t.seq
}

// Clear drops buffered audio, e.g. after a seek or track change.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.len = 0
	t.partial = t.partial[:0]
	t.seq++
}
