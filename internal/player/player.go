// Package player decodes local audio files and plays them through oto. Every
// PCM chunk handed to the device can also be copied to a tap for analysis.
package player

import (
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Options configures a new Player.
type Options struct {
	// Volume is the initial volume in 0..1.
	Volume float64
	// Tap receives a copy of every 16-bit stereo PCM chunk sent to the
	// device. It may be nil. If it has a Clear method, seeks call it.
	Tap io.Writer
}

type clearer interface {
	Clear()
}

// countingReader wraps the decoder, tracks bytes read and feeds the tap.
type countingReader struct {
	reader io.Reader
	tap    io.Writer
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	if n > 0 && cr.tap != nil {
		cr.tap.Write(p[:n])
	}
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

// Player manages playback of a single track.
type Player struct {
	decoder     audioDecoder
	counter     *countingReader
	otoCtx      *oto.Context
	otoPlayer   *oto.Player
	tap         io.Writer
	bytesPerSec int64
	total       int64
	duration    time.Duration
	volume      float64
	paused      bool
	done        chan struct{}
	stopMon     chan struct{}
	cleanup     func()
	mu          sync.Mutex
	closed      bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens path and starts playing it.
func New(path string, opts Options) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	out := newConverter(dec)

	ctx, err := initOto()
	if err != nil {
		f.Close()
		return nil, err
	}

	p := &Player{
		decoder:     out,
		counter:     &countingReader{reader: out, tap: opts.Tap},
		otoCtx:      ctx,
		tap:         opts.Tap,
		bytesPerSec: bytesPerSec,
		total:       out.Length(),
		volume:      clampVolume(opts.Volume),
		done:        make(chan struct{}),
		stopMon:     make(chan struct{}),
		cleanup:     func() { f.Close() },
	}
	p.duration = time.Duration(float64(p.total) / float64(p.bytesPerSec) * float64(time.Second))
	log.Printf("player: %s rate=%d channels=%d duration=%s", path, dec.SampleRate(), dec.ChannelCount(), p.duration)

	p.otoPlayer = ctx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()

	go p.monitor(p.stopMon, p.done)

	return p, nil
}

// monitor closes done once the decoder has been read to the end.
func (p *Player) monitor(stop <-chan struct{}, done chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		p.mu.Lock()
		finished := !p.paused && p.counter.Pos() >= p.total
		p.mu.Unlock()
		if finished {
			close(done)
			return
		}
	}
}

// Done returns a channel that closes when playback finishes.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Restart seeks to the beginning and resumes playback.
// This resets the done channel so Done() can be used again.
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	close(p.stopMon)
	if err := p.seekLocked(0); err != nil {
		log.Printf("player: restart: %v", err)
	}
	p.paused = false
	p.resetOutputLocked()

	p.done = make(chan struct{})
	p.stopMon = make(chan struct{})
	go p.monitor(p.stopMon, p.done)
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		p.paused = false
		if p.otoPlayer != nil {
			p.otoPlayer.Play()
		}
	} else {
		p.pauseLocked()
	}
}

// Pause pauses playback; it is a no-op when already paused.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauseLocked()
}

func (p *Player) pauseLocked() {
	p.paused = true
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	if p.bytesPerSec == 0 {
		return 0
	}
	secs := float64(p.counter.Pos()) / float64(p.bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Seek moves playback by delta from the current position.
func (p *Player) Seek(delta time.Duration) {
	if err := p.SeekTo(p.Position()+delta, true); err != nil {
		log.Printf("player: seek: %v", err)
	}
}

// SeekTo moves playback to pos. With resume false the player is left paused.
// The tap is cleared so analysis does not mix audio from before the jump.
func (p *Player) SeekTo(pos time.Duration, resume bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	offset := clampSeekByteOffset(pos, p.bytesPerSec, p.decoder.Length(), outputFrameSize)
	if err := p.seekLocked(offset); err != nil {
		return err
	}
	if !resume {
		p.paused = true
	}
	p.resetOutputLocked()
	return nil
}

func (p *Player) seekLocked(offset int64) error {
	if _, err := p.decoder.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	p.counter.SetPos(offset)
	if c, ok := p.tap.(clearer); ok {
		c.Clear()
	}
	return nil
}

// resetOutputLocked recreates the oto player to flush its buffer.
func (p *Player) resetOutputLocked() {
	if p.otoCtx == nil {
		return
	}
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	if !p.paused {
		p.otoPlayer.Play()
	}
}

// clampSeekByteOffset converts pos to a byte offset within [0, total],
// aligned down to a whole sample frame.
func clampSeekByteOffset(pos time.Duration, bytesPerSec, total, frameSize int64) int64 {
	offset := int64(pos.Seconds() * float64(bytesPerSec))
	offset = max(0, min(offset, total))
	return offset - offset%frameSize
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = clampVolume(v)
	if p.otoPlayer != nil {
		p.otoPlayer.SetVolume(p.volume)
	}
}

// AdjustVolume adjusts volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	v := p.volume + delta
	p.mu.Unlock()
	p.SetVolume(v)
}

func clampVolume(v float64) float64 {
	return max(0, min(v, 1))
}

// Close stops playback and releases the file. It is safe to call twice.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.stopMon != nil {
		close(p.stopMon)
	}
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
	if p.cleanup != nil {
		p.cleanup()
	}
}
