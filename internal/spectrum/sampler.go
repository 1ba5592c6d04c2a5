// Package spectrum turns the playing signal into fixed-length frequency
// snapshots, one unsigned byte per frequency bin.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// ErrInvalidOptions is returned by New for an unusable analysis setup.
var ErrInvalidOptions = errors.New("invalid sampler options")

// Snapshot is one frame of frequency magnitudes, one byte per bin.
type Snapshot []byte

// Mean returns the average magnitude scaled to 0..1.
func (s Snapshot) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0
	for _, v := range s {
		sum += int(v)
	}
	return float64(sum) / float64(len(s)) / 255
}

// Source supplies the most recent mono samples and a sequence number that
// changes whenever new audio has been written.
type Source interface {
	Samples(n int) ([]float64, uint64)
}

// Options fixes the analysis window and smoothing at construction time.
type Options struct {
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64
}

// DefaultOptions returns the standard analysis setup.
func DefaultOptions() Options {
	return Options{
		FFTSize:     DefaultFFTSize,
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}
}

func (o Options) validate() error {
	if o.FFTSize < minFFTSize || o.FFTSize > maxFFTSize || o.FFTSize&(o.FFTSize-1) != 0 {
		return fmt.Errorf("%w: fft size %d must be a power of two in [%d, %d]", ErrInvalidOptions, o.FFTSize, minFFTSize, maxFFTSize)
	}
	if o.Smoothing < 0 || o.Smoothing >= 1 {
		return fmt.Errorf("%w: smoothing %v must be in [0, 1)", ErrInvalidOptions, o.Smoothing)
	}
	if o.MinDecibels >= o.MaxDecibels {
		return fmt.Errorf("%w: decibel range [%v, %v] is empty", ErrInvalidOptions, o.MinDecibels, o.MaxDecibels)
	}
	return nil
}

// Sampler runs a windowed FFT over the tap and smooths each bin over time.
// It is not safe for concurrent use; the render loop owns it.
type Sampler struct {
	src     Source
	opts    Options
	window  []float64
	frame   []float64
	smooth  []float64
	lastSeq uint64
	primed  bool
}

// New returns a sampler reading from src.
func New(src Source, opts Options) (*Sampler, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Sampler{
		src:    src,
		opts:   opts,
		window: window.Hann(opts.FFTSize),
		frame:  make([]float64, opts.FFTSize),
		smooth: make([]float64, opts.FFTSize/2),
	}, nil
}

// BinCount returns the fixed snapshot length.
func (s *Sampler) BinCount() int {
	return len(s.smooth)
}

// Reset forgets the smoothing history.
func (s *Sampler) Reset() {
	clear(s.smooth)
	s.primed = false
}

// Sample returns the current snapshot. When no new audio has arrived since
// the previous call, the bins decay toward silence instead. Before any audio
// at all it returns zeros.
func (s *Sampler) Sample() Snapshot {
	samples, seq := s.src.Samples(s.opts.FFTSize)
	if seq != s.lastSeq && len(samples) > 0 {
		s.analyze(samples)
		s.primed = true
	} else {
		for k := range s.smooth {
			s.smooth[k] *= s.opts.Smoothing
		}
	}
	s.lastSeq = seq

	out := make(Snapshot, len(s.smooth))
	if !s.primed {
		return out
	}
	span := s.opts.MaxDecibels - s.opts.MinDecibels
	for k, v := range s.smooth {
		if v <= 0 {
			continue
		}
		db := 20 * math.Log10(v)
		scaled := 255 * (db - s.opts.MinDecibels) / span
		switch {
		case scaled <= 0:
			out[k] = 0
		case scaled >= 255:
			out[k] = 255
		default:
			out[k] = byte(scaled)
		}
	}
	return out
}

func (s *Sampler) analyze(samples []float64) {
	n := s.opts.FFTSize
	// Short input is right-aligned so the newest sample stays last.
	pad := n - len(samples)
	clear(s.frame[:pad])
	for i, v := range samples {
		s.frame[pad+i] = v * s.window[pad+i]
	}

	out := fft.FFTReal(s.frame)
	a := s.opts.Smoothing
	for k := range s.smooth {
		mag := cmplx.Abs(out[k]) / float64(n)
		s.smooth[k] = a*s.smooth[k] + (1-a)*mag
	}
}
