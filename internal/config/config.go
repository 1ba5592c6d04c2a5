// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/olivier-w/climpviz/internal/spectrum"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	// Visualization
	Style string // initial style name
	FPS   int    // frame ticks per second
	Scale int    // raster pixels per terminal column
	Cells string // terminal cell encoding: blocks or braille

	// Analysis
	FFTSize     int
	Smoothing   float64
	MinDecibels float64
	MaxDecibels float64

	// Playback
	Volume float64

	// Debug log file; empty disables logging
	LogPath string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Style: envStr("CLIMPVIZ_STYLE", "bars"),
		FPS:   clampInt(envInt("CLIMPVIZ_FPS", 30), 1, 120),
		Scale: clampInt(envInt("CLIMPVIZ_SCALE", 4), 1, 16),
		Cells: envStr("CLIMPVIZ_CELLS", "blocks"),

		FFTSize:     envInt("CLIMPVIZ_FFT_SIZE", spectrum.DefaultFFTSize),
		Smoothing:   envFloat("CLIMPVIZ_SMOOTHING", spectrum.DefaultSmoothing),
		MinDecibels: envFloat("CLIMPVIZ_MIN_DB", spectrum.DefaultMinDecibels),
		MaxDecibels: envFloat("CLIMPVIZ_MAX_DB", spectrum.DefaultMaxDecibels),

		Volume: envFloat("CLIMPVIZ_VOLUME", 0.8),

		LogPath: envStr("CLIMPVIZ_LOG", ""),
	}
}

// FrameInterval is the time between two frame ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// SamplerOptions returns the analysis settings for spectrum.New.
func (c Config) SamplerOptions() spectrum.Options {
	return spectrum.Options{
		FFTSize:     c.FFTSize,
		Smoothing:   c.Smoothing,
		MinDecibels: c.MinDecibels,
		MaxDecibels: c.MaxDecibels,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
