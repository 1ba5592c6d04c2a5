package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/olivier-w/climpviz/internal/config"
	"github.com/olivier-w/climpviz/internal/frame"
	"github.com/olivier-w/climpviz/internal/player"
	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

// exportLeadIn is how much audio is analysed before the export instant so
// smoothing settles the way it does during playback.
const exportLeadIn = time.Second

var errUsage = errors.New("usage: climpviz export [-style name] [-at seconds] [-size WxH] <audio> <out.png|out.svg>")

type exportOptions struct {
	style  string
	at     time.Duration
	width  int
	height int
	input  string
	output string
}

func parseExportArgs(args []string, cfg config.Config) (exportOptions, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	style := fs.String("style", cfg.Style, "visualization style")
	at := fs.Float64("at", 30, "position in seconds")
	size := fs.String("size", "1280x720", "image size in pixels")
	if err := fs.Parse(args); err != nil {
		return exportOptions{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 2 {
		return exportOptions{}, errUsage
	}

	opts := exportOptions{
		style:  *style,
		at:     time.Duration(max(*at, 0) * float64(time.Second)),
		input:  fs.Arg(0),
		output: fs.Arg(1),
	}
	if _, err := fmt.Sscanf(*size, "%dx%d", &opts.width, &opts.height); err != nil || opts.width <= 0 || opts.height <= 0 {
		return exportOptions{}, fmt.Errorf("invalid size %q", *size)
	}
	switch strings.ToLower(filepath.Ext(opts.output)) {
	case ".png", ".svg":
	default:
		return exportOptions{}, fmt.Errorf("output must be .png or .svg, got %s", opts.output)
	}
	return opts, nil
}

// runExport renders one frame of the track at the requested position to an
// image file.
func runExport(args []string, cfg config.Config) error {
	opts, err := parseExportArgs(args, cfg)
	if err != nil {
		return err
	}

	ctrl, err := frame.New(visualizer.Default(), opts.style)
	if err != nil {
		return err
	}

	dec, err := player.OpenDecoder(opts.input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", opts.input, err)
	}
	defer dec.Close()

	tap := spectrum.NewTap(max(cfg.FFTSize, 1), dec.ChannelCount())
	sampler, err := spectrum.New(tap, cfg.SamplerOptions())
	if err != nil {
		return err
	}
	ctrl.Attach(sampler)
	ctrl.Start()

	frameSize := int64(dec.ChannelCount() * 2)
	bytesPerSec := int64(dec.SampleRate()) * frameSize
	total := dec.Length()
	at := min(int64(opts.at.Seconds()*float64(bytesPerSec)), total)
	start := max(at-int64(exportLeadIn.Seconds()*float64(bytesPerSec)), 0)
	start -= start % frameSize
	if _, err := dec.Seek(start, io.SeekStart); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}

	step := max(bytesPerSec/int64(cfg.FPS), frameSize)
	step -= step % frameSize
	buf := make([]byte, step)
	for pos := start; ; pos += step {
		n, err := io.ReadFull(dec, buf)
		tap.Write(buf[:n])
		if pos+step >= at || err != nil {
			break
		}
		sampler.Sample()
	}

	g := surface.Geometry{Width: float64(opts.width), Height: float64(opts.height)}
	if strings.EqualFold(filepath.Ext(opts.output), ".svg") {
		svg := surface.NewSVG(g)
		if err := ctrl.Frame(svg, g); err != nil {
			return err
		}
		err = svg.SaveSVG(opts.output)
	} else {
		r := surface.NewRaster(opts.width, opts.height)
		if err := ctrl.Frame(r, g); err != nil {
			return err
		}
		err = r.SavePNG(opts.output)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	log.Printf("export: %s at %s as %s -> %s", opts.input, opts.at, opts.style, opts.output)
	return nil
}
