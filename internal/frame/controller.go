// Package frame owns the per-frame state of the render loop: the attached
// sampler, the selected visualization and the running flag.
package frame

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

var (
	// ErrNoActiveSampler means a frame was requested before playback attached
	// a sampler.
	ErrNoActiveSampler = errors.New("no active sampler")
	// ErrStopped means a frame was requested while the loop is stopped.
	ErrStopped = errors.New("render loop stopped")
	// ErrRenderFailed wraps a renderer that panicked mid-frame.
	ErrRenderFailed = errors.New("render failed")
)

// Background is the colour the host clears each frame to.
var Background = color.NRGBA{R: 8, G: 10, B: 16, A: 255}

// Sampler supplies one snapshot per frame.
type Sampler interface {
	Sample() spectrum.Snapshot
}

// Canvas is a surface the host can clear before the renderer draws.
type Canvas interface {
	surface.Surface
	Clear(bg color.Color)
}

// Controller sequences sampling and rendering on the caller's goroutine. It
// is not safe for concurrent use.
type Controller struct {
	registry *visualizer.Registry
	sampler  Sampler
	selected string
	running  bool
	last     spectrum.Snapshot
}

// New returns a stopped controller with initial selected. The name is
// validated like any later selection.
func New(registry *visualizer.Registry, initial string) (*Controller, error) {
	c := &Controller{registry: registry}
	if err := c.Select(initial); err != nil {
		return nil, err
	}
	return c, nil
}

// Select changes the active visualization. Unknown names are rejected and
// leave the current selection untouched.
func (c *Controller) Select(name string) error {
	if _, err := c.registry.Get(name); err != nil {
		return err
	}
	c.selected = name
	return nil
}

// Selected returns the active visualization name.
func (c *Controller) Selected() string {
	return c.selected
}

// Cycle moves the selection by delta positions through the registry listing,
// wrapping at either end, and returns the new name.
func (c *Controller) Cycle(delta int) string {
	names := c.registry.List()
	if len(names) == 0 {
		return c.selected
	}
	idx := 0
	for i, n := range names {
		if n == c.selected {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(names) + len(names)) % len(names)
	c.selected = names[idx]
	return c.selected
}

// Attach installs the sampler of a newly started track.
func (c *Controller) Attach(s Sampler) {
	c.sampler = s
}

// Detach drops the sampler, e.g. while switching tracks.
func (c *Controller) Detach() {
	c.sampler = nil
	c.last = nil
}

// Start resumes frame production.
func (c *Controller) Start() { c.running = true }

// Stop halts frame production; Frame returns ErrStopped until Start.
func (c *Controller) Stop() { c.running = false }

// Running reports whether frames are being produced.
func (c *Controller) Running() bool { return c.running }

// Last returns the snapshot of the most recent rendered frame.
func (c *Controller) Last() spectrum.Snapshot {
	return c.last
}

// Frame samples once, clears cv and renders the selected visualization with
// geometry g. On error nothing is drawn and the caller keeps its previous
// frame.
func (c *Controller) Frame(cv Canvas, g surface.Geometry) (err error) {
	if !c.running {
		return ErrStopped
	}
	if c.sampler == nil {
		return ErrNoActiveSampler
	}
	rd, err := c.registry.Get(c.selected)
	if err != nil {
		return err
	}

	snap := c.sampler.Sample()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrRenderFailed, c.selected, r)
		}
	}()
	cv.Clear(Background)
	rd.Render(cv, snap, g)
	c.last = snap
	return nil
}
