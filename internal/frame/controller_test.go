package frame

import (
	"errors"
	"testing"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

type stubSampler struct {
	snap  spectrum.Snapshot
	calls int
}

func (s *stubSampler) Sample() spectrum.Snapshot {
	s.calls++
	return s.snap
}

var geom = surface.Geometry{Width: 256, Height: 100}

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(visualizer.Default(), "bars")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return c
}

func TestNewRejectsUnknownInitialStyle(t *testing.T) {
	if _, err := New(visualizer.Default(), "nope"); !errors.Is(err, visualizer.ErrUnknownVisualization) {
		t.Fatalf("expected ErrUnknownVisualization, got %v", err)
	}
}

func TestSelectRejectsUnknownAndKeepsCurrent(t *testing.T) {
	c := newController(t)
	if err := c.Select("doesNotExist"); !errors.Is(err, visualizer.ErrUnknownVisualization) {
		t.Fatalf("expected ErrUnknownVisualization, got %v", err)
	}
	if c.Selected() != "bars" {
		t.Fatalf("expected selection to stay bars, got %q", c.Selected())
	}
	if err := c.Select("arc"); err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if c.Selected() != "arc" {
		t.Fatalf("expected arc, got %q", c.Selected())
	}
}

func TestFrameWhileStoppedIsSkipped(t *testing.T) {
	c := newController(t)
	s := &stubSampler{snap: spectrum.Snapshot{10}}
	c.Attach(s)
	rec := surface.NewRecorder()

	if err := c.Frame(rec, geom); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if s.calls != 0 || len(rec.Ops) != 0 {
		t.Fatal("expected no sampling or drawing while stopped")
	}
}

func TestFrameWithoutSamplerIsSkipped(t *testing.T) {
	c := newController(t)
	c.Start()
	rec := surface.NewRecorder()

	if err := c.Frame(rec, geom); !errors.Is(err, ErrNoActiveSampler) {
		t.Fatalf("expected ErrNoActiveSampler, got %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Fatalf("expected nothing drawn, got %d ops", len(rec.Ops))
	}
}

func TestFrameClearsThenRenders(t *testing.T) {
	c := newController(t)
	s := &stubSampler{snap: spectrum.Snapshot{0, 50, 100, 150, 200, 250, 255, 10}}
	c.Attach(s)
	c.Start()
	rec := surface.NewRecorder()

	if err := c.Frame(rec, geom); err != nil {
		t.Fatalf("Frame returned error: %v", err)
	}
	if rec.Ops[0].Kind != surface.OpClear {
		t.Fatalf("expected clear first, got %s", rec.Ops[0].Kind)
	}
	if got := rec.Count(surface.OpFillRect); got != 8 {
		t.Fatalf("expected 8 bars, got %d", got)
	}
	if len(c.Last()) != 8 {
		t.Fatal("expected last snapshot to be kept")
	}
}

func TestFrameRecoversFromRendererPanic(t *testing.T) {
	reg := visualizer.NewRegistry()
	reg.Register("broken", visualizer.RenderFunc(func(surface.Surface, spectrum.Snapshot, surface.Geometry) {
		panic("boom")
	}))
	reg.Register("ok", visualizer.RenderFunc(func(s surface.Surface, _ spectrum.Snapshot, _ surface.Geometry) {
		s.FillRect(surface.Rect{W: 1, H: 1}, surface.Solid(surface.RGB(1, 1, 1)))
	}))
	c, err := New(reg, "broken")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	c.Attach(&stubSampler{snap: spectrum.Snapshot{1}})
	c.Start()

	if err := c.Frame(surface.NewRecorder(), geom); !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}

	c.Select("ok")
	rec := surface.NewRecorder()
	if err := c.Frame(rec, geom); err != nil {
		t.Fatalf("expected the next frame to succeed, got %v", err)
	}
	if rec.Count(surface.OpFillRect) != 1 {
		t.Fatal("expected the next frame to draw")
	}
}

func TestCycleWraps(t *testing.T) {
	c := newController(t)
	names := visualizer.Default().List()

	if got := c.Cycle(-1); got != names[len(names)-1] {
		t.Fatalf("expected wrap to %q, got %q", names[len(names)-1], got)
	}
	if got := c.Cycle(1); got != "bars" {
		t.Fatalf("expected wrap back to bars, got %q", got)
	}
	if got := c.Cycle(2); got != names[2] {
		t.Fatalf("expected %q, got %q", names[2], got)
	}
}

func TestDetachStopsFrames(t *testing.T) {
	c := newController(t)
	c.Attach(&stubSampler{snap: spectrum.Snapshot{1}})
	c.Start()
	c.Detach()
	if err := c.Frame(surface.NewRecorder(), geom); !errors.Is(err, ErrNoActiveSampler) {
		t.Fatalf("expected ErrNoActiveSampler after detach, got %v", err)
	}
	c.Stop()
	if c.Running() {
		t.Fatal("expected stopped controller")
	}
}
