package visualizer

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
)

func ramp(n int) spectrum.Snapshot {
	s := make(spectrum.Snapshot, n)
	for i := range s {
		s[i] = byte(i * 37 % 256)
	}
	return s
}

func record(t *testing.T, name string, snap spectrum.Snapshot, g surface.Geometry) []surface.Op {
	t.Helper()
	rd, err := Default().Get(name)
	if err != nil {
		t.Fatalf("Get(%q) returned error: %v", name, err)
	}
	rec := surface.NewRecorder()
	rd.Render(rec, snap, g)
	return rec.Ops
}

func TestDefaultListsEveryStyleOnce(t *testing.T) {
	r := Default()
	names := r.List()
	if len(names) != len(builtins) || r.Len() != len(builtins) {
		t.Fatalf("expected %d styles, got %d", len(builtins), len(names))
	}
	seen := make(map[string]bool)
	for i, name := range names {
		if seen[name] {
			t.Fatalf("duplicate style %q", name)
		}
		seen[name] = true
		if name != builtins[i].name {
			t.Fatalf("expected registration order, got %q at %d", name, i)
		}
	}
}

func TestRegisterReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	noop := RenderFunc(func(surface.Surface, spectrum.Snapshot, surface.Geometry) {})
	r.Register("a", noop)
	r.Register("b", noop)
	r.Register("a", RenderFunc(drawBars))

	if got := r.List(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}

	list := r.List()
	list[0] = "mutated"
	if r.List()[0] != "a" {
		t.Fatal("expected List to return a copy")
	}
}

func TestGetUnknownFails(t *testing.T) {
	r := Default()
	_, err := r.Get("doesNotExist")
	if !errors.Is(err, ErrUnknownVisualization) {
		t.Fatalf("expected ErrUnknownVisualization, got %v", err)
	}
	if r.Has("doesNotExist") {
		t.Fatal("expected Has to report false")
	}
	if !r.Has("bars") {
		t.Fatal("expected bars to be registered")
	}
}

func TestRenderersAreDeterministic(t *testing.T) {
	g := surface.Geometry{Width: 320, Height: 180}
	snap := ramp(48)
	for _, name := range Default().List() {
		first := record(t, name, snap, g)
		second := record(t, name, snap, g)
		if len(first) == 0 {
			t.Errorf("%s: expected primitives for a non-empty snapshot", name)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: primitive sequences differ between identical calls", name)
		}
	}
}

func TestRenderersIgnoreEmptySnapshot(t *testing.T) {
	g := surface.Geometry{Width: 100, Height: 100}
	for _, name := range Default().List() {
		if ops := record(t, name, spectrum.Snapshot{}, g); len(ops) != 0 {
			t.Errorf("%s: expected no primitives, got %d", name, len(ops))
		}
	}
}

func TestRenderersStayInBoundsForSilence(t *testing.T) {
	geoms := []surface.Geometry{
		{Width: 256, Height: 100},
		{Width: 90, Height: 300},
	}
	for _, g := range geoms {
		for _, name := range Default().List() {
			for _, op := range record(t, name, make(spectrum.Snapshot, 64), g) {
				for _, p := range op.Extent() {
					if !g.Contains(p, 1e-9) {
						t.Errorf("%s on %vx%v: %s point %v out of bounds", name, g.Width, g.Height, op.Kind, p)
					}
				}
			}
		}
	}
}

func TestRenderersDoNotMutateSnapshot(t *testing.T) {
	g := surface.Geometry{Width: 200, Height: 120}
	for _, name := range Default().List() {
		snap := ramp(33)
		orig := bytes.Clone(snap)
		record(t, name, snap, g)
		if !bytes.Equal(snap, orig) {
			t.Errorf("%s: snapshot was modified", name)
		}
	}
}

func TestBarsScenario(t *testing.T) {
	snap := spectrum.Snapshot{0, 50, 100, 150, 200, 250, 255, 10}
	ops := record(t, "bars", snap, surface.Geometry{Width: 256, Height: 100})

	if len(ops) != 8 {
		t.Fatalf("expected 8 primitives, got %d", len(ops))
	}
	for i, op := range ops {
		if op.Kind != surface.OpFillRect {
			t.Fatalf("op %d: expected fill-rect, got %s", i, op.Kind)
		}
		v := float64(snap[i])
		want := surface.Rect{X: float64(i * 32), Y: 100 - v, W: 31, H: v}
		if op.Rect != want {
			t.Fatalf("op %d: got %+v, want %+v", i, op.Rect, want)
		}
	}
}

func TestArcScenarioZeroSweep(t *testing.T) {
	ops := record(t, "arc", make(spectrum.Snapshot, 4), surface.Geometry{Width: 100, Height: 100})
	if len(ops) != 1 {
		t.Fatalf("expected a single arc, got %d ops", len(ops))
	}
	if ops[0].Kind != surface.OpStrokeArc {
		t.Fatalf("expected stroke-arc, got %s", ops[0].Kind)
	}
	if ops[0].Start != ops[0].End {
		t.Fatalf("expected zero-length arc, got %v..%v", ops[0].Start, ops[0].End)
	}
}

func TestArcReadsOnlyFirstBin(t *testing.T) {
	g := surface.Geometry{Width: 100, Height: 100}
	a := record(t, "arc", spectrum.Snapshot{128, 0, 0}, g)
	b := record(t, "arc", spectrum.Snapshot{128, 255, 255}, g)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected arc to depend on the first bin only")
	}
}

func TestGridCostIsFixed(t *testing.T) {
	g := surface.Geometry{Width: 160, Height: 80}
	small := record(t, "grid", ramp(3), g)
	large := record(t, "grid", ramp(4096), g)
	want := gridCols * gridRows / 2
	if len(small) != want || len(large) != want {
		t.Fatalf("expected %d cells for any length, got %d and %d", want, len(small), len(large))
	}
}

func TestKaleidoscopeMirrorsEachBin(t *testing.T) {
	ops := record(t, "kaleidoscope", ramp(10), surface.Geometry{Width: 200, Height: 100})
	if len(ops) != 40 {
		t.Fatalf("expected 4 rects per bin, got %d", len(ops))
	}
	right, left := ops[4].Rect, ops[5].Rect
	if right.X-100 != 100-(left.X+left.W) {
		t.Fatalf("expected mirrored placement, got %+v and %+v", right, left)
	}
}

func TestRadialBarsUseGradient(t *testing.T) {
	ops := record(t, "radial-bars", ramp(8), surface.Geometry{Width: 100, Height: 100})
	for _, op := range ops {
		if op.Paint.Gradient == nil {
			t.Fatal("expected gradient paint on radial bars")
		}
	}
}
