// Package visualizer holds the table of interchangeable draw styles. Each
// style turns one frequency snapshot into drawing primitives for one frame.
package visualizer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/olivier-w/climpviz/internal/spectrum"
	"github.com/olivier-w/climpviz/internal/surface"
)

// ErrUnknownVisualization is returned when a name is not registered.
var ErrUnknownVisualization = errors.New("unknown visualization")

// Renderer draws one frame. Implementations must not mutate snap, must not
// clear the surface, and must derive every coordinate from g.
type Renderer interface {
	Render(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry)

func (f RenderFunc) Render(s surface.Surface, snap spectrum.Snapshot, g surface.Geometry) {
	f(s, snap, g)
}

// Registry maps stable names to renderers. Listing order is registration
// order, which stays fixed for the life of the process.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Renderer
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Renderer)}
}

// Register inserts or replaces name. A replaced entry keeps its position.
func (r *Registry) Register(name string, rd Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = rd
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVisualization, name)
	}
	return rd, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered styles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Default returns a registry holding every built-in style.
func Default() *Registry {
	r := NewRegistry()
	for _, st := range builtins {
		r.Register(st.name, st.fn)
	}
	return r
}

var builtins = []struct {
	name string
	fn   RenderFunc
}{
	{"bars", drawBars},
	{"mirrored-bars", drawMirroredBars},
	{"radial", drawRadial},
	{"radial-bars", drawRadialBars},
	{"polygon-wave", drawPolygonWave},
	{"spiral", drawSpiral},
	{"dots", drawDots},
	{"zigzag", drawZigzag},
	{"gradient-wave", drawGradientWave},
	{"starburst", drawStarburst},
	{"grid", drawGrid},
	{"lissajous", drawLissajous},
	{"orbit", drawOrbit},
	{"polygon", drawPolygon},
	{"kaleidoscope", drawKaleidoscope},
	{"sine-wave", drawSineWave},
	{"waterfall", drawWaterfall},
	{"arc", drawArc},
	{"flower", drawFlower},
}
