package surface

import "image/color"

// OpKind identifies a recorded primitive.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillPath
	OpStrokeLine
	OpStrokePath
	OpFillArc
	OpStrokeArc
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill-rect"
	case OpFillPath:
		return "fill-path"
	case OpStrokeLine:
		return "stroke-line"
	case OpStrokePath:
		return "stroke-path"
	case OpFillArc:
		return "fill-arc"
	case OpStrokeArc:
		return "stroke-arc"
	default:
		return "unknown"
	}
}

// Op is one recorded primitive. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Rect   Rect
	Points []Point
	Closed bool
	Center Point
	Radius float64
	Start  float64
	End    float64
	Paint  Paint
	Width  float64
}

// Extent returns the points bounding the primitive's geometry. Arcs report the
// bounding box of their full circle.
func (o Op) Extent() []Point {
	switch o.Kind {
	case OpFillRect:
		c := o.Rect.Corners()
		return c[:]
	case OpFillPath, OpStrokeLine, OpStrokePath:
		return o.Points
	case OpFillArc, OpStrokeArc:
		return []Point{
			{X: o.Center.X - o.Radius, Y: o.Center.Y - o.Radius},
			{X: o.Center.X + o.Radius, Y: o.Center.Y + o.Radius},
		}
	default:
		return nil
	}
}

// Recorder is a Surface that keeps every primitive it receives, in order.
type Recorder struct {
	Ops []Op
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset drops all recorded primitives.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many primitives of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Clear(bg color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Paint: Solid(color.NRGBAModel.Convert(bg).(color.NRGBA))})
}

func (r *Recorder) FillRect(rect Rect, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Paint: p})
}

func (r *Recorder) FillPath(pts []Point, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPath, Points: clonePoints(pts), Closed: true, Paint: p})
}

func (r *Recorder) StrokeLine(from, to Point, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, Points: []Point{from, to}, Paint: pen.Paint, Width: pen.Width})
}

func (r *Recorder) StrokePath(pts []Point, closed bool, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokePath, Points: clonePoints(pts), Closed: closed, Paint: pen.Paint, Width: pen.Width})
}

func (r *Recorder) FillArc(center Point, radius, start, end float64, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFillArc, Center: center, Radius: radius, Start: start, End: end, Paint: p})
}

func (r *Recorder) StrokeArc(center Point, radius, start, end float64, pen Pen) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeArc, Center: center, Radius: radius, Start: start, End: end, Paint: pen.Paint, Width: pen.Width})
}

func clonePoints(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
