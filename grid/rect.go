package grid

import "math"

// Rect is an axis-aligned rectangle in pixels
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints normalizes two corners into a Rect
func RectFromPoints(a, b Point) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether (x, y) is inside r. The right and bottom edges are
// exclusive so adjacent regions never both claim a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects is the strict overlap test: rectangles that only touch along an
// edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Offset moves r by (dx, dy)
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// NoteRect returns a note's content-space rectangle:
// [onset*bw, (onset+duration)*bw] x [(max-pitch)*lh, +lh]
func (g Grid) NoteRect(pitch int, onset, duration float64) Rect {
	p := g.MusicalToPixel(onset, pitch)
	return Rect{X: p.X, Y: p.Y, W: duration * g.BeatWidth, H: g.LaneHeight}
}
