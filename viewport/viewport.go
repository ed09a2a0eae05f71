package viewport

import (
	"go-pianoroll/grid"
)

// Axis selects horizontal or vertical scrolling
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "x"
	}
	return "y"
}

// Layout defaults (pixels)
const (
	DefaultPianoBarWidth      = 80.0
	DefaultMeterBarHeight     = 20.0
	DefaultScrollBarThickness = 12.0
)

// Layout holds the fixed chrome around the note grid
type Layout struct {
	PianoBarWidth      float64
	MeterBarHeight     float64
	ScrollBarThickness float64
}

func DefaultLayout() Layout {
	return Layout{
		PianoBarWidth:      DefaultPianoBarWidth,
		MeterBarHeight:     DefaultMeterBarHeight,
		ScrollBarThickness: DefaultScrollBarThickness,
	}
}

// Viewport tracks the canvas, the grid being viewed and the scroll offsets.
// Scroll offsets are kept clamped to [0, content-extent] on every change.
type Viewport struct {
	grid    grid.Grid
	layout  Layout
	width   float64
	height  float64
	scrollX float64
	scrollY float64
}

// New creates a viewport for a canvas of width x height
func New(g grid.Grid, layout Layout, width, height float64) *Viewport {
	return &Viewport{
		grid:   g,
		layout: layout,
		width:  width,
		height: height,
	}
}

func (v *Viewport) Grid() grid.Grid {
	return v.grid
}

func (v *Viewport) Layout() Layout {
	return v.layout
}

// SetGrid swaps the grid (zoom, snap, pitch band) and re-clamps scroll
func (v *Viewport) SetGrid(g grid.Grid) {
	v.grid = g
	v.reclamp()
}

// SetCanvasSize is called on window resize
func (v *Viewport) SetCanvasSize(width, height float64) {
	v.width = width
	v.height = height
	v.reclamp()
}

func (v *Viewport) CanvasSize() (width, height float64) {
	return v.width, v.height
}

// Scroll returns both offsets as a point
func (v *Viewport) Scroll() grid.Point {
	return grid.Point{X: v.scrollX, Y: v.scrollY}
}

// ScrollOf returns the offset along one axis
func (v *Viewport) ScrollOf(axis Axis) float64 {
	if axis == Horizontal {
		return v.scrollX
	}
	return v.scrollY
}

// SetScroll clamps value to [0, total-extent]; content that fits gets 0
func (v *Viewport) SetScroll(axis Axis, value float64) {
	value = grid.Clamp(value, 0, v.MaxScroll(axis))
	if axis == Horizontal {
		v.scrollX = value
	} else {
		v.scrollY = value
	}
}

// ScrollBy is SetScroll(axis, current+delta)
func (v *Viewport) ScrollBy(axis Axis, delta float64) {
	v.SetScroll(axis, v.ScrollOf(axis)+delta)
}

// MaxScroll is the largest valid offset, never negative
func (v *Viewport) MaxScroll(axis Axis) float64 {
	m := v.Total(axis) - v.Extent(axis)
	if m < 0 {
		return 0
	}
	return m
}

// Total is the content size along axis
func (v *Viewport) Total(axis Axis) float64 {
	if axis == Horizontal {
		return v.grid.TotalWidth()
	}
	return v.grid.TotalHeight()
}

// Extent is the visible note grid size along axis. A scrollbar is reserved
// along the far edge when the other axis overflows.
func (v *Viewport) Extent(axis Axis) float64 {
	h, vert := v.reservesBars()
	e := v.available(axis)
	if (axis == Horizontal && vert) || (axis == Vertical && h) {
		e -= v.layout.ScrollBarThickness
	}
	if e < 0 {
		return 0
	}
	return e
}

// IsOverflowing reports whether the content is larger than the visible grid,
// i.e. whether a scrollbar is needed
func (v *Viewport) IsOverflowing(axis Axis) bool {
	return v.Total(axis) > v.Extent(axis)
}

// Origin is the screen position of the note grid's top-left corner
func (v *Viewport) Origin() grid.Point {
	return grid.Point{X: v.layout.PianoBarWidth, Y: v.layout.MeterBarHeight}
}

// ScreenToContent converts a screen point into note grid content space
func (v *Viewport) ScreenToContent(x, y float64) grid.Point {
	o := v.Origin()
	return grid.Point{X: x - o.X + v.scrollX, Y: y - o.Y + v.scrollY}
}

// ContentToScreen is the inverse of ScreenToContent
func (v *Viewport) ContentToScreen(p grid.Point) grid.Point {
	o := v.Origin()
	return grid.Point{X: p.X + o.X - v.scrollX, Y: p.Y + o.Y - v.scrollY}
}

// PixelToMusical maps a screen point through the current scroll
func (v *Viewport) PixelToMusical(x, y float64) grid.Position {
	return v.grid.PixelToMusical(x, y, v.Origin(), v.Scroll())
}

// available is the space left for the grid before any scrollbar is reserved
func (v *Viewport) available(axis Axis) float64 {
	if axis == Horizontal {
		return v.width - v.layout.PianoBarWidth
	}
	return v.height - v.layout.MeterBarHeight
}

// reservesBars decides both scrollbars together. Content that fits on its own
// can still overflow once the other axis's bar takes its share of the space.
func (v *Viewport) reservesBars() (horizontal, vertical bool) {
	t := v.layout.ScrollBarThickness
	totalH, totalV := v.Total(Horizontal), v.Total(Vertical)
	availH, availV := v.available(Horizontal), v.available(Vertical)

	horizontal = totalH > availH
	vertical = totalV > availV
	horizontal = horizontal || (vertical && totalH > availH-t)
	vertical = vertical || (horizontal && totalV > availV-t)
	return horizontal, vertical
}

func (v *Viewport) reclamp() {
	v.SetScroll(Horizontal, v.scrollX)
	v.SetScroll(Vertical, v.scrollY)
}
