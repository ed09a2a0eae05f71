package interaction

import (
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/viewport"
)

// dragStrategy is one gesture kind. move receives the pointer offset from
// the press in screen pixels; end runs once when the session closes.
type dragStrategy interface {
	move(dx, dy float64, p Pointer)
	end(dx, dy float64, p Pointer)
}

type dragSession struct {
	state    State
	start    grid.Point
	last     Pointer
	strategy dragStrategy
}

func (d *dragSession) delta(p Pointer) (dx, dy float64) {
	return p.X - d.start.X, p.Y - d.start.Y
}

func (d *dragSession) moveTo(p Pointer) {
	d.last = p
	dx, dy := d.delta(p)
	d.strategy.move(dx, dy, p)
}

func (c *Controller) beginDrag(state State, p Pointer, s dragStrategy) {
	c.drag = &dragSession{
		state:    state,
		start:    grid.Point{X: p.X, Y: p.Y},
		last:     p,
		strategy: s,
	}
	debug.Log("drag", "begin %s at (%.0f,%.0f)", state, p.X, p.Y)
}

// endDrag closes the session on every exit path
func (c *Controller) endDrag(p Pointer) {
	d := c.drag
	if d == nil {
		return
	}
	c.drag = nil

	dx, dy := d.delta(p)
	d.strategy.move(dx, dy, p)
	d.strategy.end(dx, dy, p)
	debug.Log("drag", "end %s delta (%.0f,%.0f)", d.state, dx, dy)
}

// positionDrag moves a cohort of notes as a rigid group
type positionDrag struct {
	c      *Controller
	anchor notes.Note
	cohort []notes.Note

	minOnset           float64
	minPitch, maxPitch int
}

func (c *Controller) newPositionDrag(anchor notes.Note, cohort []notes.Note) *positionDrag {
	d := &positionDrag{
		c:        c,
		anchor:   anchor,
		cohort:   cohort,
		minOnset: math.Inf(1),
		minPitch: math.MaxInt,
		maxPitch: math.MinInt,
	}
	for _, n := range cohort {
		d.minOnset = math.Min(d.minOnset, n.Onset)
		d.minPitch = min(d.minPitch, n.Pitch)
		d.maxPitch = max(d.maxPitch, n.Pitch)
	}
	return d
}

func (d *positionDrag) move(dx, dy float64, _ Pointer) {
	g := d.c.view.Grid()

	onset := grid.SnapRound(math.Max(0, d.anchor.Onset+dx/g.BeatWidth), g.Snap)
	dOnset := onset - d.anchor.Onset
	if dOnset < -d.minOnset {
		// the earliest note stops at beat 0, the anchor stays on the grid
		dOnset = grid.SnapCeil(d.anchor.Onset-d.minOnset, g.Snap) - d.anchor.Onset
	}

	pitch := int(math.Round(float64(d.anchor.Pitch) - dy/g.LaneHeight))
	dPitch := grid.ClampInt(pitch-d.anchor.Pitch,
		min(0, g.MinPitch-d.minPitch),
		max(0, g.MaxPitch-d.maxPitch))

	for _, n := range d.cohort {
		d.c.store.Update(n.ID, notes.Move(n.Pitch+dPitch, n.Onset+dOnset))
	}
	debug.LogEvery(10, "drag", "position dPitch=%d dOnset=%.2f", dPitch, dOnset)
}

func (d *positionDrag) end(_, _ float64, _ Pointer) {
	resolveCollisions(d.c.store, ids(d.cohort))
}

// durationDrag stretches a cohort from the right edge
type durationDrag struct {
	c      *Controller
	cohort []notes.Note
}

func (c *Controller) newDurationDrag(cohort []notes.Note) *durationDrag {
	return &durationDrag{c: c, cohort: cohort}
}

func (d *durationDrag) move(dx, _ float64, _ Pointer) {
	g := d.c.view.Grid()
	floor := g.Snap
	if floor <= 0 {
		floor = d.c.store.MinDuration()
	}
	delta := grid.SnapRound(dx/g.BeatWidth, g.Snap)
	for _, n := range d.cohort {
		d.c.store.Update(n.ID, notes.SetDuration(math.Max(floor, n.Duration+delta)))
	}
}

func (d *durationDrag) end(_, _ float64, _ Pointer) {
	resolveCollisions(d.c.store, ids(d.cohort))
}

// boxDrag is a rubber-band selection in content space, so scrolling
// mid-drag keeps the anchor corner on the same notes
type boxDrag struct {
	c      *Controller
	shift  bool
	anchor grid.Point
	corner grid.Point
}

func (c *Controller) newBoxDrag(p Pointer, shift bool) *boxDrag {
	pt := c.view.ScreenToContent(p.X, p.Y)
	return &boxDrag{c: c, shift: shift, anchor: pt, corner: pt}
}

func (b *boxDrag) contentRect() grid.Rect {
	return grid.RectFromPoints(b.anchor, b.corner)
}

func (b *boxDrag) move(_, _ float64, p Pointer) {
	b.corner = b.c.view.ScreenToContent(p.X, p.Y)
}

func (b *boxDrag) end(dx, dy float64, p Pointer) {
	threshold := b.c.opts.BoxThreshold
	if math.Abs(dx) <= threshold && math.Abs(dy) <= threshold {
		b.c.plainClick(Pointer{X: p.X - dx, Y: p.Y - dy}, b.shift)
		return
	}

	s := b.c.store
	if !b.shift {
		s.ClearSelection()
	}
	g := b.c.view.Grid()
	box := b.contentRect()
	for _, n := range s.All() {
		if g.NoteRect(n.Pitch, n.Onset, n.Duration).Intersects(box) {
			s.Select(n.ID)
		}
	}
}

// scrollbarDrag maps thumb travel back to a scroll offset
type scrollbarDrag struct {
	c       *Controller
	axis    viewport.Axis
	initial float64
}

func (c *Controller) newScrollbarDrag(axis viewport.Axis) *scrollbarDrag {
	return &scrollbarDrag{c: c, axis: axis, initial: c.view.ScrollOf(axis)}
}

func (d *scrollbarDrag) move(dx, dy float64, _ Pointer) {
	delta := dy
	if d.axis == viewport.Horizontal {
		delta = dx
	}
	d.c.view.SetScroll(d.axis, d.initial+d.c.view.ScrollForThumb(d.axis, delta))
}

func (d *scrollbarDrag) end(_, _ float64, _ Pointer) {}

func ids(ns []notes.Note) []notes.ID {
	out := make([]notes.ID, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}
