package interaction

import (
	"math"

	"go-pianoroll/notes"
	"go-pianoroll/viewport"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitGrid
	hitNote
	hitHandle
	hitThumb
	hitTrack
	hitPianoBar
	hitMeterBar
)

type hit struct {
	kind hitKind
	note notes.Note
	axis viewport.Axis
}

// hitTest finds the region under a screen point. Scrollbars sit on top of
// everything, then notes, then the grid background and the two bars.
func (c *Controller) hitTest(x, y float64) hit {
	for _, axis := range []viewport.Axis{viewport.Vertical, viewport.Horizontal} {
		bar, ok := c.view.ScrollbarRect(axis)
		if !ok || !bar.Contains(x, y) {
			continue
		}
		if th, ok := c.view.ThumbRect(axis); ok && th.Contains(x, y) {
			return hit{kind: hitThumb, axis: axis}
		}
		return hit{kind: hitTrack, axis: axis}
	}

	switch {
	case c.view.NoteGridRect().Contains(x, y):
		return c.hitNote(x, y)
	case c.view.PianoBarRect().Contains(x, y):
		return hit{kind: hitPianoBar}
	case c.view.MeterBarRect().Contains(x, y):
		return hit{kind: hitMeterBar}
	}
	return hit{kind: hitNone}
}

// hitNote picks the earliest note under the point, matching draw order
// where the earliest note shows on top
func (c *Controller) hitNote(x, y float64) hit {
	g := c.view.Grid()
	pt := c.view.ScreenToContent(x, y)

	for _, n := range c.store.All() {
		r := g.NoteRect(n.Pitch, n.Onset, n.Duration)
		if !r.Contains(pt.X, pt.Y) {
			continue
		}
		handle := math.Min(c.opts.HandleWidth, r.W/2)
		if pt.X >= r.Right()-handle {
			return hit{kind: hitHandle, note: n}
		}
		return hit{kind: hitNote, note: n}
	}
	return hit{kind: hitGrid}
}
