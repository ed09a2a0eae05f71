package viewport

import "go-pianoroll/grid"

// Thumb is a scrollbar thumb measured along its track
type Thumb struct {
	Pos float64
	Len float64
}

// Thumb computes proportional scrollbar geometry:
//
//	len = track * extent/total
//	pos = scroll/(total-extent) * (track-len)
//
// The track is the visible grid extent along the same axis.
func (v *Viewport) Thumb(axis Axis) Thumb {
	track := v.Extent(axis)
	total := v.Total(axis)
	if total <= track || total <= 0 {
		return Thumb{Pos: 0, Len: track}
	}
	length := track * track / total
	pos := v.ScrollOf(axis) / (total - track) * (track - length)
	return Thumb{Pos: pos, Len: length}
}

// ScrollForThumb is the inverse of Thumb: the scroll offset that puts the
// thumb at pos. The result is not clamped.
func (v *Viewport) ScrollForThumb(axis Axis, pos float64) float64 {
	th := v.Thumb(axis)
	travel := v.Extent(axis) - th.Len
	if travel <= 0 {
		return 0
	}
	return pos / travel * v.MaxScroll(axis)
}

// ThumbTravel is how far the thumb can move along its track
func (v *Viewport) ThumbTravel(axis Axis) float64 {
	return v.Extent(axis) - v.Thumb(axis).Len
}

// NoteGridRect is the screen rectangle the notes are drawn into
func (v *Viewport) NoteGridRect() grid.Rect {
	o := v.Origin()
	return grid.Rect{X: o.X, Y: o.Y, W: v.Extent(Horizontal), H: v.Extent(Vertical)}
}

// PianoBarRect is the key column left of the grid
func (v *Viewport) PianoBarRect() grid.Rect {
	return grid.Rect{X: 0, Y: v.layout.MeterBarHeight, W: v.layout.PianoBarWidth, H: v.Extent(Vertical)}
}

// MeterBarRect is the beat ruler above the grid
func (v *Viewport) MeterBarRect() grid.Rect {
	return grid.Rect{X: v.layout.PianoBarWidth, Y: 0, W: v.Extent(Horizontal), H: v.layout.MeterBarHeight}
}

// ScrollbarRect returns the track along the right (Vertical) or bottom
// (Horizontal) edge; ok is false when that axis does not overflow
func (v *Viewport) ScrollbarRect(axis Axis) (r grid.Rect, ok bool) {
	if !v.IsOverflowing(axis) {
		return grid.Rect{}, false
	}
	t := v.layout.ScrollBarThickness
	g := v.NoteGridRect()
	if axis == Vertical {
		return grid.Rect{X: g.Right(), Y: g.Y, W: t, H: g.H}, true
	}
	return grid.Rect{X: g.X, Y: g.Bottom(), W: g.W, H: t}, true
}

// ThumbRect is the screen rectangle of the thumb inside ScrollbarRect
func (v *Viewport) ThumbRect(axis Axis) (r grid.Rect, ok bool) {
	bar, ok := v.ScrollbarRect(axis)
	if !ok {
		return grid.Rect{}, false
	}
	th := v.Thumb(axis)
	if axis == Vertical {
		return grid.Rect{X: bar.X, Y: bar.Y + th.Pos, W: bar.W, H: th.Len}, true
	}
	return grid.Rect{X: bar.X + th.Pos, Y: bar.Y, W: th.Len, H: bar.H}, true
}

// Visible is the content-space rectangle currently on screen
func (v *Viewport) Visible() grid.Rect {
	return grid.Rect{X: v.scrollX, Y: v.scrollY, W: v.Extent(Horizontal), H: v.Extent(Vertical)}
}
