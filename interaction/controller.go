// Package interaction turns pointer, key and wheel events into edits on a
// notes.Store and scroll changes on a viewport.Viewport.
package interaction

import (
	"math"
	"time"

	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/viewport"
)

// State of the gesture state machine
type State int

const (
	Idle State = iota
	AwaitingDoubleClick
	DraggingNotePosition
	DraggingNoteDuration
	DraggingSelectionBox
	DraggingScrollbar
)

func (s State) String() string {
	switch s {
	case AwaitingDoubleClick:
		return "awaiting-double-click"
	case DraggingNotePosition:
		return "dragging-position"
	case DraggingNoteDuration:
		return "dragging-duration"
	case DraggingSelectionBox:
		return "dragging-box"
	case DraggingScrollbar:
		return "dragging-scrollbar"
	}
	return "idle"
}

// Key names understood by KeyDown/KeyUp
const (
	KeyShift     = "Shift"
	KeySpace     = " "
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeySelectAll = "ctrl+a"
)

// Pointer is a pointer event in screen pixels
type Pointer struct {
	X, Y  float64
	Shift bool
}

// Wheel is a scroll-wheel event. DeltaY is in pixels.
type Wheel struct {
	DeltaY float64
	Shift  bool
}

// Transport is what the controller drives outside the note collection
type Transport interface {
	Toggle()
	SetStart(beat float64)
	Preview(pitch int)
}

// Options are the gesture tunables, in pixels unless noted
type Options struct {
	DoubleClickThreshold time.Duration
	DoubleClickTolerance float64
	BoxThreshold         float64
	HandleWidth          float64
	DefaultDuration      float64 // beats
}

func DefaultOptions() Options {
	return Options{
		DoubleClickThreshold: 300 * time.Millisecond,
		DoubleClickTolerance: 5,
		BoxThreshold:         5,
		HandleWidth:          10,
		DefaultDuration:      1,
	}
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces time.Now for double-click timing
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithTransport(t Transport) Option {
	return func(c *Controller) {
		c.transport = t
	}
}

func WithOptions(o Options) Option {
	return func(c *Controller) {
		c.opts = o
	}
}

type click struct {
	at   time.Time
	x, y float64
}

// Controller owns no data; it mutates the store and viewport it was given
type Controller struct {
	store     *notes.Store
	view      *viewport.Viewport
	transport Transport
	opts      Options
	now       func() time.Time

	drag      *dragSession
	lastClick *click
	shiftHeld bool
}

// New creates an idle controller
func New(store *notes.Store, view *viewport.Viewport, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		view:  view,
		opts:  DefaultOptions(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current gesture state
func (c *Controller) State() State {
	if c.drag != nil {
		return c.drag.state
	}
	if c.awaitingDoubleClick() {
		return AwaitingDoubleClick
	}
	return Idle
}

// Tracking reports whether a drag session is open. The input source only
// needs to forward moves and releases while it is.
func (c *Controller) Tracking() bool {
	return c.drag != nil
}

func (c *Controller) Options() Options {
	return c.opts
}

// SelectionBox is the live box-select rectangle in screen space
func (c *Controller) SelectionBox() (grid.Rect, bool) {
	if c.drag == nil {
		return grid.Rect{}, false
	}
	b, ok := c.drag.strategy.(*boxDrag)
	if !ok {
		return grid.Rect{}, false
	}
	r := b.contentRect()
	o := c.view.ContentToScreen(grid.Point{X: r.X, Y: r.Y})
	return grid.Rect{X: o.X, Y: o.Y, W: r.W, H: r.H}, true
}

// PointerDown dispatches a press on whatever region is under the pointer
func (c *Controller) PointerDown(p Pointer) {
	if c.drag != nil {
		// the previous release never arrived
		c.endDrag(c.drag.last)
	}
	shift := p.Shift || c.shiftHeld
	h := c.hitTest(p.X, p.Y)

	switch h.kind {
	case hitThumb:
		c.lastClick = nil
		c.beginDrag(DraggingScrollbar, p, c.newScrollbarDrag(h.axis))
	case hitTrack:
		c.lastClick = nil
		c.centreThumbAt(h.axis, p)
		c.beginDrag(DraggingScrollbar, p, c.newScrollbarDrag(h.axis))
	case hitNote, hitHandle:
		c.lastClick = nil
		c.pressNote(h, p, shift)
	case hitGrid:
		if c.isDoubleClick(p) {
			c.lastClick = nil
			c.createAt(p)
			return
		}
		c.beginDrag(DraggingSelectionBox, p, c.newBoxDrag(p, shift))
	case hitMeterBar:
		c.lastClick = nil
		c.setStart(p.X)
	case hitPianoBar:
		c.lastClick = nil
		pos := c.view.PixelToMusical(p.X, p.Y)
		g := c.view.Grid()
		if pos.Pitch >= g.MinPitch && pos.Pitch <= g.MaxPitch && c.transport != nil {
			c.transport.Preview(pos.Pitch)
		}
	}
}

// PointerMove updates an open drag. Hover moves are ignored.
func (c *Controller) PointerMove(p Pointer) {
	if c.drag == nil {
		return
	}
	c.drag.moveTo(p)
}

// PointerUp ends an open drag
func (c *Controller) PointerUp(p Pointer) {
	c.endDrag(p)
}

// PointerUpOutside is a release that happened outside the canvas. It ends
// the drag exactly like PointerUp.
func (c *Controller) PointerUpOutside(p Pointer) {
	c.endDrag(p)
}

// KeyDown handles the editor's keyboard commands
func (c *Controller) KeyDown(key string) {
	switch key {
	case KeyShift:
		c.shiftHeld = true
	case KeySpace:
		if c.transport != nil {
			c.transport.Toggle()
		}
	case KeyDelete, KeyBackspace:
		removed := c.store.DeleteSelected()
		debug.Log("store", "deleted %d selected notes", len(removed))
	case KeySelectAll:
		c.store.SelectAll()
	}
}

func (c *Controller) KeyUp(key string) {
	if key == KeyShift {
		c.shiftHeld = false
	}
}

// Wheel scrolls vertically, or horizontally with shift
func (c *Controller) Wheel(w Wheel) {
	axis := viewport.Vertical
	if w.Shift || c.shiftHeld {
		axis = viewport.Horizontal
	}
	c.view.ScrollBy(axis, w.DeltaY)
	debug.LogEvery(10, "scroll", "wheel %s %.1f -> %.1f", axis, w.DeltaY, c.view.ScrollOf(axis))
}

func (c *Controller) pressNote(h hit, p Pointer, shift bool) {
	id := h.note.ID
	switch {
	case shift:
		c.store.ToggleSelect(id)
	case !c.store.IsSelected(id):
		c.store.ClearSelection()
		c.store.Select(id)
	}

	cohort := []notes.Note{h.note}
	if c.store.IsSelected(id) {
		cohort = c.store.Selected()
	}

	if h.kind == hitHandle {
		c.beginDrag(DraggingNoteDuration, p, c.newDurationDrag(cohort))
		return
	}
	c.beginDrag(DraggingNotePosition, p, c.newPositionDrag(h.note, cohort))
}

func (c *Controller) awaitingDoubleClick() bool {
	return c.lastClick != nil && c.now().Sub(c.lastClick.at) < c.opts.DoubleClickThreshold
}

func (c *Controller) isDoubleClick(p Pointer) bool {
	if !c.awaitingDoubleClick() {
		return false
	}
	tol := c.opts.DoubleClickTolerance
	return math.Abs(p.X-c.lastClick.x) <= tol && math.Abs(p.Y-c.lastClick.y) <= tol
}

// plainClick is a grid press released without dragging
func (c *Controller) plainClick(p Pointer, shift bool) {
	if !shift {
		c.store.ClearSelection()
	}
	c.setStart(p.X)
	c.lastClick = &click{at: c.now(), x: p.X, y: p.Y}
}

func (c *Controller) setStart(screenX float64) {
	if c.transport == nil {
		return
	}
	g := c.view.Grid()
	beat := c.view.PixelToMusical(screenX, c.view.Origin().Y).Beat
	beat = grid.Clamp(grid.SnapRound(beat, g.Snap), 0, float64(g.BeatCount))
	c.transport.SetStart(beat)
}

// createAt adds a note under a double-click
func (c *Controller) createAt(p Pointer) {
	g := c.view.Grid()
	pos := c.view.PixelToMusical(p.X, p.Y)
	if pos.Pitch < g.MinPitch || pos.Pitch > g.MaxPitch || pos.Beat < 0 || pos.Beat >= float64(g.BeatCount) {
		return
	}

	duration := c.opts.DefaultDuration
	if duration <= 0 {
		duration = g.Snap
	}
	id, ok := c.store.Add(pos.Pitch, grid.SnapFloor(pos.Beat, g.Snap), duration)
	if !ok {
		return
	}
	debug.Log("store", "created note %s at pitch %d beat %.2f", id, pos.Pitch, pos.Beat)
	resolveCollisions(c.store, []notes.ID{id})
}

// centreThumbAt jumps the scroll so the thumb is centred on the pointer
func (c *Controller) centreThumbAt(axis viewport.Axis, p Pointer) {
	bar, ok := c.view.ScrollbarRect(axis)
	if !ok {
		return
	}
	along := p.Y - bar.Y
	if axis == viewport.Horizontal {
		along = p.X - bar.X
	}
	th := c.view.Thumb(axis)
	c.view.SetScroll(axis, c.view.ScrollForThumb(axis, along-th.Len/2))
}

// Nudge moves the selection by whole lanes and beats, clamped as a group
// like a drag, then resolves collisions
func (c *Controller) Nudge(dPitch int, dBeats float64) {
	sel := c.store.Selected()
	if len(sel) == 0 || c.drag != nil {
		return
	}
	g := c.view.Grid()
	d := c.newPositionDrag(sel[0], sel)

	dPitch = grid.ClampInt(dPitch, min(0, g.MinPitch-d.minPitch), max(0, g.MaxPitch-d.maxPitch))
	dBeats = math.Max(dBeats, -d.minOnset)
	for _, n := range sel {
		c.store.Update(n.ID, notes.Move(n.Pitch+dPitch, n.Onset+dBeats))
	}
	resolveCollisions(c.store, ids(sel))
}
