package sequencer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Southclaws/fault/fmsg"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/grid"
	"go-pianoroll/interaction"
	"go-pianoroll/midi"
	"go-pianoroll/notes"
	"go-pianoroll/transport"
	"go-pianoroll/viewport"
)

// TempoStep is the +/- tempo increment
const TempoStep = 5

// OutputOpener opens an output port by name
type OutputOpener func(name string) (midi.Sender, string, error)

// OpenOutput is the gomidi-backed OutputOpener
func OpenOutput(name string) (midi.Sender, string, error) {
	out, err := midi.OpenOutput(name)
	if err != nil {
		return nil, "", err
	}
	return out, out.Name(), nil
}

// Editor owns one editing session and wires the engine together. The
// engine parts are only touched from the UI goroutine; MIDI goroutines go
// through the player and the status line.
type Editor struct {
	cfg       config.Config
	store     *notes.Store
	view      *viewport.Viewport
	ctrl      *interaction.Controller
	cursor    *transport.Cursor
	player    *midi.Player
	transport *Transport

	zoom    int
	snapIdx int

	mu         sync.Mutex
	status     string
	outputName string
	resync     bool // output changed; the player restarts on the next Tick

	// Notify TUI of updates
	UpdateChan chan struct{}
}

type editorOptions struct {
	now    func() time.Time
	sender midi.Sender
}

// Option configures an Editor
type Option func(*editorOptions)

// WithClock drives both double-click timing and the play cursor
func WithClock(now func() time.Time) Option {
	return func(o *editorOptions) {
		o.now = now
	}
}

// WithSender sets the initial MIDI output
func WithSender(s midi.Sender) Option {
	return func(o *editorOptions) {
		o.sender = s
	}
}

// NewEditor builds a session for a canvas of width x height pixels
func NewEditor(cfg *config.Config, width, height float64, opts ...Option) *Editor {
	o := editorOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	g := GridFrom(cfg.Grid)
	store := notes.NewStore(notes.WithMinDuration(g.Snap))
	view := viewport.New(g, LayoutFrom(cfg.Layout), width, height)
	cursor := transport.NewCursor(float64(cfg.Tempo()), transport.WithClock(o.now), transport.WithBounds(store))
	player := midi.NewPlayer(o.sender, uint8(cfg.MIDI.Channel-1), uint8(cfg.MIDI.Velocity))
	tr := NewTransport(cursor, player, store)

	e := &Editor{
		cfg:        *cfg,
		store:      store,
		view:       view,
		cursor:     cursor,
		player:     player,
		transport:  tr,
		zoom:       nearest(ViewScales, 1/g.BeatWidth),
		snapIdx:    nearest(SnapSteps, g.Snap),
		UpdateChan: make(chan struct{}, 1),
	}
	e.ctrl = interaction.New(store, view,
		interaction.WithTransport(tr),
		interaction.WithClock(o.now),
		interaction.WithOptions(OptionsFrom(cfg.Editing)))
	return e
}

func (e *Editor) Store() *notes.Store                 { return e.store }
func (e *Editor) Viewport() *viewport.Viewport        { return e.view }
func (e *Editor) Controller() *interaction.Controller { return e.ctrl }
func (e *Editor) Cursor() *transport.Cursor           { return e.cursor }
func (e *Editor) Transport() *Transport               { return e.transport }

// LoadDemo seeds the demo notes and scrolls them into view
func (e *Editor) LoadDemo() {
	e.store.Seed(DemoNotes)
	e.CenterOnPitch(72)
}

// CenterOnPitch scrolls vertically so pitch sits mid-grid
func (e *Editor) CenterOnPitch(pitch int) {
	g := e.view.Grid()
	y := g.MusicalToPixel(0, g.ClampPitch(pitch)).Y
	e.view.SetScroll(viewport.Vertical, y-e.view.Extent(viewport.Vertical)/2)
}

func (e *Editor) Resize(width, height float64) {
	e.view.SetCanvasSize(width, height)
}

// Tick advances playback; call once per frame
func (e *Editor) Tick() (beat float64, playing bool) {
	beat, playing = e.transport.Tick()

	e.mu.Lock()
	resync := e.resync
	e.resync = false
	e.mu.Unlock()
	if resync && playing {
		e.transport.Resume()
	}
	return beat, playing
}

// ZoomIn shows fewer beats per column, keeping the leftmost beat in place
func (e *Editor) ZoomIn() {
	e.setZoom(e.zoom - 1)
}

func (e *Editor) ZoomOut() {
	e.setZoom(e.zoom + 1)
}

func (e *Editor) setZoom(idx int) {
	idx = grid.ClampInt(idx, 0, len(ViewScales)-1)
	if idx == e.zoom {
		return
	}
	g := e.view.Grid()
	left := e.view.ScrollOf(viewport.Horizontal) / g.BeatWidth

	e.zoom = idx
	g.BeatWidth = 1 / ViewScales[idx]
	e.view.SetGrid(g)
	e.view.SetScroll(viewport.Horizontal, left*g.BeatWidth)
	debug.Log("scroll", "zoom %g beats/col", ViewScales[idx])
}

// ZoomLabel is the zoom level for the status line
func (e *Editor) ZoomLabel() string {
	return fmt.Sprintf("%g/col", ViewScales[e.zoom])
}

func (e *Editor) SnapFiner() {
	e.setSnap(e.snapIdx - 1)
}

func (e *Editor) SnapCoarser() {
	e.setSnap(e.snapIdx + 1)
}

func (e *Editor) setSnap(idx int) {
	e.snapIdx = grid.ClampInt(idx, 0, len(SnapSteps)-1)
	g := e.view.Grid()
	g.Snap = SnapSteps[e.snapIdx]
	e.view.SetGrid(g)
	e.store.SetMinDuration(g.Snap)
}

func (e *Editor) Snap() float64 {
	return e.view.Grid().Snap
}

func (e *Editor) TempoUp() {
	e.transport.SetTempo(e.cursor.Tempo() + TempoStep)
}

func (e *Editor) TempoDown() {
	e.transport.SetTempo(e.cursor.Tempo() - TempoStep)
}

// Nudge moves the selection by snap steps horizontally and by a semitone
// (or an octave with octave set) vertically
func (e *Editor) Nudge(dx, dy int, octave bool) {
	step := NudgeVertSteps[0]
	if octave {
		step = NudgeVertSteps[1]
	}
	snap := e.Snap()
	if snap <= 0 {
		snap = SnapSteps[0]
	}
	e.ctrl.Nudge(dy*step, float64(dx)*snap)
}

// Config returns the session's current preferences for saving
func (e *Editor) Config() config.Config {
	c := e.cfg
	g := e.view.Grid()
	c.Grid.BeatWidth = g.BeatWidth
	c.Grid.Snap = g.Snap
	c.UI.LastTempo = int(e.cursor.Tempo())
	return c
}

// HandleNote handles live MIDI input: echo immediately when monitoring
func (e *Editor) HandleNote(ev midi.Event) {
	if e.cfg.MIDI.Monitor {
		e.player.Echo(ev)
	}
	if ev.Type == midi.NoteOn {
		e.SetStatus(fmt.Sprintf("in: %s", grid.PitchName(int(ev.Note))))
	}
}

// ListenInput forwards a keyboard's notes until it closes
func (e *Editor) ListenInput(in *midi.Input) {
	go func() {
		for ev := range in.Notes() {
			e.HandleNote(ev)
		}
	}()
}

// WatchPorts follows output hot-plug: the configured port (or any port when
// none is configured) is opened when it appears and dropped when it goes.
func (e *Editor) WatchPorts(ctx context.Context, w *midi.PortWatcher, open OutputOpener) {
	go w.Run(ctx)
	go func() {
		for ev := range w.Events() {
			e.handlePort(ev, open)
		}
	}()
}

func (e *Editor) handlePort(ev midi.PortEvent, open OutputOpener) {
	e.mu.Lock()
	current := e.outputName
	e.mu.Unlock()

	switch ev.Type {
	case midi.PortConnected:
		if current != "" || !e.wantsPort(ev.Name) {
			return
		}
		sender, name, err := open(ev.Name)
		if err != nil {
			e.SetStatus(fmsg.GetIssue(err))
			return
		}
		e.SetOutput(sender, name)
	case midi.PortDisconnected:
		if ev.Name == current {
			e.SetOutput(nil, "")
			e.SetStatus("output lost: " + ev.Name)
		}
	}
}

func (e *Editor) wantsPort(name string) bool {
	want := e.cfg.MIDI.OutputPort
	return want == "" || strings.Contains(strings.ToLower(name), strings.ToLower(want))
}

// SetOutput swaps the MIDI output. It may be called off the UI goroutine,
// so a running playback is picked up again by the next Tick.
func (e *Editor) SetOutput(s midi.Sender, name string) {
	e.player.SetOutput(s)
	e.mu.Lock()
	e.outputName = name
	e.resync = s != nil
	e.mu.Unlock()
	if name != "" {
		e.SetStatus("output: " + name)
	}
	e.notifyUpdate()
	debug.Log("midi", "output set to %q", name)
}

func (e *Editor) OutputName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.outputName
}

func (e *Editor) SetStatus(s string) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
	e.notifyUpdate()
}

func (e *Editor) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Close stops playback
func (e *Editor) Close() {
	e.transport.Stop()
}

// notifyUpdate wakes the TUI without blocking
func (e *Editor) notifyUpdate() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}
