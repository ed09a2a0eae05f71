package transport

import (
	"time"
)

// Tempo limits and default
const (
	MinTempo     = 20
	MaxTempo     = 300
	DefaultTempo = 120
)

// State of the playback cursor
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "PLAY"
	}
	return "STOP"
}

// Bounds reports the end-of-notes boundary the cursor stops at
type Bounds interface {
	End() float64
}

// Cursor advances a play position in beats over wall-clock time.
// It only reads Bounds; the note collection is never touched.
type Cursor struct {
	state    State
	bpm      float64
	start    float64   // last explicit start position (the start marker)
	position float64   // current beat
	base     float64   // beat at t0
	t0       time.Time // wall-clock time timing was (re)started
	bounds   Bounds
	now      func() time.Time
}

// Option configures a Cursor
type Option func(*Cursor)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Cursor) {
		c.now = now
	}
}

// WithBounds makes the cursor stop once it passes bounds.End()
func WithBounds(b Bounds) Option {
	return func(c *Cursor) {
		c.bounds = b
	}
}

// NewCursor creates a stopped cursor at beat 0
func NewCursor(bpm float64, opts ...Option) *Cursor {
	c := &Cursor{
		bpm: DefaultTempo,
		now: time.Now,
	}
	c.SetTempo(bpm)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play starts from startBeat, which also becomes the start marker
func (c *Cursor) Play(startBeat float64) {
	if startBeat < 0 {
		startBeat = 0
	}
	c.start = startBeat
	c.position = startBeat
	c.base = startBeat
	c.t0 = c.now()
	c.state = Playing
}

// Stop halts playback and returns to the start marker
func (c *Cursor) Stop() {
	c.state = Stopped
	c.position = c.start
}

// Toggle plays from the start marker or stops
func (c *Cursor) Toggle() State {
	if c.state == Playing {
		c.Stop()
	} else {
		c.Play(c.start)
	}
	return c.state
}

// Tick advances the position from the wall clock. Call once per frame.
func (c *Cursor) Tick() (beat float64, playing bool) {
	if c.state != Playing {
		return c.position, false
	}
	elapsed := c.now().Sub(c.t0).Seconds()
	c.position = c.base + elapsed*(c.bpm/60)

	if c.bounds != nil && c.position > c.bounds.End() {
		c.Stop()
		return c.position, false
	}
	return c.position, true
}

// SetStart moves the start marker. A playing cursor keeps playing; the new
// marker takes effect on the next Play or Stop.
func (c *Cursor) SetStart(beat float64) {
	if beat < 0 {
		beat = 0
	}
	c.start = beat
	if c.state == Stopped {
		c.position = beat
	}
}

// SetTempo clamps bpm to [MinTempo, MaxTempo]. While playing the position
// is rebased so the tempo change doesn't make the cursor jump.
func (c *Cursor) SetTempo(bpm float64) {
	if bpm < MinTempo {
		bpm = MinTempo
	}
	if bpm > MaxTempo {
		bpm = MaxTempo
	}
	if c.state == Playing {
		if pos, playing := c.Tick(); playing {
			c.base = pos
			c.t0 = c.now()
		}
	}
	c.bpm = bpm
}

func (c *Cursor) Tempo() float64    { return c.bpm }
func (c *Cursor) State() State      { return c.state }
func (c *Cursor) Playing() bool     { return c.state == Playing }
func (c *Cursor) Position() float64 { return c.position }
func (c *Cursor) Start() float64    { return c.start }
