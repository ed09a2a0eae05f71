package midi

import (
	"sync"
	"time"

	"go-pianoroll/debug"
	"go-pianoroll/notes"
)

// PreviewLength is how long a previewed key sounds
const PreviewLength = 250 * time.Millisecond

// Player schedules note-on/note-off over a Sender in its own goroutine.
// The notes are snapshotted at Play; edits made while playing are heard on
// the next Play.
type Player struct {
	out      Sender
	channel  uint8
	velocity uint8

	mu       sync.Mutex
	playing  bool
	stopChan chan struct{}
	done     chan struct{}
	sounding map[uint8]bool
}

// NewPlayer creates a stopped player. A nil Sender is allowed and plays
// nothing, so the editor runs without a MIDI device.
func NewPlayer(out Sender, channel, velocity uint8) *Player {
	if velocity == 0 {
		velocity = 100
	}
	return &Player{
		out:      out,
		channel:  channel & 0x0F,
		velocity: velocity,
		sounding: make(map[uint8]bool),
	}
}

// SetOutput swaps the sender, e.g. after a hot-plug. Sounding notes are
// released on the old one first.
func (p *Player) SetOutput(out Sender) {
	p.Stop()
	p.mu.Lock()
	p.out = out
	p.mu.Unlock()
}

func (p *Player) SetChannel(ch uint8) {
	p.mu.Lock()
	p.channel = ch & 0x0F
	p.mu.Unlock()
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play starts playback of ns from beat start at bpm, stopping any previous run
func (p *Player) Play(ns []notes.Note, start, bpm float64) {
	p.Stop()
	if bpm <= 0 {
		return
	}

	p.mu.Lock()
	events := Schedule(ns, start, p.channel, p.velocity)
	p.playing = true
	p.stopChan = make(chan struct{})
	p.done = make(chan struct{})
	stop, done := p.stopChan, p.done
	p.mu.Unlock()

	debug.Log("midi", "play %d events from beat %.2f at %.0f bpm", len(events), start, bpm)
	go p.run(events, bpm, stop, done)
}

// Stop halts playback and releases every sounding note. It waits for the
// scheduler goroutine to exit.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	close(p.stopChan)
	done := p.done
	p.mu.Unlock()

	<-done
	p.releaseAll()
}

// Preview sounds a single pitch for PreviewLength
func (p *Player) Preview(pitch int) {
	if pitch < notes.MinPitch || pitch > notes.MaxPitch {
		return
	}
	key := uint8(pitch)
	ch, vel := p.voice()
	p.send(Event{Type: NoteOn, Channel: ch, Note: key, Velocity: vel})
	time.AfterFunc(PreviewLength, func() {
		p.send(Event{Type: NoteOff, Channel: ch, Note: key})
	})
}

// Echo forwards a live note (keyboard monitor) to the output channel
func (p *Player) Echo(e Event) {
	e.Channel, _ = p.voice()
	p.send(e)
}

func (p *Player) voice() (channel, velocity uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel, p.velocity
}

func (p *Player) run(events []Timed, bpm float64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	secondsPerBeat := 60 / bpm
	t0 := time.Now()
	for _, ev := range events {
		due := t0.Add(time.Duration(ev.Beat * secondsPerBeat * float64(time.Second)))
		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-stop:
				timer.Stop()
				return
			case <-timer.C:
			}
		} else {
			select {
			case <-stop:
				return
			default:
			}
		}
		p.send(ev.Event)
	}

	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	debug.Log("midi", "playback finished")
}

func (p *Player) send(e Event) {
	p.mu.Lock()
	out := p.out
	switch e.Type {
	case NoteOn:
		p.sounding[e.Note] = true
	case NoteOff:
		delete(p.sounding, e.Note)
	}
	p.mu.Unlock()

	if out == nil {
		return
	}
	if err := out.Send(e); err != nil {
		debug.Log("midi", "send failed: %v", err)
	}
}

func (p *Player) releaseAll() {
	p.mu.Lock()
	keys := make([]uint8, 0, len(p.sounding))
	for k := range p.sounding {
		keys = append(keys, k)
	}
	ch := p.channel
	p.mu.Unlock()

	for _, k := range keys {
		p.send(Event{Type: NoteOff, Channel: ch, Note: k})
	}
}
