package midi

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pianoroll/notes"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Send(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestPlayerPlaysSnapshotToEnd(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, 0, 100)

	// 300 bpm: 0.2s per beat
	p.Play([]notes.Note{{Pitch: 60, Onset: 0, Duration: 0.1}}, 0, 300)

	require.Eventually(t, func() bool { return !p.Playing() }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []Event{
		{Type: NoteOn, Note: 60, Velocity: 100},
		{Type: NoteOff, Note: 60},
	}, rec.snapshot())
}

func TestPlayerStopReleasesSoundingNotes(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, 1, 0)

	p.Play([]notes.Note{{Pitch: 62, Onset: 0, Duration: 100}}, 0, 120)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)

	p.Stop()
	assert.False(t, p.Playing())
	assert.Equal(t, []Event{
		{Type: NoteOn, Channel: 1, Note: 62, Velocity: 100},
		{Type: NoteOff, Channel: 1, Note: 62},
	}, rec.snapshot())
}

func TestPlayerWithoutOutput(t *testing.T) {
	p := NewPlayer(nil, 0, 100)
	assert.NotPanics(t, func() {
		p.Play([]notes.Note{{Pitch: 60, Onset: 0, Duration: 1}}, 0, 120)
		p.Preview(60)
		p.Stop()
	})
}

func TestPreviewSendsOnThenOff(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, 0, 100)

	p.Preview(69)
	p.Preview(200)

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, NoteOff, rec.snapshot()[1].Type)
	assert.Equal(t, uint8(69), rec.snapshot()[1].Note)
}

func TestEchoUsesPlayerChannel(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(rec, 0, 100)
	p.SetChannel(9)

	p.Echo(Event{Type: NoteOn, Channel: 3, Note: 40, Velocity: 70})
	assert.Equal(t, []Event{{Type: NoteOn, Channel: 9, Note: 40, Velocity: 70}}, rec.snapshot())
}
