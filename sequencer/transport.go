package sequencer

import (
	"go-pianoroll/debug"
	"go-pianoroll/midi"
	"go-pianoroll/notes"
	"go-pianoroll/transport"
)

// Transport keeps the visual cursor and the MIDI player in step. It is the
// controller's only way to start, stop or audition.
type Transport struct {
	cursor *transport.Cursor
	player *midi.Player
	store  *notes.Store
}

func NewTransport(cursor *transport.Cursor, player *midi.Player, store *notes.Store) *Transport {
	return &Transport{cursor: cursor, player: player, store: store}
}

// Toggle plays from the start marker or stops
func (t *Transport) Toggle() {
	if t.cursor.Playing() {
		t.Stop()
		return
	}
	start := t.cursor.Start()
	t.cursor.Play(start)
	t.player.Play(t.store.All(), start, t.cursor.Tempo())
	debug.Log("transport", "play from %.2f", start)
}

func (t *Transport) Stop() {
	t.cursor.Stop()
	t.player.Stop()
	debug.Log("transport", "stop at marker %.2f", t.cursor.Start())
}

// SetStart moves the start marker without interrupting playback
func (t *Transport) SetStart(beat float64) {
	t.cursor.SetStart(beat)
	debug.Log("transport", "start marker %.2f", beat)
}

func (t *Transport) Preview(pitch int) {
	t.player.Preview(pitch)
}

// SetTempo clamps like the cursor. While playing the player is restarted
// from the current position at the new tempo.
func (t *Transport) SetTempo(bpm float64) {
	t.cursor.SetTempo(bpm)
	t.Resume()
}

// Resume restarts the player at the cursor's position if the cursor is
// playing, e.g. after the output was swapped underneath it
func (t *Transport) Resume() {
	if t.cursor.Playing() {
		t.player.Play(t.store.All(), t.cursor.Position(), t.cursor.Tempo())
	}
}

// Tick advances the cursor and stops the player once the cursor ran off
// the end of the notes
func (t *Transport) Tick() (beat float64, playing bool) {
	beat, playing = t.cursor.Tick()
	if !playing && t.player.Playing() {
		t.player.Stop()
	}
	return beat, playing
}
