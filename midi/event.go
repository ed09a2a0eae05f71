package midi

import (
	"sort"

	"go-pianoroll/notes"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is one outgoing or incoming channel message
type Event struct {
	Type     uint8 // NoteOn, NoteOff
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
}

// Timed is an Event placed at a beat relative to the play start
type Timed struct {
	Beat float64
	Event
}

// Schedule turns a note snapshot into note-on/note-off events starting at
// beat from. Notes already sounding at from start immediately; notes that
// ended before from are skipped. Offs sort before ons at the same beat so a
// repeated pitch retriggers.
func Schedule(ns []notes.Note, from float64, channel, velocity uint8) []Timed {
	out := make([]Timed, 0, 2*len(ns))
	for _, n := range ns {
		if n.End() <= from || n.Pitch < notes.MinPitch || n.Pitch > notes.MaxPitch {
			continue
		}
		on := n.Onset - from
		if on < 0 {
			on = 0
		}
		key := uint8(n.Pitch)
		out = append(out,
			Timed{Beat: on, Event: Event{Type: NoteOn, Channel: channel, Note: key, Velocity: velocity}},
			Timed{Beat: n.End() - from, Event: Event{Type: NoteOff, Channel: channel, Note: key}},
		)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Beat != out[j].Beat {
			return out[i].Beat < out[j].Beat
		}
		return out[i].Type == NoteOff && out[j].Type == NoteOn
	})
	return out
}
