package notes

import "github.com/google/uuid"

// MIDI pitch range a note may hold
const (
	MinPitch = 0
	MaxPitch = 127
)

// ID identifies a note for the lifetime of a store
type ID = uuid.UUID

// Note is a single note in beats
type Note struct {
	ID       ID
	Pitch    int
	Onset    float64
	Duration float64
}

// End is the exclusive end of the note in beats
func (n Note) End() float64 {
	return n.Onset + n.Duration
}

// Overlaps reports whether two notes share a pitch and their
// [onset, end) intervals intersect
func (n Note) Overlaps(o Note) bool {
	return n.Pitch == o.Pitch && n.Onset < o.End() && o.Onset < n.End()
}

// Patch is a partial update; nil fields are left alone
type Patch struct {
	Pitch    *int
	Onset    *float64
	Duration *float64
}

func (p Patch) WithPitch(v int) Patch {
	p.Pitch = &v
	return p
}

func (p Patch) WithOnset(v float64) Patch {
	p.Onset = &v
	return p
}

func (p Patch) WithDuration(v float64) Patch {
	p.Duration = &v
	return p
}

// SetPitch, SetOnset and SetDuration start a patch with one field
func SetPitch(v int) Patch { return Patch{}.WithPitch(v) }
func SetOnset(v float64) Patch { return Patch{}.WithOnset(v) }
func SetDuration(v float64) Patch { return Patch{}.WithDuration(v) }

// Move patches pitch and onset together
func Move(pitch int, onset float64) Patch {
	return Patch{}.WithPitch(pitch).WithOnset(onset)
}
