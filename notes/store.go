package notes

import (
	"sort"

	"github.com/google/uuid"
)

// DefaultMinDuration is the shortest note a store accepts until the editor
// sets its own minimum (normally the snap unit)
const DefaultMinDuration = 0.25

// Store owns the notes of an editing session and the selection set.
//
// Mutators never fail: unknown ids are ignored and out-of-range values are
// clamped, so gesture handlers can race a deletion without checking first.
// The store does not resolve overlaps; that is the caller's job once a
// gesture completes.
type Store struct {
	notes       []Note // insertion order
	selected    map[ID]struct{}
	minDuration float64
	newID       func() ID
}

// Option configures a Store
type Option func(*Store)

// WithMinDuration sets the duration that non-positive writes clamp to
func WithMinDuration(d float64) Option {
	return func(s *Store) {
		if d > 0 {
			s.minDuration = d
		}
	}
}

// WithIDSource replaces the uuid generator (tests use it for stable ids)
func WithIDSource(f func() ID) Option {
	return func(s *Store) {
		s.newID = f
	}
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		selected:    make(map[ID]struct{}),
		minDuration: DefaultMinDuration,
		newID:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMinDuration changes the clamp floor for durations
func (s *Store) SetMinDuration(d float64) {
	if d > 0 {
		s.minDuration = d
	}
}

func (s *Store) MinDuration() float64 {
	return s.minDuration
}

// Seed adds notes in bulk, ignoring their ids. Duplicates are skipped like Add.
func (s *Store) Seed(seed []Note) []ID {
	var ids []ID
	for _, n := range seed {
		if id, ok := s.Add(n.Pitch, n.Onset, n.Duration); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Add creates a note and returns its id. If a note with the same pitch, onset
// and duration already exists nothing is added and ok is false; a double-fired
// gesture must not stack identical notes. The new note is not selected.
func (s *Store) Add(pitch int, onset, duration float64) (id ID, ok bool) {
	n := s.sanitize(Note{Pitch: pitch, Onset: onset, Duration: duration})
	for _, existing := range s.notes {
		if existing.Pitch == n.Pitch && existing.Onset == n.Onset && existing.Duration == n.Duration {
			return uuid.Nil, false
		}
	}
	n.ID = s.newID()
	s.notes = append(s.notes, n)
	return n.ID, true
}

// Update applies a partial patch. Unknown ids are a no-op.
func (s *Store) Update(id ID, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	n := s.notes[i]
	if p.Pitch != nil {
		n.Pitch = *p.Pitch
	}
	if p.Onset != nil {
		n.Onset = *p.Onset
	}
	if p.Duration != nil {
		n.Duration = *p.Duration
	}
	s.notes[i] = s.sanitize(n)
	return true
}

// Delete removes a note and prunes it from the selection
func (s *Store) Delete(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	delete(s.selected, id)
	return true
}

// DeleteSelected removes every selected note and returns their ids
func (s *Store) DeleteSelected() []ID {
	var removed []ID
	kept := s.notes[:0]
	for _, n := range s.notes {
		if _, ok := s.selected[n.ID]; ok {
			removed = append(removed, n.ID)
			continue
		}
		kept = append(kept, n)
	}
	s.notes = kept
	s.selected = make(map[ID]struct{})
	return removed
}

// Selection

func (s *Store) Select(id ID) {
	if s.index(id) >= 0 {
		s.selected[id] = struct{}{}
	}
}

func (s *Store) Deselect(id ID) {
	delete(s.selected, id)
}

func (s *Store) ToggleSelect(id ID) {
	if s.IsSelected(id) {
		s.Deselect(id)
		return
	}
	s.Select(id)
}

func (s *Store) ClearSelection() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[ID]struct{})
}

func (s *Store) SelectAll() {
	for _, n := range s.notes {
		s.selected[n.ID] = struct{}{}
	}
}

// Queries

func (s *Store) IsSelected(id ID) bool {
	_, ok := s.selected[id]
	return ok
}

// Get returns a copy of a note
func (s *Store) Get(id ID) (Note, bool) {
	i := s.index(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

func (s *Store) Len() int {
	return len(s.notes)
}

// All returns a copy of every note in ascending onset order, ties broken by
// pitch then insertion. Renderers draw in this order.
func (s *Store) All() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	sortNotes(out)
	return out
}

// Selected returns the selected notes in the same order as All
func (s *Store) Selected() []Note {
	var out []Note
	for _, n := range s.notes {
		if _, ok := s.selected[n.ID]; ok {
			out = append(out, n)
		}
	}
	sortNotes(out)
	return out
}

// SelectedIDs returns the ids of the selected notes in note order
func (s *Store) SelectedIDs() []ID {
	sel := s.Selected()
	ids := make([]ID, len(sel))
	for i, n := range sel {
		ids[i] = n.ID
	}
	return ids
}

// End is the end-of-notes boundary: the latest note end, or 0 when empty
func (s *Store) End() float64 {
	end := 0.0
	for _, n := range s.notes {
		if e := n.End(); e > end {
			end = e
		}
	}
	return end
}

// At returns the note sounding at pitch on beat, if any. When overlapping
// notes exist the earliest onset wins.
func (s *Store) At(pitch int, beat float64) (Note, bool) {
	for _, n := range s.All() {
		if n.Pitch == pitch && n.Onset <= beat && beat < n.End() {
			return n, true
		}
	}
	return Note{}, false
}

func (s *Store) index(id ID) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) sanitize(n Note) Note {
	if n.Pitch < MinPitch {
		n.Pitch = MinPitch
	}
	if n.Pitch > MaxPitch {
		n.Pitch = MaxPitch
	}
	if n.Onset < 0 {
		n.Onset = 0
	}
	if n.Duration <= 0 {
		n.Duration = s.minDuration
	}
	return n
}

func sortNotes(ns []Note) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Onset != ns[j].Onset {
			return ns[i].Onset < ns[j].Onset
		}
		return ns[i].Pitch < ns[j].Pitch
	})
}
