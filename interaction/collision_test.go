package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"go-pianoroll/notes"
	"go-pianoroll/viewport"
)

func TestResolveWithinMovedSetEqualOnsets(t *testing.T) {
	s := notes.NewStore()
	a, _ := s.Add(60, 2, 1)
	b, _ := s.Add(60, 2, 3)

	resolveCollisions(s, []notes.ID{a, b})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(a)
	assert.True(t, ok)
}

func TestResolveLeavesOtherPitchesAlone(t *testing.T) {
	s := notes.NewStore()
	m, _ := s.Add(60, 0, 4)
	other, _ := s.Add(61, 1, 1)

	resolveCollisions(s, []notes.ID{m})

	n, ok := s.Get(other)
	assert.True(t, ok)
	assert.Equal(t, 1.0, n.Duration)
}

func TestResolveUnknownIDs(t *testing.T) {
	s := notes.NewStore()
	s.Add(60, 0, 4)
	assert.NotPanics(t, func() { resolveCollisions(s, []notes.ID{{}}) })
	assert.Equal(t, 1, s.Len())
}

func assertNoOverlaps(t *rapid.T, s *notes.Store) {
	all := s.All()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i].Overlaps(all[j]) {
				t.Fatalf("overlap: %+v and %+v", all[i], all[j])
			}
		}
	}
}

// Any sequence of gestures leaves no two same-pitch notes overlapping
func TestGesturesKeepLanesFree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := newRig(viewport.Layout{}, 2000, 2000)

		seeds := rapid.IntRange(0, 12).Draw(t, "seeds")
		for i := 0; i < seeds; i++ {
			pitch := rapid.IntRange(98, 108).Draw(t, "pitch")
			onset := float64(rapid.IntRange(0, 24).Draw(t, "onset")) / 2
			dur := float64(rapid.IntRange(1, 8).Draw(t, "dur")) / 2
			if id, ok := r.store.Add(pitch, onset, dur); ok {
				resolveCollisions(r.store, []notes.ID{id})
			}
		}
		assertNoOverlaps(t, r.store)

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			from := Pointer{
				X:     rapid.Float64Range(0, 1200).Draw(t, "x"),
				Y:     rapid.Float64Range(0, 230).Draw(t, "y"),
				Shift: rapid.Bool().Draw(t, "shift"),
			}
			if all := r.store.All(); len(all) > 0 && rapid.Bool().Draw(t, "onNote") {
				n := all[rapid.IntRange(0, len(all)-1).Draw(t, "note")]
				frac := rapid.Float64Range(0, 0.99).Draw(t, "frac")
				rect := r.view.Grid().NoteRect(n.Pitch, n.Onset, n.Duration)
				from.X = rect.X + rect.W*frac
				from.Y = rect.Y + rect.H/2
			}
			if rapid.Bool().Draw(t, "selectAll") {
				r.c.KeyDown(KeySelectAll)
			}
			dx := rapid.Float64Range(-400, 400).Draw(t, "dx")
			dy := rapid.Float64Range(-120, 120).Draw(t, "dy")
			r.drag(from, dx, dy)
			assertNoOverlaps(t, r.store)
		}
	})
}
