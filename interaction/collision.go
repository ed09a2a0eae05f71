package interaction

import (
	"sort"

	"go-pianoroll/debug"
	"go-pianoroll/notes"
)

// resolveCollisions restores the no-overlap invariant after the notes in
// moved changed. Moved notes always win against stationary ones:
//
//	S starts before M and runs into it -> S is cut at M's onset
//	S starts inside M                  -> S is deleted
//
// Overlaps inside the moved set cut the earlier note at the later onset.
func resolveCollisions(s *notes.Store, moved []notes.ID) {
	movedSet := make(map[notes.ID]struct{}, len(moved))
	var ms []notes.Note
	for _, id := range moved {
		if n, ok := s.Get(id); ok {
			movedSet[id] = struct{}{}
			ms = append(ms, n)
		}
	}
	if len(ms) == 0 {
		return
	}

	resolveWithin(s, ms)

	truncated, deleted := 0, 0
	for _, id := range moved {
		m, ok := s.Get(id)
		if !ok {
			continue
		}
		for _, st := range s.All() {
			if _, isMoved := movedSet[st.ID]; isMoved || st.Pitch != m.Pitch {
				continue
			}
			switch {
			case st.Onset < m.Onset && m.Onset < st.End():
				if d := m.Onset - st.Onset; d > 0 {
					s.Update(st.ID, notes.SetDuration(d))
					truncated++
				} else {
					s.Delete(st.ID)
					deleted++
				}
			case m.Onset <= st.Onset && st.Onset < m.End():
				s.Delete(st.ID)
				deleted++
			}
		}
	}
	if truncated+deleted > 0 {
		debug.Log("store", "collisions: %d truncated, %d deleted", truncated, deleted)
	}
}

func resolveWithin(s *notes.Store, ms []notes.Note) {
	byPitch := make(map[int][]notes.Note)
	for _, n := range ms {
		byPitch[n.Pitch] = append(byPitch[n.Pitch], n)
	}
	for _, lane := range byPitch {
		if len(lane) < 2 {
			continue
		}
		sort.SliceStable(lane, func(i, j int) bool { return lane[i].Onset < lane[j].Onset })

		prev := lane[0]
		for _, n := range lane[1:] {
			if n.Onset == prev.Onset {
				s.Delete(n.ID)
				continue
			}
			if prev.End() > n.Onset {
				s.Update(prev.ID, notes.SetDuration(n.Onset-prev.Onset))
			}
			prev = n
		}
	}
}
