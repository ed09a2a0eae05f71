package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/theme"
	"go-pianoroll/viewport"
)

// octave from C4 to B4, two measures of four cells per beat
func smallView(w, h float64) *viewport.Viewport {
	g := grid.Grid{MaxPitch: 71, MinPitch: 60, LaneHeight: 1, BeatWidth: 4, BeatCount: 8, Snap: 0.5}
	layout := viewport.Layout{PianoBarWidth: 4, MeterBarHeight: 1, ScrollBarThickness: 1}
	return viewport.New(g, layout, w, h)
}

func note(pitch int, onset, duration float64) notes.Note {
	return notes.Note{ID: notes.ID{byte(pitch), byte(onset * 4)}, Pitch: pitch, Onset: onset, Duration: duration}
}

func TestPaintNotesAndGridlines(t *testing.T) {
	th := theme.New(nil)
	n := note(71, 1, 2)
	c := paint(Frame{View: smallView(36, 13), Notes: []notes.Note{n}}, th)

	for x := 8; x < 15; x++ {
		assert.Equal(t, th.Symbols.Note, c.at(x, 1).r, "x=%d", x)
	}
	assert.Equal(t, th.Symbols.NoteHandle, c.at(15, 1).r)
	assert.Equal(t, th.Note(), c.at(8, 1).fg)

	assert.Equal(t, th.Symbols.BeatLine, c.at(16, 1).r)
	assert.Equal(t, th.Symbols.Measure, c.at(20, 1).r)
	assert.Equal(t, ' ', c.at(4, 1).r, "no line at the left edge")

	// black and white lanes differ
	assert.Equal(t, th.WhiteLane(), c.at(30, 1).bg) // B4
	assert.Equal(t, th.BG(), c.at(30, 2).bg)        // A#4
}

func TestPaintEarliestNoteOnTop(t *testing.T) {
	th := theme.New(nil)
	long, short := note(71, 0, 4), note(71, 1, 1)
	c := paint(Frame{
		View:     smallView(36, 13),
		Notes:    []notes.Note{long, short},
		Selected: map[notes.ID]bool{long.ID: true},
	}, th)

	assert.Equal(t, th.SelectedNote(), c.at(9, 1).fg)
}

func TestPaintChrome(t *testing.T) {
	th := theme.New(nil)
	c := paint(Frame{View: smallView(36, 13), Start: 2, Playing: true, Playhead: 5}, th)

	assert.Equal(t, '1', c.at(4, 0).r)
	assert.Equal(t, '2', c.at(20, 0).r)
	assert.Equal(t, th.Symbols.Start, c.at(12, 0).r)

	assert.Equal(t, th.Symbols.Playhead, c.at(24, 5).r)
	assert.Equal(t, th.Cursor(), c.at(24, 5).fg)

	// C4 is the bottom lane
	assert.Equal(t, 'C', c.at(1, 12).r)
	assert.Equal(t, '4', c.at(2, 12).r)
	assert.Equal(t, th.FG(), c.at(0, 12).bg)
}

func TestPaintSelectionBox(t *testing.T) {
	th := theme.New(nil)
	c := paint(Frame{View: smallView(36, 13), Box: grid.Rect{X: 6, Y: 2, W: 4, H: 3}, ShowBox: true}, th)

	assert.Equal(t, '┌', c.at(6, 2).r)
	assert.Equal(t, '┐', c.at(9, 2).r)
	assert.Equal(t, '└', c.at(6, 4).r)
	assert.Equal(t, '┘', c.at(9, 4).r)
	assert.Equal(t, '─', c.at(7, 2).r)
	assert.Equal(t, '│', c.at(6, 3).r)
}

func TestPaintScrollbarsWhenOverflowing(t *testing.T) {
	th := theme.New(nil)
	c := paint(Frame{View: smallView(20, 8)}, th)

	for y := 1; y <= 3; y++ {
		assert.Equal(t, th.Symbols.Thumb, c.at(19, y).r, "y=%d", y)
	}
	assert.Equal(t, th.Symbols.Track, c.at(19, 4).r)
	assert.Equal(t, th.Symbols.Thumb, c.at(4, 7).r)
	assert.Equal(t, th.Symbols.Track, c.at(18, 7).r)

	// no scrollbars when everything fits
	c = paint(Frame{View: smallView(36, 13)}, th)
	assert.NotContains(t, c.Plain(), string(th.Symbols.Track))
}

func TestRenderHasOneLinePerRow(t *testing.T) {
	out := Render(Frame{View: smallView(36, 13)}, theme.New(nil))
	assert.Equal(t, 13, len(strings.Split(out, "\n")))
}
