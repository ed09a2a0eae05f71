package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"go-pianoroll/grid"
)

// bare has no chrome so extents equal the canvas
func bare(width, height float64) *Viewport {
	return New(grid.Default(), Layout{}, width, height)
}

func TestSetScrollClampsToContent(t *testing.T) {
	g := grid.Default()
	v := bare(800, g.TotalHeight()-500)

	v.SetScroll(Vertical, 999999)
	assert.Equal(t, 500.0, v.ScrollOf(Vertical))

	v.SetScroll(Vertical, -50)
	assert.Equal(t, 0.0, v.ScrollOf(Vertical))
}

func TestSetScrollIsZeroWhenContentFits(t *testing.T) {
	g := grid.Default()
	v := bare(g.TotalWidth()+100, g.TotalHeight()+100)

	v.SetScroll(Horizontal, 300)
	v.SetScroll(Vertical, 300)
	assert.Equal(t, grid.Point{}, v.Scroll())
	assert.False(t, v.IsOverflowing(Horizontal))
	assert.False(t, v.IsOverflowing(Vertical))
}

func TestScrollBy(t *testing.T) {
	v := bare(800, 600)
	v.ScrollBy(Horizontal, 120)
	v.ScrollBy(Horizontal, 30)
	assert.Equal(t, 150.0, v.ScrollOf(Horizontal))

	v.ScrollBy(Horizontal, -1000)
	assert.Equal(t, 0.0, v.ScrollOf(Horizontal))
}

func TestExtentReservesScrollbarForOtherAxis(t *testing.T) {
	v := New(grid.Default(), DefaultLayout(), 1000, 600)

	require.True(t, v.IsOverflowing(Vertical))
	require.True(t, v.IsOverflowing(Horizontal))
	assert.Equal(t, 1000-DefaultPianoBarWidth-DefaultScrollBarThickness, v.Extent(Horizontal))
	assert.Equal(t, 600-DefaultMeterBarHeight-DefaultScrollBarThickness, v.Extent(Vertical))

	bar, ok := v.ScrollbarRect(Vertical)
	require.True(t, ok)
	assert.Equal(t, 1000-DefaultScrollBarThickness, bar.X)
	assert.Equal(t, DefaultMeterBarHeight, bar.Y)
}

func TestBarOnOneAxisCanPushTheOtherIntoOverflow(t *testing.T) {
	g := grid.Default()

	// lanes fit in the 1680px available, but not once the bottom bar takes 12
	v := New(g, DefaultLayout(), 1000, 1700)
	require.True(t, v.IsOverflowing(Horizontal))
	require.True(t, v.IsOverflowing(Vertical))
	assert.Equal(t, 1000-DefaultPianoBarWidth-DefaultScrollBarThickness, v.Extent(Horizontal))
	assert.Equal(t, g.TotalHeight()-v.Extent(Vertical), v.MaxScroll(Vertical))

	bar, ok := v.ScrollbarRect(Vertical)
	require.True(t, ok)
	assert.Equal(t, 1000-DefaultScrollBarThickness, bar.X)
	assert.LessOrEqual(t, bar.Right(), 1000.0)

	// the mirror case: beats fit until the right-hand bar is reserved
	w := g.TotalWidth() + DefaultPianoBarWidth + 5
	v = New(g, DefaultLayout(), w, 600)
	require.True(t, v.IsOverflowing(Vertical))
	require.True(t, v.IsOverflowing(Horizontal))
	bar, ok = v.ScrollbarRect(Horizontal)
	require.True(t, ok)
	assert.Equal(t, 600-DefaultScrollBarThickness, bar.Y)
	assert.Equal(t, 7.0, v.MaxScroll(Horizontal))

	// neither bar is needed when both axes fit with room for the other's bar
	v = New(g, DefaultLayout(), w+DefaultScrollBarThickness, g.TotalHeight()+DefaultMeterBarHeight+DefaultScrollBarThickness)
	assert.False(t, v.IsOverflowing(Horizontal))
	assert.False(t, v.IsOverflowing(Vertical))
}

func TestResizeReclampsScroll(t *testing.T) {
	g := grid.Default()
	v := bare(800, 600)
	v.SetScroll(Vertical, g.TotalHeight())
	v.SetCanvasSize(800, g.TotalHeight())
	assert.Equal(t, 0.0, v.ScrollOf(Vertical))
}

func TestZoomReclampsScroll(t *testing.T) {
	v := bare(800, 600)
	v.SetScroll(Horizontal, 7000)

	g := v.Grid()
	g.BeatWidth = 10
	v.SetGrid(g)
	assert.Equal(t, 1000.0-800, v.ScrollOf(Horizontal))
}

func TestThumbGeometry(t *testing.T) {
	g := grid.Default()
	v := bare(800, g.TotalHeight()-500)
	track := v.Extent(Vertical)

	th := v.Thumb(Vertical)
	assert.InDelta(t, track*track/g.TotalHeight(), th.Len, 1e-9)
	assert.Equal(t, 0.0, th.Pos)

	v.SetScroll(Vertical, 500)
	th = v.Thumb(Vertical)
	assert.InDelta(t, track, th.Pos+th.Len, 1e-9)
}

func TestThumbFillsTrackWhenContentFits(t *testing.T) {
	g := grid.Default()
	v := bare(800, g.TotalHeight()+10)
	th := v.Thumb(Vertical)
	assert.Equal(t, Thumb{Pos: 0, Len: v.Extent(Vertical)}, th)
	assert.Equal(t, 0.0, v.ScrollForThumb(Vertical, 40))

	_, ok := v.ThumbRect(Vertical)
	assert.False(t, ok)
}

func TestScreenContentRoundTrip(t *testing.T) {
	v := New(grid.Default(), DefaultLayout(), 1000, 600)
	v.SetScroll(Horizontal, 250)
	v.SetScroll(Vertical, 90)

	c := v.ScreenToContent(300, 200)
	assert.Equal(t, grid.Point{X: 300 - 80 + 250, Y: 200 - 20 + 90}, c)
	assert.Equal(t, grid.Point{X: 300, Y: 200}, v.ContentToScreen(c))
}

func TestThumbInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(200, 4000).Draw(t, "width")
		h := rapid.Float64Range(200, 1600).Draw(t, "height")
		v := New(grid.Default(), DefaultLayout(), w, h)
		axis := Axis(rapid.IntRange(0, 1).Draw(t, "axis"))

		scroll := rapid.Float64Range(0, v.MaxScroll(axis)).Draw(t, "scroll")
		v.SetScroll(axis, scroll)

		got := v.ScrollForThumb(axis, v.Thumb(axis).Pos)
		if v.MaxScroll(axis) > 0 && (got-scroll > 1e-6 || scroll-got > 1e-6) {
			t.Fatalf("thumb inverse: scroll %v came back as %v", scroll, got)
		}

		th := v.Thumb(axis)
		if th.Pos < -1e-9 || th.Pos+th.Len > v.Extent(axis)+1e-9 {
			t.Fatalf("thumb %+v escapes track %v", th, v.Extent(axis))
		}
	})
}

func TestScrollbarsStayOnCanvas(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(200, 8200).Draw(t, "width")
		h := rapid.Float64Range(200, 1800).Draw(t, "height")
		v := New(grid.Default(), DefaultLayout(), w, h)

		for _, axis := range []Axis{Horizontal, Vertical} {
			bar, ok := v.ScrollbarRect(axis)
			if ok && (bar.Right() > w+1e-9 || bar.Bottom() > h+1e-9) {
				t.Fatalf("%s bar %+v leaves the %vx%v canvas", axis, bar, w, h)
			}
		}
	})
}
