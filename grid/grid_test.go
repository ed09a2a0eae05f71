package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPixelToMusicalRowZeroIsMaxPitch(t *testing.T) {
	g := Default()
	origin := Point{X: 80, Y: 20}

	pos := g.PixelToMusical(80, 20, origin, Point{})
	assert.Equal(t, 108, pos.Pitch)
	assert.Equal(t, 0.0, pos.Beat)

	// Anywhere inside the first lane still maps to MaxPitch
	pos = g.PixelToMusical(80, 20+18.9, origin, Point{})
	assert.Equal(t, 108, pos.Pitch)

	pos = g.PixelToMusical(80, 20+19, origin, Point{})
	assert.Equal(t, 107, pos.Pitch)
}

func TestPixelToMusicalAppliesScroll(t *testing.T) {
	g := Default()
	pos := g.PixelToMusical(80+40, 20, Point{X: 80, Y: 20}, Point{X: 160, Y: 19 * 10})
	assert.Equal(t, 2.5, pos.Beat)
	assert.Equal(t, 98, pos.Pitch)
}

func TestMusicalToPixel(t *testing.T) {
	g := Default()
	p := g.MusicalToPixel(2, 60)
	assert.Equal(t, 160.0, p.X)
	assert.Equal(t, float64(108-60)*19, p.Y)
}

func TestSnapPolicies(t *testing.T) {
	assert.Equal(t, 1.5, SnapFloor(1.99, 0.5))
	assert.Equal(t, 2.0, SnapRound(1.99, 0.5))
	assert.Equal(t, 1.5, SnapRound(1.7, 0.5))
	assert.Equal(t, 0.0, SnapFloor(0.2, 0.5))
	assert.Equal(t, 1.23, SnapRound(1.23, 0))
	assert.Equal(t, 1.0, SnapCeil(0.75, 0.5))
	assert.Equal(t, 1.0, SnapCeil(1.0, 0.5))
	assert.Equal(t, 0.75, SnapCeil(0.75, 0))
}

func TestRectIntersectsIsStrict(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 200, H: 200}
	assert.True(t, a.Intersects(Rect{X: 199, Y: 199, W: 10, H: 10}))
	assert.False(t, a.Intersects(Rect{X: 200, Y: 0, W: 10, H: 10}))
	assert.False(t, a.Intersects(Rect{X: 0, Y: -10, W: 10, H: 10}))
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Point{X: 10, Y: 40}, Point{X: 0, Y: 5})
	assert.Equal(t, Rect{X: 0, Y: 5, W: 10, H: 35}, r)
}

func TestPitchHelpers(t *testing.T) {
	assert.Equal(t, "C4", PitchName(60))
	assert.Equal(t, "A0", PitchName(21))
	assert.Equal(t, "C#-1", PitchName(1))
	assert.True(t, IsBlackKey(61))
	assert.False(t, IsBlackKey(64))
	assert.True(t, IsOctaveLine(71))
	assert.True(t, IsMeasureLine(8))
	assert.False(t, IsMeasureLine(6))
}

func TestRoundTripBeatIsLossless(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := Default()
		beat := rapid.Float64Range(0, float64(g.BeatCount)).Draw(t, "beat")
		pitch := rapid.IntRange(g.MinPitch, g.MaxPitch).Draw(t, "pitch")

		p := g.MusicalToPixel(beat, pitch)
		pos := g.ContentToMusical(p.X, p.Y)

		if pos.Pitch != pitch {
			t.Fatalf("pitch %d came back as %d", pitch, pos.Pitch)
		}
		if diff := pos.Beat - beat; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("beat %v came back as %v", beat, pos.Beat)
		}
	})
}

func TestRoundTripPixelFloorsToLaneTop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := Default()
		x := rapid.Float64Range(0, g.TotalWidth()).Draw(t, "x")
		y := rapid.Float64Range(0, g.TotalHeight()-1).Draw(t, "y")

		pos := g.ContentToMusical(x, y)
		p := g.MusicalToPixel(pos.Beat, pos.Pitch)

		if d := p.X - x; d > 1e-9 || d < -1e-9 {
			t.Fatalf("x %v came back as %v", x, p.X)
		}
		if p.Y > y || y-p.Y >= g.LaneHeight {
			t.Fatalf("y %v mapped to lane top %v", y, p.Y)
		}
	})
}
