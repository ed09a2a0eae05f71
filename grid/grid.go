package grid

import "math"

// Pitch band and geometry defaults
const (
	DefaultMaxPitch   = 108
	DefaultMinPitch   = 21
	DefaultLaneHeight = 19.0
	DefaultBeatWidth  = 80.0
	DefaultBeatCount  = 100
	DefaultSnap       = 0.5

	BeatsPerMeasure = 4
)

// Grid describes the note grid: which pitches are drawn, how tall a lane is,
// how wide a beat is and the quantization used for edits.
type Grid struct {
	MaxPitch   int
	MinPitch   int
	LaneHeight float64 // pixels per pitch lane
	BeatWidth  float64 // pixels per beat (zoom)
	BeatCount  int     // beats of content
	Snap       float64 // beats
}

// Default returns the desktop geometry: 19px lanes, 80px beats
func Default() Grid {
	return Grid{
		MaxPitch:   DefaultMaxPitch,
		MinPitch:   DefaultMinPitch,
		LaneHeight: DefaultLaneHeight,
		BeatWidth:  DefaultBeatWidth,
		BeatCount:  DefaultBeatCount,
		Snap:       DefaultSnap,
	}
}

// Point is a pixel position
type Point struct {
	X, Y float64
}

// Position is a musical position
type Position struct {
	Pitch int
	Beat  float64
}

func (g Grid) LaneCount() int {
	return g.MaxPitch - g.MinPitch + 1
}

// TotalWidth is the content width in pixels
func (g Grid) TotalWidth() float64 {
	return float64(g.BeatCount) * g.BeatWidth
}

// TotalHeight is the content height in pixels
func (g Grid) TotalHeight() float64 {
	return float64(g.LaneCount()) * g.LaneHeight
}

// PixelToMusical maps a screen pixel to the lane and beat under it.
// origin is the screen position of the note grid's top-left corner and
// scroll the current scroll offsets. Row 0 is MaxPitch; the pitch is the
// lane containing the point, so a lane's top edge belongs to that lane.
func (g Grid) PixelToMusical(px, py float64, origin, scroll Point) Position {
	x := px - origin.X + scroll.X
	y := py - origin.Y + scroll.Y
	return g.ContentToMusical(x, y)
}

// ContentToMusical is PixelToMusical for a point already in content space
func (g Grid) ContentToMusical(x, y float64) Position {
	return Position{
		Pitch: g.MaxPitch - int(math.Floor(y/g.LaneHeight)),
		Beat:  x / g.BeatWidth,
	}
}

// MusicalToPixel returns the content-space top-left of (beat, pitch)
func (g Grid) MusicalToPixel(beat float64, pitch int) Point {
	return Point{
		X: beat * g.BeatWidth,
		Y: float64(g.MaxPitch-pitch) * g.LaneHeight,
	}
}

// ClampPitch keeps a pitch inside the drawn band
func (g Grid) ClampPitch(pitch int) int {
	return ClampInt(pitch, g.MinPitch, g.MaxPitch)
}

// SnapFloor rounds v down to a multiple of unit. Used for note creation so a
// new note never starts later than the click.
func SnapFloor(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Floor(v/unit) * unit
}

// SnapCeil rounds v up to a multiple of unit
func SnapCeil(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Ceil(v/unit-1e-9) * unit
}

// SnapRound rounds v to the nearest multiple of unit. Used for drags and
// playhead placement.
func SnapRound(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Round(v/unit) * unit
}

func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
