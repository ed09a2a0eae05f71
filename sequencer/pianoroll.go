package sequencer

import "go-pianoroll/notes"

// View scales: beats per column
var ViewScales = []float64{
	0.03125, // 1/32 per col - super zoomed
	0.0625,  // 1/16 per col
	0.125,   // 1/8 per col
	0.25,    // 1/4 per col
	0.5,     // 1/2 per col
	1.0,     // 1 beat per col - zoomed out
}

// Snap steps in beats
var SnapSteps = []float64{
	0.0625, // 1/16
	0.125,  // 1/8
	0.25,   // 1/4
	0.5,    // 1/2
	1.0,    // 1 beat
}

var NudgeVertSteps = []int{1, 12} // semitone, octave

// DemoNotes is a chord and a short falling line
var DemoNotes = []notes.Note{
	{Pitch: 60, Onset: 0, Duration: 4},
	{Pitch: 64, Onset: 0, Duration: 4},
	{Pitch: 71, Onset: 0, Duration: 4},
	{Pitch: 84, Onset: 5, Duration: 1},
	{Pitch: 83, Onset: 6, Duration: 1},
	{Pitch: 79, Onset: 7, Duration: 2},
}

// nearest returns the index of the level closest to v
func nearest(levels []float64, v float64) int {
	best := 0
	for i, l := range levels {
		if abs(l-v) < abs(levels[best]-v) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
