package grid

import "fmt"

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// IsBlackKey reports whether pitch falls on a black piano key
func IsBlackKey(pitch int) bool {
	switch mod(pitch, 12) {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// PitchName formats a MIDI pitch in scientific notation (60 = C4)
func PitchName(pitch int) string {
	return fmt.Sprintf("%s%d", noteNames[mod(pitch, 12)], pitch/12-1)
}

// IsOctaveLine marks the boundary above each B
func IsOctaveLine(pitch int) bool {
	return mod(pitch, 12) == 11
}

func IsMeasureLine(beat int) bool {
	return beat%BeatsPerMeasure == 0
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
