package widgets

import (
	"math"
	"strconv"
)

// ThumbCells marks which of n track cells a scrollbar thumb covers. The
// thumb always covers at least one cell so it stays grabbable.
func ThumbCells(n int, pos, length float64) []bool {
	cells := make([]bool, n)
	if n <= 0 {
		return cells
	}
	from := int(math.Floor(pos))
	to := int(math.Ceil(pos + length))
	if to <= from {
		to = from + 1
	}
	from = max(0, min(from, n-1))
	to = max(from+1, min(to, n))
	for i := from; i < to; i++ {
		cells[i] = true
	}
	return cells
}

// Ruler lays beat numbers out along a meter bar of width cells. Measure
// labels land on the cell of their downbeat and are dropped if they would
// overlap the previous label.
func Ruler(width int, firstBeat, beatWidth float64, beatsPerMeasure int) []rune {
	out := make([]rune, width)
	for i := range out {
		out[i] = ' '
	}
	if beatWidth <= 0 || beatsPerMeasure <= 0 {
		return out
	}
	measure := float64(beatsPerMeasure)
	beat := math.Ceil(firstBeat/measure) * measure
	free := 0
	for {
		col := int(math.Round((beat - firstBeat) * beatWidth))
		if col >= width {
			break
		}
		label := []rune(strconv.Itoa(int(beat)/beatsPerMeasure + 1))
		if col >= free && col+len(label) <= width {
			copy(out[col:], label)
			free = col + len(label) + 1
		}
		beat += measure
	}
	return out
}
