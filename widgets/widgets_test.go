package widgets

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestThumbCells(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		pos, length float64
		want        []bool
	}{
		{"whole track", 4, 0, 4, []bool{true, true, true, true}},
		{"middle", 5, 1.5, 2, []bool{false, true, true, true, false}},
		{"tiny thumb still shows", 4, 3.9, 0.05, []bool{false, false, false, true}},
		{"past the end", 3, 5, 1, []bool{false, false, true}},
		{"empty", 0, 0, 1, []bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThumbCells(tt.n, tt.pos, tt.length))
		})
	}
}

func TestRulerLabelsMeasures(t *testing.T) {
	assert.Equal(t, "1   2   3 ", string(Ruler(10, 0, 1, 4)))
	assert.Equal(t, "  2   3   ", string(Ruler(10, 2, 1, 4)))
	// labels too close together are dropped
	assert.Equal(t, "1 3 5", string(Ruler(5, 0, 1, 1)))
}

func TestSectionSkipsDisabledBindings(t *testing.T) {
	play := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop"))
	off := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "nothing"), key.WithDisabled())

	sec := Section("Transport", play, off)

	assert.Equal(t, []KeyBinding{{Key: "space", Desc: "play/stop"}}, sec.Keys)
	assert.Equal(t, "Transport\n  space        play/stop", RenderKeyHelp([]KeySection{sec}))
}
