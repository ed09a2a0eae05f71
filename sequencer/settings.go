package sequencer

import (
	"time"

	"go-pianoroll/config"
	"go-pianoroll/grid"
	"go-pianoroll/interaction"
	"go-pianoroll/viewport"
)

// GridFrom maps the config's grid section onto the engine grid
func GridFrom(c config.GridConfig) grid.Grid {
	return grid.Grid{
		MinPitch:   c.MinPitch,
		MaxPitch:   c.MaxPitch,
		LaneHeight: c.LaneHeight,
		BeatWidth:  c.BeatWidth,
		BeatCount:  c.BeatCount,
		Snap:       c.Snap,
	}
}

func LayoutFrom(c config.LayoutConfig) viewport.Layout {
	return viewport.Layout{
		PianoBarWidth:      c.PianoBarWidth,
		MeterBarHeight:     c.MeterBarHeight,
		ScrollBarThickness: c.ScrollBarThickness,
	}
}

func OptionsFrom(c config.EditingConfig) interaction.Options {
	return interaction.Options{
		DoubleClickThreshold: time.Duration(c.DoubleClickMs) * time.Millisecond,
		DoubleClickTolerance: c.Tolerance,
		BoxThreshold:         c.BoxThreshold,
		HandleWidth:          c.HandleWidth,
		DefaultDuration:      c.DefaultDuration,
	}
}
