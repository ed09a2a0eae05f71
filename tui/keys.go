package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-pianoroll/widgets"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	Play        key.Binding
	Delete      key.Binding
	SelectAll   key.Binding
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	OctaveUp    key.Binding
	OctaveDown  key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	SnapFiner   key.Binding
	SnapCoarser key.Binding
	TempoUp     key.Binding
	TempoDown   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Play:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop")),
	Delete:      key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "delete selected")),
	SelectAll:   Key("select all", "ctrl+a"),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier by snap")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later by snap")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "semitone up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "semitone down")),
	OctaveUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "octave up")),
	OctaveDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "octave down")),
	ZoomIn:      Key("zoom in", "]"),
	ZoomOut:     Key("zoom out", "["),
	SnapFiner:   Key("finer snap", ","),
	SnapCoarser: Key("coarser snap", "."),
	TempoUp:     Key("tempo +5", "+", "="),
	TempoDown:   Key("tempo -5", "-", "_"),
	Help:        Key("toggle help", "?"),
	Quit:        Key("quit", "q", "ctrl+c"),
}

// ShortHelp is the one-line help under the grid
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Delete, k.ZoomIn, k.ZoomOut, k.TempoUp, k.TempoDown, k.Help, k.Quit}
}

// Sections lists every binding plus the mouse gestures for the help page
func (k keyMap) Sections() []widgets.KeySection {
	return []widgets.KeySection{
		widgets.Section("Transport", k.Play, k.TempoUp, k.TempoDown),
		widgets.Section("Selection", k.SelectAll, k.Delete, k.Left, k.Right, k.Up, k.Down, k.OctaveUp, k.OctaveDown),
		widgets.Section("View", k.ZoomIn, k.ZoomOut, k.SnapFiner, k.SnapCoarser),
		{
			Title: "Mouse",
			Keys: []widgets.KeyBinding{
				{Key: "double-click", Desc: "add a note"},
				{Key: "drag note", Desc: "move (right edge: resize)"},
				{Key: "drag grid", Desc: "box select (shift adds)"},
				{Key: "click ruler", Desc: "set start marker"},
				{Key: "click keys", Desc: "preview pitch"},
				{Key: "wheel", Desc: "scroll (shift: sideways)"},
			},
		},
		widgets.Section("", k.Help, k.Quit),
	}
}
