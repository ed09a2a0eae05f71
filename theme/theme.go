package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Note       rune // █ note body
	NoteHandle rune // ▌ last cell of a note, the duration handle
	Playhead   rune // │
	Start      rune // ▼ start marker in the meter bar
	Thumb      rune // █ scrollbar thumb
	Track      rune // ░ scrollbar track
	BeatLine   rune // ┊
	Measure    rune // │
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Note:       '█',
			NoteHandle: '▌',
			Playhead:   '│',
			Start:      '▼',
			Thumb:      '█',
			Track:      '░',
			BeatLine:   '┊',
			Measure:    '│',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.25
	RoleFG      = 0.45
	RoleAccent  = 0.55
	RoleCursor  = 0.65
	RoleActive  = 0.75
	RoleWarning = 0.85
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// WhiteLane is the lane background of a white key; black keys sit on BG
func (t *Theme) WhiteLane() lipgloss.Color {
	return t.blend(RoleBG, RoleSurface, 0.6)
}

// Note is the fill of an unselected note
func (t *Theme) Note() lipgloss.Color {
	return t.Color(RoleAccent)
}

// SelectedNote tints the note colour toward the highlight
func (t *Theme) SelectedNote() lipgloss.Color {
	return t.blend(RoleAccent, RoleSuccess, 0.7)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return hex(t.Palette.Lookup(norm))
}

func (t *Theme) blend(a, b, frac float64) lipgloss.Color {
	ca, cb := t.Palette.Lookup(a), t.Palette.Lookup(b)
	return hex(ca.BlendLab(cb, frac).Clamped())
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
