package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/grid"
	"go-pianoroll/notes"
	"go-pianoroll/theme"
	"go-pianoroll/viewport"
	"go-pianoroll/widgets"
)

// Frame is everything the renderer needs for one picture. It is a read-only
// snapshot; rendering never touches the store or the viewport.
type Frame struct {
	View     *viewport.Viewport
	Notes    []notes.Note // ascending onset
	Selected map[notes.ID]bool
	Playhead float64
	Playing  bool
	Start    float64
	Box      grid.Rect // screen space
	ShowBox  bool
}

// Render draws a frame at one terminal cell per pixel
func Render(f Frame, th *theme.Theme) string {
	return paint(f, th).Render()
}

type cell struct {
	r      rune
	fg, bg lipgloss.Color
	note   bool
}

type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int, bg lipgloss.Color) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', bg: bg}
	}
	return c
}

func (c *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *canvas) at(x, y int) *cell {
	if !c.inside(x, y) {
		return &cell{}
	}
	return &c.cells[y*c.w+x]
}

// put writes a rune; an empty colour keeps the cell's current one
func (c *canvas) put(x, y int, r rune, fg, bg lipgloss.Color) {
	if !c.inside(x, y) {
		return
	}
	cl := c.at(x, y)
	cl.r = r
	if fg != "" {
		cl.fg = fg
	}
	if bg != "" {
		cl.bg = bg
	}
}

// Plain is the canvas without colour, one line per row
func (c *canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.at(x, y).r)
		}
	}
	return b.String()
}

// Render styles runs of equally coloured cells together
func (c *canvas) Render() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var line strings.Builder
		x := 0
		for x < c.w {
			first := c.at(x, y)
			var run []rune
			for x < c.w {
				cl := c.at(x, y)
				if cl.fg != first.fg || cl.bg != first.bg {
					break
				}
				run = append(run, cl.r)
				x++
			}
			style := lipgloss.NewStyle().Background(first.bg)
			if first.fg != "" {
				style = style.Foreground(first.fg)
			}
			line.WriteString(style.Render(string(run)))
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func paint(f Frame, th *theme.Theme) *canvas {
	w, h := f.View.CanvasSize()
	c := newCanvas(int(w), int(h), th.BG())
	r := renderer{f: f, th: th, c: c, v: f.View, g: f.View.Grid()}

	r.lanes()
	r.notes()
	r.playhead()
	r.meterBar()
	r.pianoBar()
	r.box()
	r.scrollbar(viewport.Vertical)
	r.scrollbar(viewport.Horizontal)
	return c
}

type renderer struct {
	f  Frame
	th *theme.Theme
	c  *canvas
	v  *viewport.Viewport
	g  grid.Grid
}

// gridCells is the note grid in whole cells
func (r *renderer) gridCells() (x0, y0, x1, y1 int) {
	gr := r.v.NoteGridRect()
	return int(gr.X), int(gr.Y), int(gr.X + gr.W), int(gr.Y + gr.H)
}

// pitchAt is the pitch of a screen row, ok false below the lowest lane
func (r *renderer) pitchAt(row int) (int, bool) {
	cy := float64(row) - r.v.Origin().Y + r.v.ScrollOf(viewport.Vertical) + 0.5
	if cy < 0 || cy >= r.g.TotalHeight() {
		return 0, false
	}
	return r.g.ContentToMusical(0, cy).Pitch, true
}

func (r *renderer) laneBG(pitch int) lipgloss.Color {
	if grid.IsBlackKey(pitch) {
		return r.th.BG()
	}
	return r.th.WhiteLane()
}

// column maps a beat to its screen column
func (r *renderer) column(beat float64) int {
	return int(math.Floor(beat*r.g.BeatWidth - r.v.ScrollOf(viewport.Horizontal) + r.v.Origin().X))
}

func (r *renderer) lanes() {
	x0, y0, x1, y1 := r.gridCells()
	bw := r.g.BeatWidth
	scrollX := r.v.ScrollOf(viewport.Horizontal)

	for y := y0; y < y1; y++ {
		pitch, ok := r.pitchAt(y)
		if !ok {
			continue
		}
		bg := r.laneBG(pitch)
		for x := x0; x < x1; x++ {
			cx := float64(x-x0) + scrollX
			if cx >= r.g.TotalWidth() {
				break
			}
			r.c.put(x, y, ' ', "", bg)

			// the cell holding a beat boundary gets a line when beats are wide enough to tell apart
			if bw < 2 {
				continue
			}
			k := math.Ceil(cx / bw)
			if k*bw >= cx+1 || k == 0 {
				continue
			}
			if grid.IsMeasureLine(int(k)) {
				r.c.put(x, y, r.th.Symbols.Measure, r.th.Muted(), bg)
			} else {
				r.c.put(x, y, r.th.Symbols.BeatLine, r.th.Surface(), bg)
			}
		}
	}
}

// notes paints latest first so the earliest note ends up on top, matching
// which note a click picks
func (r *renderer) notes() {
	x0, y0, x1, y1 := r.gridCells()
	for i := len(r.f.Notes) - 1; i >= 0; i-- {
		n := r.f.Notes[i]
		rect := r.g.NoteRect(n.Pitch, n.Onset, n.Duration)
		s := r.v.ContentToScreen(grid.Point{X: rect.X, Y: rect.Y})

		left := int(math.Floor(s.X))
		right := int(math.Ceil(s.X+rect.W)) - 1
		top := int(math.Floor(s.Y))
		bottom := int(math.Ceil(s.Y+rect.H)) - 1
		if right < left {
			right = left
		}

		color := r.th.Note()
		if r.f.Selected[n.ID] {
			color = r.th.SelectedNote()
		}
		for y := max(top, y0); y <= min(bottom, y1-1); y++ {
			for x := max(left, x0); x <= min(right, x1-1); x++ {
				sym := r.th.Symbols.Note
				if x == right && right > left {
					sym = r.th.Symbols.NoteHandle
				}
				r.c.put(x, y, sym, color, "")
				r.c.at(x, y).note = true
			}
		}
	}
}

func (r *renderer) playhead() {
	if !r.f.Playing {
		return
	}
	x0, y0, x1, y1 := r.gridCells()
	x := r.column(r.f.Playhead)
	if x < x0 || x >= x1 {
		return
	}
	for y := y0; y < y1; y++ {
		cl := r.c.at(x, y)
		if cl.note {
			cl.fg = r.th.Cursor()
			continue
		}
		r.c.put(x, y, r.th.Symbols.Playhead, r.th.Cursor(), "")
	}
}

func (r *renderer) meterBar() {
	mb := r.v.MeterBarRect()
	if mb.H < 1 {
		return
	}
	x0, y0 := int(mb.X), int(mb.Y)
	width := int(mb.W)
	last := y0 + int(mb.H) - 1

	for y := y0; y <= last; y++ {
		for x := x0; x < x0+width; x++ {
			r.c.put(x, y, ' ', "", r.th.Surface())
		}
	}
	first := r.v.ScrollOf(viewport.Horizontal) / r.g.BeatWidth
	for i, ch := range widgets.Ruler(width, first, r.g.BeatWidth, grid.BeatsPerMeasure) {
		if ch != ' ' {
			r.c.put(x0+i, last, ch, r.th.Muted(), "")
		}
	}

	if x := r.column(r.f.Start); x >= x0 && x < x0+width {
		r.c.put(x, y0, r.th.Symbols.Start, r.th.Warning(), "")
	}
	if r.f.Playing {
		if x := r.column(r.f.Playhead); x >= x0 && x < x0+width {
			r.c.put(x, last, r.th.Symbols.Playhead, r.th.Cursor(), "")
		}
	}
}

func (r *renderer) pianoBar() {
	pb := r.v.PianoBarRect()
	width := int(pb.W)
	if width < 1 {
		return
	}
	y0 := int(pb.Y)
	for y := y0; y < y0+int(pb.H); y++ {
		pitch, ok := r.pitchAt(y)
		if !ok {
			continue
		}
		fg, bg := r.th.BG(), r.th.FG()
		if grid.IsBlackKey(pitch) {
			fg, bg = r.th.FG(), r.th.BG()
		}
		label := []rune{}
		if pitch%12 == 0 {
			label = []rune(grid.PitchName(pitch))
		}
		for x := 0; x < width; x++ {
			ch := ' '
			if i := x - 1; i >= 0 && i < len(label) {
				ch = label[i]
			}
			r.c.put(int(pb.X)+x, y, ch, fg, bg)
		}
	}
}

func (r *renderer) box() {
	if !r.f.ShowBox {
		return
	}
	gx0, gy0, gx1, gy1 := r.gridCells()
	b := r.f.Box
	x0, y0 := int(math.Floor(b.X)), int(math.Floor(b.Y))
	x1, y1 := int(math.Ceil(b.Right()))-1, int(math.Ceil(b.Bottom()))-1
	x1, y1 = max(x0, x1), max(y0, y1)

	put := func(x, y int, ch rune) {
		if x >= gx0 && x < gx1 && y >= gy0 && y < gy1 {
			r.c.put(x, y, ch, r.th.Warning(), "")
		}
	}
	for x := x0 + 1; x < x1; x++ {
		put(x, y0, '─')
		put(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		put(x0, y, '│')
		put(x1, y, '│')
	}
	put(x0, y0, '┌')
	put(x1, y0, '┐')
	put(x0, y1, '└')
	put(x1, y1, '┘')
}

func (r *renderer) scrollbar(axis viewport.Axis) {
	bar, ok := r.v.ScrollbarRect(axis)
	if !ok {
		return
	}
	th := r.v.Thumb(axis)
	n := int(bar.W)
	if axis == viewport.Vertical {
		n = int(bar.H)
	}
	for i, on := range widgets.ThumbCells(n, th.Pos, th.Len) {
		ch, fg := r.th.Symbols.Track, r.th.Muted()
		if on {
			ch, fg = r.th.Symbols.Thumb, r.th.Accent()
		}
		for t := 0; t < max(1, int(r.v.Layout().ScrollBarThickness)); t++ {
			if axis == viewport.Vertical {
				r.c.put(int(bar.X)+t, int(bar.Y)+i, ch, fg, r.th.Surface())
			} else {
				r.c.put(int(bar.X)+i, int(bar.Y)+t, ch, fg, r.th.Surface())
			}
		}
	}
}
