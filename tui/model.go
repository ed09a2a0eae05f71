package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/interaction"
	"go-pianoroll/notes"
	"go-pianoroll/sequencer"
	"go-pianoroll/theme"
	"go-pianoroll/widgets"
)

// Rows above and below the canvas
const (
	headerHeight = 1
	footerHeight = 2
)

// WheelStep is how many cells one wheel notch scrolls
const WheelStep = 3

const frameInterval = time.Second / 30

type Model struct {
	Editor *sequencer.Editor
	Theme  *theme.Theme
	Saver  *config.Saver // may be nil

	help     help.Model
	width    int
	height   int
	showHelp bool
	quitting bool
	ticking  bool
	last     interaction.Pointer
}

type UpdateMsg struct{}

type tickMsg time.Time

func NewModel(editor *sequencer.Editor, th *theme.Theme, saver *config.Saver) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Accent())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted())
	return Model{
		Editor: editor,
		Theme:  th,
		Saver:  saver,
		help:   h,
	}
}

func ListenForUpdates(editor *sequencer.Editor) tea.Cmd {
	return func() tea.Msg {
		<-editor.UpdateChan
		return UpdateMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Editor)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.Editor.Resize(float64(msg.Width), float64(m.canvasHeight()))

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			m.Editor.Close()
			m.flush()
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		// the release happened somewhere we can't see
		if ctrl := m.Editor.Controller(); ctrl.Tracking() {
			ctrl.PointerUpOutside(m.last)
		}

	case tickMsg:
		m.ticking = false
		m.Editor.Tick()

	case UpdateMsg:
		return m, tea.Batch(ListenForUpdates(m.Editor), m.maybeTick())
	}

	return m, m.maybeTick()
}

// maybeTick keeps one frame timer running while the cursor plays
func (m *Model) maybeTick() tea.Cmd {
	if m.ticking || !m.Editor.Cursor().Playing() {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	e := m.Editor
	ctrl := e.Controller()

	switch {
	case key.Matches(msg, keys.Play):
		ctrl.KeyDown(interaction.KeySpace)
	case key.Matches(msg, keys.Delete):
		ctrl.KeyDown(interaction.KeyDelete)
	case key.Matches(msg, keys.SelectAll):
		ctrl.KeyDown(interaction.KeySelectAll)
	case key.Matches(msg, keys.Left):
		e.Nudge(-1, 0, false)
	case key.Matches(msg, keys.Right):
		e.Nudge(1, 0, false)
	case key.Matches(msg, keys.OctaveUp):
		e.Nudge(0, 1, true)
	case key.Matches(msg, keys.OctaveDown):
		e.Nudge(0, -1, true)
	case key.Matches(msg, keys.Up):
		e.Nudge(0, 1, false)
	case key.Matches(msg, keys.Down):
		e.Nudge(0, -1, false)
	case key.Matches(msg, keys.ZoomIn):
		e.ZoomIn()
		m.save()
	case key.Matches(msg, keys.ZoomOut):
		e.ZoomOut()
		m.save()
	case key.Matches(msg, keys.SnapFiner):
		e.SnapFiner()
		m.save()
	case key.Matches(msg, keys.SnapCoarser):
		e.SnapCoarser()
		m.save()
	case key.Matches(msg, keys.TempoUp):
		e.TempoUp()
		m.save()
	case key.Matches(msg, keys.TempoDown):
		e.TempoDown()
		m.save()
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	ctrl := m.Editor.Controller()
	p := interaction.Pointer{X: float64(msg.X), Y: float64(msg.Y - headerHeight), Shift: msg.Shift}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ctrl.Wheel(interaction.Wheel{DeltaY: -WheelStep, Shift: msg.Shift})
		return
	case tea.MouseButtonWheelDown:
		ctrl.Wheel(interaction.Wheel{DeltaY: WheelStep, Shift: msg.Shift})
		return
	case tea.MouseButtonWheelLeft:
		ctrl.Wheel(interaction.Wheel{DeltaY: -WheelStep, Shift: true})
		return
	case tea.MouseButtonWheelRight:
		ctrl.Wheel(interaction.Wheel{DeltaY: WheelStep, Shift: true})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.inCanvas(msg.Y) {
			ctrl.PointerDown(p)
		}
	case tea.MouseActionMotion:
		if ctrl.Tracking() {
			ctrl.PointerMove(p)
		}
	case tea.MouseActionRelease:
		if !ctrl.Tracking() {
			break
		}
		if m.inCanvas(msg.Y) {
			ctrl.PointerUp(p)
		} else {
			ctrl.PointerUpOutside(p)
		}
	}
	m.last = p
	debug.LogEvery(50, "input", "mouse %s at %d,%d", msg.Action, msg.X, msg.Y)
}

func (m Model) inCanvas(y int) bool {
	return y >= headerHeight && y < headerHeight+m.canvasHeight()
}

func (m Model) canvasHeight() int {
	return max(0, m.height-headerHeight-footerHeight)
}

func (m *Model) save() {
	if m.Saver != nil {
		m.Saver.Save(m.Editor.Config())
	}
}

func (m *Model) flush() {
	if m.Saver != nil {
		if err := m.Saver.Flush(); err != nil {
			debug.Log("config", "flush on quit: %v", err)
		}
	}
}

// FrameOf snapshots the editor for Render
func FrameOf(e *sequencer.Editor) Frame {
	s := e.Store()
	sel := make(map[notes.ID]bool)
	for _, id := range s.SelectedIDs() {
		sel[id] = true
	}
	box, showBox := e.Controller().SelectionBox()
	cur := e.Cursor()
	return Frame{
		View:     e.Viewport(),
		Notes:    s.All(),
		Selected: sel,
		Playhead: cur.Position(),
		Playing:  cur.Playing(),
		Start:    cur.Start(),
		Box:      box,
		ShowBox:  showBox,
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	e := m.Editor
	cur := e.Cursor()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	out := e.OutputName()
	if out == "" {
		out = "none"
	}
	header := headerStyle.Render(fmt.Sprintf("go-pianoroll  %s  %3.0fbpm  beat %6.2f", cur.State(), cur.Tempo(), cur.Position())) +
		dimStyle.Render(fmt.Sprintf("  snap %g  zoom %s  notes %d  out: %s", e.Snap(), e.ZoomLabel(), e.Store().Len(), out))

	var body string
	if m.showHelp {
		body = lipgloss.NewStyle().Height(m.canvasHeight()).Render(widgets.RenderKeyHelp(keys.Sections()))
	} else {
		body = Render(FrameOf(e), m.Theme)
	}

	status := dimStyle.Render(e.Status())
	if m.Saver != nil {
		if err := m.Saver.Err(); err != nil {
			issue := fmsg.GetIssue(err)
			if issue == "" {
				issue = err.Error()
			}
			status = warnStyle.Render("config: " + issue)
		}
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(keys.ShortHelp()))
	return b.String()
}
