package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finnvoss/glowgraph/pkg/choreo"
	"github.com/finnvoss/glowgraph/pkg/scene"
)

// frameInterval drives the render loop at roughly 30 fps.
const frameInterval = time.Second / 30

// pointerStep is how far one arrow key press moves the pointer, in stage
// pixels.
const pointerStep = 20.0

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// playModel is the bubbletea model for the interactive session. Every frame
// it steps the engine once and redraws the stage onto a character canvas.
type playModel struct {
	eng    *engine
	phases []choreo.Phase

	width  int
	height int

	selected int  // index into graph.Nodes
	dragging bool // selected node pinned to the pointer
	pointer  scene.Point
	pointed  bool // pointer attraction active
}

func newPlayModel(eng *engine) playModel {
	return playModel{
		eng:    eng,
		phases: choreo.Phases(eng.graph.Variant),
		pointer: scene.Point{
			X: eng.cfg.Forces.Width / 2,
			Y: eng.cfg.Forces.Height / 2,
		},
	}
}

// runPlayTUI runs the session until the user quits.
func runPlayTUI(eng *engine) error {
	_, err := tea.NewProgram(newPlayModel(eng), tea.WithAltScreen()).Run()
	return err
}

func (m playModel) Init() tea.Cmd {
	return frameTick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.eng.step(frameInterval.Seconds())
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(m.phases) {
			_ = m.eng.controller.EnterPhase(m.phases[i]) // vocabulary index, cannot fail
		}

	case "tab":
		m.selected = (m.selected + 1) % len(m.eng.graph.Nodes)

	case "g":
		id := m.eng.graph.Nodes[m.selected].ID
		if m.dragging {
			m.eng.sim.EndDrag(id)
			m.dragging = false
			break
		}
		if p, ok := m.eng.stage.Position(id); ok {
			m.pointer = p
		}
		m.eng.sim.StartDrag(id)
		m.dragging = true

	case "p":
		m.pointed = !m.pointed
		if m.pointed {
			m.eng.sim.SetPointer(m.pointer)
		} else {
			m.eng.sim.ClearPointer()
		}

	case "r":
		m.eng.sim.Reheat()

	case "up", "down", "left", "right":
		switch key {
		case "up":
			m.pointer.Y -= pointerStep
		case "down":
			m.pointer.Y += pointerStep
		case "left":
			m.pointer.X -= pointerStep
		case "right":
			m.pointer.X += pointerStep
		}
		if m.dragging {
			m.eng.sim.UpdateDrag(m.eng.graph.Nodes[m.selected].ID, m.pointer)
		}
		if m.pointed {
			m.eng.sim.SetPointer(m.pointer)
		}
	}
	return m, nil
}

// =============================================================================
// Rendering
// =============================================================================

func (m playModel) View() string {
	if m.width < 20 || m.height < 8 {
		return "terminal too small"
	}

	canvasH := m.height - 4
	canvas := m.renderCanvas(m.width, canvasH)

	var b strings.Builder
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

// renderCanvas projects stage geometry onto a rune grid. Node dots carry
// their live fill color; low opacity renders dim.
func (m playModel) renderCanvas(w, h int) string {
	cells := make([]string, w*h)

	sx := float64(w-1) / m.eng.cfg.Forces.Width
	sy := float64(h-1) / m.eng.cfg.Forces.Height
	put := func(p scene.Point, glyph string) {
		x, y := int(p.X*sx), int(p.Y*sy)
		if x >= 0 && x < w && y >= 0 && y < h {
			cells[y*w+x] = glyph
		}
	}

	for i, n := range m.eng.graph.Nodes {
		pos, ok := m.eng.stage.Position(n.ID)
		if !ok {
			continue
		}
		glyph := "●"
		if i == m.selected {
			glyph = "◉"
		}
		style := lipgloss.NewStyle()
		if hex, ok := m.eng.stage.String(n.ID, scene.AttrDotFill); ok {
			style = style.Foreground(lipgloss.Color(hex))
		}
		if op, ok := m.eng.stage.Number(n.ID, scene.AttrDotOpacity); ok && op < 0.5 {
			style = style.Faint(true)
		}
		put(pos, style.Render(glyph))
	}

	if op, ok := m.eng.stage.Number(scene.MarkerID, scene.AttrOpacity); ok && op > 0.05 {
		if pos, ok := m.eng.stage.Position(scene.MarkerID); ok {
			put(pos, StyleSuccess.Render("✦"))
		}
	}
	if m.pointed || m.dragging {
		put(m.pointer, StyleDim.Render("+"))
	}

	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var row strings.Builder
		for x := 0; x < w; x++ {
			if c := cells[y*w+x]; c != "" {
				row.WriteString(c)
			} else {
				row.WriteString(" ")
			}
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

func (m playModel) statusLine() string {
	sel := m.eng.graph.Nodes[m.selected].ID
	state := "idle"
	if !m.eng.sim.Idle() {
		state = fmt.Sprintf("alpha %.3f", m.eng.sim.Alpha())
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s",
		StyleDim.Render("phase"), StyleValue.Render(string(m.eng.controller.Current())),
		StyleDim.Render("solver"), StyleValue.Render(state),
		StyleDim.Render("node"), StyleValue.Render(sel))
}

func (m playModel) helpLine() string {
	labels := make([]string, len(m.phases))
	for i, p := range m.phases {
		labels[i] = fmt.Sprintf("%d %s", i+1, p)
	}
	return StyleDim.Render(strings.Join(labels, "  ") +
		"  tab select  g grab  p pointer  arrows move  r reheat  q quit")
}
