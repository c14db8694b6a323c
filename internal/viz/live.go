package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/molsim/internal/engine"
	"github.com/san-kum/molsim/internal/kinetics"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/molecule"
	"go.uber.org/zap"
)

const (
	width           = 60
	height          = 22
	historyCapacity = 120
	frameRate       = time.Second / 30
	temperatureStep = 10.0
	orbitStep       = 0.1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the interactive view over a single engine.
type Model struct {
	eng       *engine.Engine
	templates []*molecule.Template
	selected  int
	log       *zap.Logger

	canvas *Canvas
	scene  *Wireframe
	camera *Camera

	speed        *metrics.MeanSpeed
	temperature  *metrics.KineticTemperature
	speedHistory []float64

	showHelp bool
}

// NewModel builds a view over eng. Templates from reg can be spawned into the
// engine one at a time.
func NewModel(eng *engine.Engine, reg *molecule.Registry, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	b := eng.Params().Bounds
	extent := b.X()
	for _, v := range []float64{b.Y(), b.Z()} {
		if v > extent {
			extent = v
		}
	}
	m := Model{
		eng:          eng,
		templates:    reg.All(),
		log:          log,
		canvas:       NewCanvas(width, height),
		scene:        NewWireframe(),
		camera:       NewCamera(extent),
		speed:        metrics.NewMeanSpeed(),
		temperature:  metrics.NewKineticTemperature(),
		speedHistory: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Selected is the template the spawn key adds, or nil for an empty registry.
func (m Model) Selected() *molecule.Template {
	if len(m.templates) == 0 {
		return nil
	}
	return m.templates[m.selected]
}

func (m Model) Engine() *engine.Engine  { return m.eng }
func (m Model) Camera() *Camera         { return m.camera }
func (m Model) SpeedHistory() []float64 { return m.speedHistory }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.togglePause()
		case "s":
			if m.eng.IsStarted() {
				m.eng.Stop()
				m.speedHistory = m.speedHistory[:0]
			} else {
				m.eng.Start()
			}
		case "+", "=":
			m.eng.SpeedUp()
		case "-", "_":
			m.eng.SlowDown()
		case "0":
			m.eng.ResetSpeed()
		case "up", "k":
			m.eng.SetTemperature(m.eng.Temperature() + temperatureStep)
		case "down", "j":
			m.eng.SetTemperature(m.eng.Temperature() - temperatureStep)
		case "left", "h":
			m.camera.Orbit(-orbitStep, 0)
		case "right", "l":
			m.camera.Orbit(orbitStep, 0)
		case "[":
			m.camera.Orbit(0, -orbitStep)
		case "]":
			m.camera.Orbit(0, orbitStep)
		case "z":
			m.camera.ZoomIn()
		case "Z":
			m.camera.ZoomOut()
		case "tab":
			if len(m.templates) > 0 {
				m.selected = (m.selected + 1) % len(m.templates)
			}
		case "a":
			m.spawn()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case TickMsg:
		m.step()
		m.draw()
		return m, tick()
	}
	return m, nil
}

// togglePause starts a stopped engine, otherwise flips between paused and
// active.
func (m *Model) togglePause() {
	switch m.eng.State() {
	case engine.Stopped:
		m.eng.Start()
	case engine.Paused:
		m.eng.Resume()
	default:
		m.eng.Pause()
	}
}

func (m *Model) spawn() {
	tpl := m.Selected()
	if tpl == nil {
		return
	}
	m.eng.Spawn(tpl)
	m.log.Debug("spawned molecule", zap.String("molecule", tpl.Key), zap.Int("instances", m.eng.Len()))
}

func (m *Model) step() {
	if m.eng.Dt() == 0 {
		return
	}
	m.eng.Step()
	m.speed.Observe(m.eng)
	m.temperature.Observe(m.eng)
	m.speedHistory = append(m.speedHistory, m.speed.Value())
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	BuildScene(m.scene, m.eng)
	Render3D(m.canvas, m.scene, m.camera)
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("MOLSIM") + "\n")
	s.WriteString(fmt.Sprintf("%s\n\n", strings.ToUpper(m.eng.State().String())))

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Mean speed (pm/s)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	t := m.eng.Temperature()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Temperature", fmt.Sprintf("%.0f K (%.0f °C)", t, kinetics.KelvinToCelsius(t)))
	row("Kinetic T", fmt.Sprintf("%.0f K", m.temperature.Value()))
	row("Pressure", fmt.Sprintf("%.2f atm", m.eng.Pressure()))
	row("Speed", fmt.Sprintf("x%g (dt %.4f s)", m.eng.SpeedMultiplier(), m.eng.Dt()))
	row("Molecules", fmt.Sprintf("%d", m.eng.Len()))
	st := m.eng.Stats()
	row("Collisions", fmt.Sprintf("%d", st.Collisions))
	row("Wall hits", fmt.Sprintf("%d", st.WallHits))

	s.WriteString("\nSPAWN\n")
	if tpl := m.Selected(); tpl != nil {
		s.WriteString(selectStyle.Render("> "+tpl.Name) + "\n")
		row("Formula", tpl.Formula())
		row("Kind", tpl.Kind.String())
		if centers := tpl.Centers(); len(centers) > 0 {
			row("Geometry", centers[0].Geometry())
		}
		row("Dipole", fmt.Sprintf("%.2f", tpl.DipoleMoment.Len()))
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause S:Start/Stop Q:Quit\nTab:Molecule A:Spawn ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start / pause / resume   ║
║  S        - Start / stop             ║
║  + / -    - Faster / slower          ║
║  0        - Reset speed              ║
║  Up/K     - Temperature +10 K        ║
║  Down/J   - Temperature -10 K        ║
║  ←→ / HL  - Orbit camera             ║
║  [ ]      - Tilt camera              ║
║  z / Z    - Zoom in / out            ║
║  Tab      - Next molecule            ║
║  A        - Spawn molecule           ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
