package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sonorbit/internal/audio"
	"github.com/san-kum/sonorbit/internal/gravity"
	"github.com/san-kum/sonorbit/internal/spectrum"
)

const (
	canvasWidth   = 96
	canvasHeight  = 28
	volumeHistory = 120
	bandBarWidth  = 24
)

type TickMsg time.Time

// Model runs the whole per-frame pipeline inside a bubbletea loop:
// spectrum source -> analyzer -> gravity system -> canvas.
type Model struct {
	analyzer *audio.Analyzer
	system   *gravity.System
	source   spectrum.Source
	canvas   *Canvas

	frameRate int
	tMs       float64
	snap      audio.Snapshot
	running   bool
	showHelp  bool

	volumes []float64
}

func NewModel(analyzer *audio.Analyzer, system *gravity.System, source spectrum.Source, frameRate int) Model {
	w, h := system.Viewport()
	return Model{
		analyzer:  analyzer,
		system:    system,
		source:    source,
		canvas:    NewCanvas(canvasWidth, canvasHeight, w, h),
		frameRate: frameRate,
		running:   true,
		volumes:   make([]float64, 0, volumeHistory),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "m":
			if m.system.Mode() == gravity.ModeReactive {
				m.system.SetMode(gravity.ModeLegacy)
			} else {
				m.system.SetMode(gravity.ModeReactive)
			}
		case "c":
			m.system.SpawnComet()
		case "r":
			m.system.Reset()
			m.analyzer.Reset()
			m.tMs = 0
			m.volumes = m.volumes[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame: analyzer strictly before gravity.
func (m *Model) step() {
	m.tMs += 1000.0 / float64(m.frameRate)
	frame := m.source.Next(m.tMs)
	m.snap = m.analyzer.Update(frame, m.tMs)
	m.system.Update(&m.snap)

	m.volumes = append(m.volumes, m.snap.Volume)
	if len(m.volumes) > volumeHistory {
		m.volumes = m.volumes[1:]
	}
}

func (m Model) View() string {
	m.draw()

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("sonorbit · %s · frame %d", m.system.Mode(), m.system.Frame())))
	sb.WriteByte('\n')
	sb.WriteString(canvasStyle.Render(m.canvas.String()))
	sb.WriteByte('\n')
	sb.WriteString(m.bandPanel())
	sb.WriteByte('\n')
	if len(m.volumes) > 1 {
		graph := asciigraph.Plot(m.volumes, asciigraph.Height(4), asciigraph.Width(60), asciigraph.Caption("volume"))
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}
	if m.showHelp {
		sb.WriteString(helpStyle.Render("space pause · m mode · c comet · r reset · ? help · q quit"))
	} else {
		sb.WriteString(helpStyle.Render("? help"))
	}
	return sb.String()
}

func (m Model) draw() {
	m.canvas.Clear()

	for _, b := range m.system.Bodies() {
		color := b.Color
		if b.Comet {
			color = LifeColor(color, b.Life)
		}
		for i := 0; i < b.Trail.Len(); i++ {
			m.canvas.Plot(b.Trail.At(i), color)
		}
	}

	mod := m.system.Modulation()
	sun := m.system.Sun()
	m.canvas.PlotBody(sun.Pos, sun.Radius*(1+0.3*mod.PulsePotential), PulseColor(sun.Color, 1+mod.PulsePotential))

	for i, p := range m.system.Planets() {
		band := audio.Band(i % int(audio.NumBands))
		m.canvas.PlotBody(p.Pos, p.Radius*m.snap.Pulses[band], PulseColor(p.Color, m.snap.Pulses[band]))
	}
	for _, c := range m.system.Comets() {
		m.canvas.PlotBody(c.Pos, c.Radius, LifeColor(c.Color, c.Life))
	}
}

func (m Model) bandPanel() string {
	var sb strings.Builder
	for b := audio.Band(0); b < audio.NumBands; b++ {
		name := b.String()
		bar := levelBar(m.snap.Smooth[b], bandBarWidth)
		line := labelStyle.Render(name) + bandBarStyles[name].Render(bar)
		if m.snap.Beats[b].IsBeat {
			line += beatStyle.Render(fmt.Sprintf("  beat %.2f", m.snap.Beats[b].Intensity))
		} else if m.snap.Pulses[b] > 1 {
			line += valueStyle.Render(fmt.Sprintf("  pulse %.2f", m.snap.Pulses[b]))
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	status := labelStyle.Render("pitch") + valueStyle.Render(levelBar(m.snap.Pitch, bandBarWidth))
	if m.snap.Tense {
		status += tenseStyle.Render("  TENSE")
	}
	sb.WriteString(status)
	return sb.String()
}

func levelBar(v float64, width int) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
