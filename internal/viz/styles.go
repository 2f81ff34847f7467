package viz

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	beatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	tenseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	bandBarStyles = map[string]lipgloss.Style{
		"bass":   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		"mid":    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"treble": lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	}
)
