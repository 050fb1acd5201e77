package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mini-bluebikes/stationflow/internal/present"
)

// Lane green from the map's bike lane layers
const accentColor = "#32D400"

var (
	accentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor)).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	departuresStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(present.DeparturesColor))
	arrivalsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(present.ArrivalsColor))
)

// Theme returns the huh theme used by the interactive prompts.
func Theme() *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(accentColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// swatch renders a marker-colored dot.
func swatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
