package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colour palette for terminal output.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourSuccess   = lipgloss.Color("#A6E3A1")
	colourWarning   = lipgloss.Color("#F9E2AF")
	colourError     = lipgloss.Color("#F38BA8")
)

// styles holds pre-configured lipgloss styles for command output.
type styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var style = styles{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
	Section: lipgloss.NewStyle().Bold(true).Foreground(colourSecondary),
	Label:   lipgloss.NewStyle().Foreground(colourMuted).Width(14),
	Muted:   lipgloss.NewStyle().Foreground(colourMuted),
	Success: lipgloss.NewStyle().Foreground(colourSuccess),
	Warning: lipgloss.NewStyle().Foreground(colourWarning),
	Error:   lipgloss.NewStyle().Foreground(colourError),
}

// title renders a heading underlined to its width.
func title(text string) string {
	return style.Title.Render(text) + "\n" + style.Muted.Render(strings.Repeat("=", lipgloss.Width(text)))
}

// field renders an aligned "label value" line.
func field(label string, value any) string {
	return "  " + style.Label.Render(label+":") + fmt.Sprint(value)
}

// stateStyle picks a colour for a processing state.
func stateStyle(state string) lipgloss.Style {
	switch state {
	case "completed":
		return style.Success
	case "failed":
		return style.Error
	default:
		return style.Warning
	}
}
