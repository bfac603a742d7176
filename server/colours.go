package server

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	gray = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	methodColors = map[string]lipgloss.Style{
		"GET":    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"POST":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"PUT":    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		"DELETE": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"PATCH":  lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
)

// methodBadge pads method to a fixed width and colours it per verb.
func methodBadge(method string) string {
	padded := fmt.Sprintf("%-7s", method)
	if style, ok := methodColors[method]; ok {
		return style.Render(padded)
	}
	return gray.Render(padded)
}
