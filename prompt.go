package gocalc

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var usageLines = []string{
	"Usage: <command> <num1> <num2> | eg: add 2 3",
	"Type 'menu' to see all available commands.",
	"Type 'exit' to exit.",
	"Type 'history' to see calculation history.",
	"Type 'clear history' to clear calculation history.",
	"Type 'delete <index>' to delete a specific entry from history.",
}

// PrintBanner writes the startup usage text.
func PrintBanner(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	first := r.NewStyle().Bold(true)
	for i, line := range usageLines {
		if i == 0 {
			line = first.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
