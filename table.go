package gocalc

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderHistory lays records out as a table with a leading index column.
// Colors are only emitted when w is a terminal.
func RenderHistory(w io.Writer, records []Record) string {
	headers := append([]string{""}, HistoryHeader...)
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = append([]string{strconv.Itoa(i)}, rec.Fields()...)
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > colWidths[i] {
				colWidths[i] = cw
			}
		}
	}
	// Width includes the padding.
	for i := range colWidths {
		colWidths[i] += 2
	}

	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	indexStyle := r.NewStyle().Faint(true).Padding(0, 1)
	sepStyle := r.NewStyle().Faint(true)

	var sb strings.Builder
	writeRow := func(cells []string, style func(col int) lipgloss.Style) {
		for i, cell := range cells {
			s := style(i).Width(colWidths[i])
			if i > 1 {
				s = s.Align(lipgloss.Right)
			}
			sb.WriteString(s.Render(cell))
			if i < len(cells)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers, func(int) lipgloss.Style { return headerStyle })

	total := len(colWidths) - 1
	for _, cw := range colWidths {
		total += cw
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row, func(col int) lipgloss.Style {
			if col == 0 {
				return indexStyle
			}
			return cellStyle
		})
	}
	return sb.String()
}
