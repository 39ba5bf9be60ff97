package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format returns the rows padded according to the widest entry in each column.
// Cells may carry ANSI styling; widths are measured in terminal cells. The
// last left-aligned cell of a row is never padded.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			last := c == len(row)-1
			cells[c] = pad(cell, widths[c], align, last)
		}
		out = append(out, strings.Join(cells, columnGap))
	}
	return out
}

// Fit truncates every line to width cells, marking cut lines with an ellipsis.
func Fit(lines []string, width int) []string {
	if width <= 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if ansi.StringWidth(line) > width {
			line = truncate.StringWithTail(line, uint(width), "…")
		}
		out = append(out, line)
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for len(widths) < len(row) {
			widths = append(widths, 0)
		}
		for c, cell := range row {
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}
	return widths
}

func pad(cell string, width int, align Alignment, last bool) string {
	gap := width - ansi.StringWidth(cell)
	switch {
	case gap <= 0:
		return cell
	case align == AlignRight:
		return strings.Repeat(" ", gap) + cell
	case last:
		return cell
	default:
		return cell + strings.Repeat(" ", gap)
	}
}
