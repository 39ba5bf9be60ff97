package overlay

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const segmentReset = "\x1b[0m"

// Composite draws every attached overlay over base, bottom to top. Rows and
// columns outside the base are padded with spaces.
func (m *Manager) Composite(base []string, width int) []string {
	lines := append([]string(nil), base...)
	for _, ref := range m.attached {
		if ref.content == nil {
			continue
		}
		rendered := ref.content.Render()
		col := int(math.Round(ref.bounds.Left))
		row := int(math.Round(ref.bounds.Top))
		w := int(math.Round(ref.bounds.Width()))
		for i, line := range rendered {
			y := row + i
			if y < 0 {
				continue
			}
			for len(lines) <= y {
				lines = append(lines, "")
			}
			lines[y] = compositeLineAt(lines[y], line, col, w, width)
		}
	}
	return lines
}

// compositeLineAt replaces the cells [col, col+w) of base with overlay,
// keeping the styled text on either side intact.
func compositeLineAt(base, overlay string, col, w, total int) string {
	if col < 0 {
		overlay = ansi.Cut(overlay, -col, w)
		w += col
		col = 0
	}
	if w <= 0 {
		return base
	}
	if total > 0 && col+w > total {
		w = total - col
		if w <= 0 {
			return base
		}
	}
	baseWidth := ansi.StringWidth(base)

	var b strings.Builder
	before := ansi.Truncate(base, col, "")
	b.WriteString(before)
	if pad := col - ansi.StringWidth(before); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(segmentReset)

	body := ansi.Truncate(overlay, w, "")
	b.WriteString(body)
	if pad := w - ansi.StringWidth(body); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(segmentReset)

	if baseWidth > col+w {
		b.WriteString(ansi.Cut(base, col+w, baseWidth))
	}
	return b.String()
}
