package menu

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/menukit/internal/geometry"
)

// Renderer measures and draws menus. Menus lay their items out from the
// measurements; drawing is left entirely to the renderer.
type Renderer interface {
	// Inset is the width of the frame drawn around m.
	Inset(m *Menu) int
	// ItemWidth is the number of cells item needs, frame excluded.
	ItemWidth(item *MenuItem) int
	// Render returns one line per row of m's bounds.
	Render(m *Menu) []string
}

// PlainRenderer draws menus with box-drawing characters and no colour.
type PlainRenderer struct{}

func (PlainRenderer) Inset(m *Menu) int {
	if m.IsInline() {
		return 0
	}
	return 1
}

func (PlainRenderer) ItemWidth(item *MenuItem) int {
	return ansi.StringWidth(item.Text()) + 4
}

func (r PlainRenderer) Render(m *Menu) []string {
	if m.Orientation() == geometry.Horizontal {
		var b strings.Builder
		for _, item := range m.Items() {
			b.WriteString(PlainItemText(item, r.ItemWidth(item), item.Focused()))
		}
		return []string{b.String()}
	}
	width := int(m.Bounds().Width())
	inner := width - 2*r.Inset(m)
	lines := make([]string, 0, len(m.Items())+2)
	if !m.IsInline() {
		lines = append(lines, "┌"+strings.Repeat("─", max(inner, 0))+"┐")
	}
	for _, item := range m.Items() {
		line := PlainItemText(item, inner, item.Focused())
		if !m.IsInline() {
			line = "│" + line + "│"
		}
		lines = append(lines, line)
	}
	if !m.IsInline() {
		lines = append(lines, "└"+strings.Repeat("─", max(inner, 0))+"┘")
	}
	return lines
}

// PlainItemText lays out an item's marker, text and submenu arrow in width
// cells.
func PlainItemText(item *MenuItem, width int, focused bool) string {
	mark := " "
	switch item.Kind() {
	case KindCheckbox:
		mark = "☐"
		if item.Checked() {
			mark = "☑"
		}
	case KindRadio:
		mark = "○"
		if item.Checked() {
			mark = "●"
		}
	}
	if focused {
		mark = ">"
	}
	arrow := " "
	if item.HasMenu() {
		arrow = "›"
	}
	body := mark + " " + item.Text()
	pad := width - ansi.StringWidth(body) - 1
	if pad < 0 {
		body = ansi.Truncate(body, width-1, "…")
		pad = 0
	}
	return body + strings.Repeat(" ", pad) + arrow
}
