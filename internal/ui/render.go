package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/theme"
)

// styledRenderer draws menus with the theme's Lip Gloss styles. Its
// measurements match menu.PlainRenderer so layouts are identical.
type styledRenderer struct {
	styles *theme.Styles
	border lipgloss.Style
}

func newStyledRenderer(styles *theme.Styles) styledRenderer {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if styles.MenuBorder != nil {
		border = border.BorderForeground(styles.MenuBorder.GetForeground())
	}
	return styledRenderer{styles: styles, border: border}
}

func (r styledRenderer) Inset(m *menu.Menu) int {
	return menu.PlainRenderer{}.Inset(m)
}

func (r styledRenderer) ItemWidth(item *menu.MenuItem) int {
	return menu.PlainRenderer{}.ItemWidth(item)
}

func (r styledRenderer) Render(m *menu.Menu) []string {
	if m.Orientation() == geometry.Horizontal {
		return []string{r.renderBar(m)}
	}
	inner := int(m.Bounds().Width()) - 2*r.Inset(m)
	lines := make([]string, 0, len(m.Items()))
	for _, item := range m.Items() {
		lines = append(lines, r.itemLine(item, inner))
	}
	if m.IsInline() {
		return lines
	}
	return strings.Split(r.border.Render(strings.Join(lines, "\n")), "\n")
}

func (r styledRenderer) renderBar(m *menu.Menu) string {
	var b strings.Builder
	for _, item := range m.Items() {
		text := "  " + item.Text() + " "
		if item.HasMenu() {
			text += "›"
		} else {
			text += " "
		}
		style := r.styles.BarItem
		switch {
		case item.Disabled():
			style = r.styles.ItemDisabled
		case item.Focused() || item.IsMenuOpen():
			style = r.styles.BarItemActive
		}
		b.WriteString(render(style, text))
	}
	return b.String()
}

// itemLine lays out the check mark, label and submenu arrow of item in width
// cells, truncating long labels.
func (r styledRenderer) itemLine(item *menu.MenuItem, width int) string {
	arrow := " "
	if item.HasMenu() {
		arrow = "›"
	}
	textWidth := max(width-3, 0)
	text := item.Text()
	if ansi.StringWidth(text) > textWidth {
		text = truncate.StringWithTail(text, uint(textWidth), "…")
	}
	pad := max(textWidth-ansi.StringWidth(text), 0)
	body := " " + text + strings.Repeat(" ", pad) + arrow

	style := r.styles.Item
	switch {
	case item.Disabled():
		style = r.styles.ItemDisabled
	case item.Focused():
		style = r.styles.ItemFocused
	}
	mark := checkMark(item)
	if mark != " " && !item.Disabled() {
		mark = render(r.styles.ItemMarker, mark)
	} else {
		mark = render(style, mark)
	}
	return mark + render(style, body)
}

func checkMark(item *menu.MenuItem) string {
	switch item.Kind() {
	case menu.KindCheckbox:
		if item.Checked() {
			return "☑"
		}
		return "☐"
	case menu.KindRadio:
		if item.Checked() {
			return "●"
		}
		return "○"
	}
	return " "
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
