package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/menukit/internal/format/table"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/menu"
)

const contextHint = "right-click below the bar for the context menu"

// View draws the bar, the body and the status rows, then composites every
// open menu over them.
func (m *Model) View() string {
	width, height := m.viewport()
	lines := make([]string, 0, height)
	lines = append(lines, m.barLine(width))
	lines = append(lines, m.bodyLines(width, int(m.bodyBounds().Height()))...)
	lines = append(lines, m.statusLine(width))
	if m.showFooter {
		lines = append(lines, m.footerLine(width))
	}
	lines = m.overlays.Composite(lines, width)
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) barLine(width int) string {
	if m.scene == nil || m.scene.Bar == nil {
		return padLine("", width, styles.Bar)
	}
	line := strings.Join(m.scene.Bar.Render(), "")
	title := strings.TrimSpace(m.scene.Title)
	if title == "" {
		return padLine(line, width, styles.Bar)
	}
	used := ansi.StringWidth(line)
	fill := width - used - ansi.StringWidth(title) - 1
	if fill < 1 {
		return padLine(line, width, styles.Bar)
	}
	line += render(styles.Bar, strings.Repeat(" ", fill)) + render(styles.Header, title) + render(styles.Bar, " ")
	return padLine(line, width, styles.Bar)
}

// bodyLines fills the rows between the bar and the status line: the help
// panel when toggled, and the context menu hint on the last row.
func (m *Model) bodyLines(width, rows int) []string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = padLine("", width, nil)
	}
	if m.showHelp {
		for i, line := range m.helpLines(width - 2) {
			row := i + 1
			if row >= rows {
				break
			}
			lines[row] = padLine("  "+line, width, nil)
		}
		return lines
	}
	if m.scene != nil && len(m.scene.Context) > 0 && rows > 1 {
		lines[rows-1] = padLine("  "+render(styles.Hint, contextHint), width, nil)
	}
	return lines
}

func (m *Model) helpLines(width int) []string {
	bindings := m.keys.helpBindings()
	rows := make([][]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		rows = append(rows, []string{render(styles.HelpKey, help.Key), render(styles.HelpDesc, help.Desc)})
	}
	return table.Fit(table.Format(rows, []table.Alignment{table.AlignRight}), width)
}

func (m *Model) statusLine(width int) string {
	if m.errMsg != "" {
		return padLine(render(styles.Error, "error: "+m.errMsg), width, nil)
	}
	header := m.menuHeader()
	if header == "" && m.scene != nil {
		header = m.scene.Title
	}
	line := render(styles.Header, header)
	if m.infoMsg != "" {
		if header != "" {
			line += "  "
		}
		line += render(styles.Info, m.infoMsg)
	}
	return padLine(line, width, nil)
}

func (m *Model) footerLine(width int) string {
	parts := make([]string, 0, 3)
	for _, binding := range m.keys.footerBindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return padLine(render(styles.Footer, strings.Join(parts, " · ")), width, nil)
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

// headerSegments follows the chain of open submenus from the open context
// menu, or else from the bar, and ends with the focused item.
func (m *Model) headerSegments() []string {
	if m.scene == nil {
		return nil
	}
	var segments []string
	var current *menu.Menu
	if m.scene.Bar != nil {
		current = m.scene.Bar.Menu
	}
	for _, area := range m.scene.Context {
		if child, ok := area.ChildMenu(); ok && area.IsOpen() {
			segments = append(segments, "context")
			current = child
			break
		}
	}
	for current != nil {
		var next *menu.Menu
		for _, item := range current.Items() {
			if !item.IsMenuOpen() {
				continue
			}
			segments = append(segments, item.Text())
			next, _ = item.Trigger().ChildMenu()
			break
		}
		current = next
	}
	if item, ok := m.env.Focused(); ok && !item.IsMenuOpen() {
		segments = append(segments, item.Text())
	}
	return segments
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(resize.Width, resize.Height)
	m.layout()
	return nil
}

// padLine fits line into exactly width cells, filling with style.
func padLine(line string, width int, style *lipgloss.Style) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + render(style, strings.Repeat(" ", width-w))
	}
	return line
}
