package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/keys"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Space    key.Binding
	Escape   key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	MenuBar  key.Binding
	Help     key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous item")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item or open")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "close submenu / previous menu")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open submenu / next menu")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first item")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last item")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Space:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle, keep menu open")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "close all menus")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab")),
		MenuBar:  key.NewBinding(key.WithKeys("f10"), key.WithHelp("f10", "focus the menu bar")),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// helpBindings lists the bindings shown in the help panel, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.MenuBar, k.Up, k.Down, k.Left, k.Right, k.Home, k.End,
		k.Enter, k.Space, k.Escape, k.Tab, k.Help, k.Quit,
	}
}

// footerBindings lists the bindings shown in the footer row.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.MenuBar, k.Help, k.Quit}
}

// translate maps a key message onto the event the menu engine understands.
func (k keyMap) translate(msg tea.KeyMsg) (*keys.Event, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return keys.Press(keys.Up), true
	case key.Matches(msg, k.Down):
		return keys.Press(keys.Down), true
	case key.Matches(msg, k.Left):
		return keys.Press(keys.Left), true
	case key.Matches(msg, k.Right):
		return keys.Press(keys.Right), true
	case key.Matches(msg, k.Home):
		return keys.Press(keys.Home), true
	case key.Matches(msg, k.End):
		return keys.Press(keys.End), true
	case key.Matches(msg, k.Enter):
		return keys.Press(keys.Enter), true
	case key.Matches(msg, k.Space):
		return keys.Press(keys.Space), true
	case key.Matches(msg, k.Escape):
		return keys.Press(keys.Escape), true
	case key.Matches(msg, k.Tab):
		return keys.Press(keys.Tab), true
	case key.Matches(msg, k.ShiftTab):
		return keys.Press(keys.Tab, keys.ModShift), true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return nil, false
	}
	ev := keys.Char(msg.Runes[0])
	if msg.Alt {
		ev.Mods |= keys.ModAlt
	}
	return ev, true
}
