package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/pointer"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.ForceQ):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.showHelp = !m.showHelp
		events.UI.Key(keyMsg.String(), true)
		return nil
	case key.Matches(keyMsg, m.keys.MenuBar):
		m.focusBar()
		events.UI.Key(keyMsg.String(), true)
		return nil
	}

	ev, ok := m.keys.translate(keyMsg)
	if !ok {
		events.UI.Key(keyMsg.String(), false)
		return nil
	}
	idle := m.barIdle()
	if m.env.HandleKey(ev) {
		if ev.Key == keys.Escape && idle {
			m.env.Blur()
		}
		events.UI.Key(keyMsg.String(), true)
		return nil
	}
	events.UI.Key(keyMsg.String(), false)

	switch ev.Key {
	case keys.Escape:
		if m.showHelp {
			m.showHelp = false
			return nil
		}
	case keys.Left, keys.Right, keys.Down:
		m.focusBar()
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	return nil
}

// barIdle reports whether a bar item holds focus while no dropdown is open.
// Escape in that state leaves the bar.
func (m *Model) barIdle() bool {
	if m.scene == nil || m.scene.Bar == nil {
		return false
	}
	item, ok := m.env.Focused()
	if !ok || item.Parent() != m.scene.Bar.Menu {
		return false
	}
	return m.scene.Bar.MenuStack().IsEmpty()
}

func (m *Model) focusBar() {
	if m.scene == nil || m.scene.Bar == nil {
		return
	}
	if item, ok := m.env.Focused(); ok && item.Parent() == m.scene.Bar.Menu {
		return
	}
	m.scene.Bar.FocusFirstItem(keymanager.OriginKeyboard)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	for _, ev := range m.translateMouse(mouse) {
		events.UI.Mouse(string(ev.Kind), mouse.X, mouse.Y)
		m.env.HandlePointer(ev)
	}
	return nil
}

// translateMouse turns a terminal mouse report into pointer events. A right
// press yields mousedown followed by contextmenu; releases become click for
// the primary button and auxclick otherwise.
func (m *Model) translateMouse(msg tea.MouseMsg) []*pointer.Event {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		return []*pointer.Event{pointer.NewEvent(pointer.Move, x, y, pointer.ButtonPrimary)}
	case tea.MouseActionPress:
		button, ok := pointerButton(msg.Button)
		if !ok {
			return nil
		}
		m.pressed = msg.Button
		evs := []*pointer.Event{pointer.NewEvent(pointer.Down, x, y, button)}
		if button == pointer.ButtonSecondary {
			evs = append(evs, pointer.NewEvent(pointer.ContextMenu, x, y, button))
		}
		return evs
	case tea.MouseActionRelease:
		released := msg.Button
		if released == tea.MouseButtonNone {
			released = m.pressed
		}
		m.pressed = tea.MouseButtonNone
		button, ok := pointerButton(released)
		if !ok {
			return nil
		}
		kind := pointer.AuxClick
		if button == pointer.ButtonPrimary {
			kind = pointer.Click
		}
		return []*pointer.Event{pointer.NewEvent(kind, x, y, button)}
	}
	return nil
}

func pointerButton(b tea.MouseButton) (pointer.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return pointer.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return pointer.ButtonAuxiliary, true
	case tea.MouseButtonRight:
		return pointer.ButtonSecondary, true
	}
	return 0, false
}
