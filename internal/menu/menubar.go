package menu

import (
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/stack"
)

// MenuBar is a horizontal inline menu whose items open dropdowns. Moving
// between bar items with the arrow keys carries an open dropdown along.
type MenuBar struct {
	*Menu
}

// NewMenuBar returns an empty bar with its own stack.
func NewMenuBar(env *Env) (*MenuBar, error) {
	m := newMenu(env, geometry.Horizontal, nil)
	m.bar = true
	m.stack = stack.NewInline(geometry.Horizontal)
	if err := m.init(); err != nil {
		return nil, err
	}
	return &MenuBar{Menu: m}, nil
}

func (m *Menu) handleBarKey(ev *keys.Event) {
	km := m.keyManager
	switch ev.Key {
	case keys.Left, keys.Right:
		if ev.HasModifier() {
			return
		}
		ev.PreventDefault()
		active, ok := km.ActiveItem()
		wasOpen := ok && active.IsMenuOpen()
		if ok && active.trigger != nil {
			active.trigger.Close()
		}
		km.SetFocusOrigin(keymanager.OriginKeyboard)
		km.OnKeydown(ev)
		if wasOpen {
			m.openActive()
		}
	case keys.Up, keys.Down:
		// the item's trigger opens its dropdown
	case keys.Escape:
		if ev.HasModifier() {
			return
		}
		ev.PreventDefault()
		if active, ok := km.ActiveItem(); ok && active.trigger != nil {
			active.trigger.Close()
		}
	case keys.Tab:
		if ev.HasModifier(keys.ModAlt, keys.ModMeta, keys.ModCtrl) {
			return
		}
		if active, ok := km.ActiveItem(); ok && active.trigger != nil {
			active.trigger.Close()
		}
	default:
		km.OnKeydown(ev)
	}
}

// toggleOpenMenu moves along the bar once the stack empties, opening the
// neighbour's dropdown when the user was navigating sideways out of one.
func (m *Menu) toggleOpenMenu(next stack.FocusNext) {
	if m.destroyed {
		return
	}
	m.toggleMenuFocus(next)
	if next == stack.FocusNextItem || next == stack.FocusPreviousItem {
		m.openActive()
	}
}

// toggleMenuFocus moves an inline menu's active item as the emptied stack
// asks, without opening anything.
func (m *Menu) toggleMenuFocus(next stack.FocusNext) {
	if m.destroyed {
		return
	}
	km := m.keyManager
	switch next {
	case stack.FocusNextItem:
		km.SetFocusOrigin(keymanager.OriginKeyboard)
		km.SetNextItemActive()
	case stack.FocusPreviousItem:
		km.SetFocusOrigin(keymanager.OriginKeyboard)
		km.SetPreviousItemActive()
	case stack.FocusCurrentItem:
		if active, ok := km.ActiveItem(); ok {
			km.SetFocusOrigin(keymanager.OriginKeyboard)
			km.SetActiveItem(active)
		}
	}
}

func (m *Menu) openActive() {
	if active, ok := m.keyManager.ActiveItem(); ok && active.trigger != nil {
		reportError(active.trigger.Open())
	}
}
