package menu

import (
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/stack"
)

// MenuGroup is a run of items inside a menu. Radio items in the same group
// are mutually exclusive; every menu has a default group for radio items
// added to it directly.
type MenuGroup struct {
	menu      *Menu
	items     []*MenuItem
	selection event.Emitter[stack.Handle]
}

// Menu returns the menu the group's items belong to.
func (g *MenuGroup) Menu() *Menu { return g.menu }

// Items returns the group's items in order.
func (g *MenuGroup) Items() []*MenuItem {
	return append([]*MenuItem(nil), g.items...)
}

// AddItem appends a plain item to the group and its menu.
func (g *MenuGroup) AddItem(text string) *MenuItem {
	return g.add(newItem(g.menu.env, g.menu, text, KindPlain))
}

// AddCheckbox appends a checkbox item to the group and its menu.
func (g *MenuGroup) AddCheckbox(text string, checked bool) *MenuItem {
	item := newItem(g.menu.env, g.menu, text, KindCheckbox)
	item.checked = checked
	return g.add(item)
}

// AddRadio appends a radio item. Checking it unchecks the group's other
// radio items.
func (g *MenuGroup) AddRadio(text string, checked bool) *MenuItem {
	item := newItem(g.menu.env, g.menu, text, KindRadio)
	g.add(item)
	item.subs.Add(g.selection.Subscribe(func(selected stack.Handle) {
		item.checked = selected == item.handle
	}))
	if checked {
		g.selection.Emit(item.handle)
	}
	return item
}

// Selected returns the checked radio item.
func (g *MenuGroup) Selected() (*MenuItem, bool) {
	for _, item := range g.items {
		if item.kind == KindRadio && item.checked {
			return item, true
		}
	}
	return nil, false
}

func (g *MenuGroup) add(item *MenuItem) *MenuItem {
	item.group = g
	g.items = append(g.items, item)
	g.menu.addItem(item)
	return item
}
