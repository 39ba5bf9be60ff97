// Package menu implements menus, menu bars, context menus and the triggers
// that open them. Open menus are recorded on a shared stack.Stack; closing
// pops the stack and every menu and trigger reacts to the pops to detach
// overlays and move focus.
package menu

import (
	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/pointer"
	"github.com/atomicstack/menukit/internal/stack"
)

// Menu is a list of items. A menu opened by a trigger lives in an overlay
// and sits on its trigger's stack while open; an inline menu is always
// visible and owns the stack its submenus are pushed on.
type Menu struct {
	handle      stack.Handle
	env         *Env
	orientation geometry.Orientation
	inline      bool
	bar         bool

	parentTrigger *triggerBase
	stack         *stack.Stack
	items         []*MenuItem
	defaultGroup  *MenuGroup

	keyManager *keymanager.Manager[*MenuItem]
	tracker    *pointer.FocusTracker[*MenuItem]
	aim        aim.MenuAim

	triggerItem  *MenuItem
	bounds       geometry.Rect
	stackFocused bool

	subs      event.Subscriptions
	closed    event.Emitter[struct{}]
	destroyed bool
}

func newMenu(env *Env, orientation geometry.Orientation, parent *triggerBase) *Menu {
	m := &Menu{
		handle:        stack.NewHandle(),
		env:           env,
		orientation:   orientation,
		inline:        parent == nil,
		parentTrigger: parent,
	}
	m.defaultGroup = &MenuGroup{menu: m}
	return m
}

// NewInlineMenu returns an always-visible menu with its own stack.
func NewInlineMenu(env *Env, orientation geometry.Orientation) (*Menu, error) {
	m := newMenu(env, orientation, nil)
	m.stack = stack.NewInline(orientation)
	if err := m.init(); err != nil {
		return nil, err
	}
	return m, nil
}

// init wires the menu to its stack. Popup menus push themselves here, after
// their template has added the items.
func (m *Menu) init() error {
	if m.stack == nil {
		return ErrMissingMenuStack
	}
	km := keymanager.New(m.itemList).WithWrap().WithHomeAndEnd().WithTypeAhead(m.env.scheduler)
	if m.orientation == geometry.Horizontal {
		km.WithHorizontalOrientation(m.env.Direction())
	} else {
		km.WithVerticalOrientation()
	}
	m.keyManager = km
	m.tracker = pointer.NewFocusTracker(m.itemList)
	if m.env.menuAim {
		a := aim.New(m.env.scheduler)
		a.Initialize(m, menuPointer{menu: m})
		m.aim = a
	}

	m.subs.Add(m.stack.Closed().Subscribe(func(ev stack.CloseEvent) {
		m.closeOpenMenu(ev.Item, ev.FocusParentTrigger)
	}))
	if m.inline {
		m.stackFocused = m.stack.Focused()
		m.subs.Add(m.stack.HasFocus().Subscribe(func(focused bool) {
			m.stackFocused = focused
			if !focused {
				m.stack.CloseAll(stack.CloseOptions{})
			}
		}))
	}
	switch {
	case m.bar:
		m.subs.Add(m.stack.Emptied().Subscribe(m.toggleOpenMenu))
	case m.inline:
		m.subs.Add(m.stack.Emptied().Subscribe(m.toggleMenuFocus))
	}
	m.subs.Add(m.tracker.Entered().Subscribe(m.pointerEntered))

	m.env.register(m)
	if !m.inline {
		m.stack.Push(m)
	}
	if m.parentTrigger != nil {
		m.parentTrigger.registerChildMenu(m)
	}
	return nil
}

func (m *Menu) Handle() stack.Handle              { return m.handle }
func (m *Menu) Orientation() geometry.Orientation { return m.orientation }
func (m *Menu) IsInline() bool                    { return m.inline }
func (m *Menu) MenuStack() *stack.Stack           { return m.stack }
func (m *Menu) Bounds() geometry.Rect             { return m.bounds }
func (m *Menu) Destroyed() bool                   { return m.destroyed }

// Closed fires once when the menu is destroyed.
func (m *Menu) Closed() *event.Emitter[struct{}] { return &m.closed }

// Items returns the menu's items in order.
func (m *Menu) Items() []*MenuItem {
	return append([]*MenuItem(nil), m.items...)
}

func (m *Menu) itemList() []*MenuItem { return m.items }

// ActiveItem returns the item the key manager considers active.
func (m *Menu) ActiveItem() (*MenuItem, bool) {
	if m.keyManager == nil {
		return nil, false
	}
	return m.keyManager.ActiveItem()
}

// TriggerItem returns the item whose submenu is open.
func (m *Menu) TriggerItem() (*MenuItem, bool) {
	return m.triggerItem, m.triggerItem != nil
}

// TabIndex is 0 for an inline menu that can receive focus by tabbing, and
// -1 while focus is already inside its stack or for popup menus.
func (m *Menu) TabIndex() int {
	if m.inline && !m.stackFocused {
		return 0
	}
	return -1
}

// FocusFirstItem focuses the first enabled item.
func (m *Menu) FocusFirstItem(origin keymanager.FocusOrigin) {
	if m.destroyed {
		return
	}
	m.keyManager.SetFocusOrigin(origin)
	m.keyManager.SetFirstItemActive()
}

// FocusLastItem focuses the last enabled item.
func (m *Menu) FocusLastItem(origin keymanager.FocusOrigin) {
	if m.destroyed {
		return
	}
	m.keyManager.SetFocusOrigin(origin)
	m.keyManager.SetLastItemActive()
}

// AddItem appends a plain item.
func (m *Menu) AddItem(text string) *MenuItem {
	return m.addItem(newItem(m.env, m, text, KindPlain))
}

// AddCheckbox appends an item that toggles its checked state.
func (m *Menu) AddCheckbox(text string, checked bool) *MenuItem {
	item := newItem(m.env, m, text, KindCheckbox)
	item.checked = checked
	return m.addItem(item)
}

// AddRadio appends a radio item to the menu's default group.
func (m *Menu) AddRadio(text string, checked bool) *MenuItem {
	return m.defaultGroup.AddRadio(text, checked)
}

// AddGroup starts a group of items with its own radio selection.
func (m *Menu) AddGroup() *MenuGroup {
	return &MenuGroup{menu: m}
}

func (m *Menu) addItem(item *MenuItem) *MenuItem {
	m.items = append(m.items, item)
	return item
}

// Size implements overlay.Content.
func (m *Menu) Size() (int, int) {
	inset := m.env.renderer.Inset(m)
	if m.orientation == geometry.Horizontal {
		width := 0
		for _, item := range m.items {
			width += m.env.renderer.ItemWidth(item)
		}
		return width + 2*inset, 1 + 2*inset
	}
	width := 0
	for _, item := range m.items {
		if w := m.env.renderer.ItemWidth(item); w > width {
			width = w
		}
	}
	return width + 2*inset, len(m.items) + 2*inset
}

// SetBounds places the menu and lays its items out one cell high, stacked
// for vertical menus and side by side for horizontal ones.
func (m *Menu) SetBounds(r geometry.Rect) {
	m.bounds = r
	inset := float64(m.env.renderer.Inset(m))
	x, y := r.Left+inset, r.Top+inset
	for _, item := range m.items {
		if m.orientation == geometry.Horizontal {
			w := float64(m.env.renderer.ItemWidth(item))
			item.bounds = geometry.RectXYWH(x, y, w, 1)
			x += w
			continue
		}
		item.bounds = geometry.RectXYWH(x, y, r.Width()-2*inset, 1)
		y++
	}
}

// Render implements overlay.Content.
func (m *Menu) Render() []string {
	return m.env.renderer.Render(m)
}

// Destroy tears the menu down: its items' triggers dispose their overlays,
// subscriptions are dropped and Closed fires. It does not touch the stack.
func (m *Menu) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.subs.Close()
	for _, item := range m.items {
		item.destroy()
	}
	if m.aim != nil {
		m.aim.Destroy()
	}
	m.env.unregister(m)
	if m.parentTrigger != nil && m.parentTrigger.childMenu == m {
		m.parentTrigger.childMenu = nil
	}
	m.closed.Emit(struct{}{})
}

// HandleKey runs the menu's keyboard handling, as if ev bubbled up from one
// of its items.
func (m *Menu) HandleKey(ev *keys.Event) {
	if m.destroyed {
		return
	}
	if m.bar {
		m.handleBarKey(ev)
		return
	}
	km := m.keyManager
	switch ev.Key {
	case keys.Left, keys.Right:
		if !ev.HasModifier() {
			ev.PreventDefault()
			km.SetFocusOrigin(keymanager.OriginKeyboard)
			km.OnKeydown(ev)
		}
	case keys.Escape:
		if !ev.HasModifier() {
			ev.PreventDefault()
			m.stack.Close(m, stack.CloseOptions{
				FocusNextOnEmpty:   stack.FocusCurrentItem,
				FocusParentTrigger: true,
			})
		}
	case keys.Tab:
		if !ev.HasModifier(keys.ModAlt, keys.ModMeta, keys.ModCtrl) {
			m.stack.CloseAll(stack.CloseOptions{FocusParentTrigger: true})
		}
	default:
		km.SetFocusOrigin(keymanager.OriginKeyboard)
		km.OnKeydown(ev)
	}
}

// closeOpenMenu reacts to a pop: when the popped menu is the one opened from
// this menu, its trigger closes and the active item moves to the hovered
// item, or back to the trigger item.
func (m *Menu) closeOpenMenu(popped stack.Item, focusParentTrigger bool) {
	item := m.triggerItem
	if item == nil || item.trigger == nil {
		return
	}
	child := item.trigger.childMenu
	if child == nil || child.handle != popped.Handle() {
		return
	}
	item.trigger.Close()
	if m.destroyed {
		return
	}
	hovered, isHovered := m.tracker.Active()
	switch {
	case focusParentTrigger:
		target := item
		if isHovered {
			target = hovered
		}
		m.keyManager.SetActiveItem(target)
	case isHovered:
		m.keyManager.UpdateActiveItem(hovered)
	}
}

func (m *Menu) pointerEntered(item *MenuItem) {
	if !item.disabled {
		m.keyManager.SetFocusOrigin(keymanager.OriginMouse)
		if !m.inline || m.stackFocused {
			m.keyManager.SetActiveItem(item)
		} else {
			m.keyManager.UpdateActiveItem(item)
		}
	}
	item.onMouseEnter()
}

func (m *Menu) pointerMove(p geometry.Point) {
	m.tracker.Move(p)
	if m.aim != nil && !m.destroyed {
		m.aim.Sample(p)
	}
}

func (m *Menu) pointerLeave() {
	m.tracker.Leave()
}

// watchTrigger keeps triggerItem pointing at the item whose submenu is open.
func (m *Menu) watchTrigger(item *MenuItem) {
	t := item.trigger
	item.subs.Add(t.opened.Subscribe(func(struct{}) { m.triggerItem = item }))
	item.subs.Add(t.closed.Subscribe(func(struct{}) {
		if m.triggerItem == item {
			m.triggerItem = nil
		}
	}))
}

// menuPointer exposes the menu's pointer tracker to menu aim.
type menuPointer struct {
	menu *Menu
}

func (p menuPointer) HasActive() bool {
	_, ok := p.menu.tracker.Active()
	return ok
}

func (p menuPointer) PreviousSubmenuBounds() (geometry.Rect, bool) {
	prev, ok := p.menu.tracker.Previous()
	if !ok || prev.trigger == nil || prev.trigger.childMenu == nil {
		return geometry.Rect{}, false
	}
	return prev.trigger.childMenu.bounds, true
}
