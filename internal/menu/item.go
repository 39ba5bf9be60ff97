package menu

import (
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/stack"
)

// Kind distinguishes plain items from selectable ones.
type Kind int

const (
	KindPlain Kind = iota
	KindCheckbox
	KindRadio
)

func (k Kind) String() string {
	switch k {
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	default:
		return "item"
	}
}

// MenuItem is an entry in a menu, or a standalone button when it has no
// parent menu. An item with a trigger opens a submenu instead of firing
// Triggered.
type MenuItem struct {
	handle    stack.Handle
	id        string
	text      string
	typeahead string
	kind      Kind
	checked   bool
	disabled  bool
	// closeOnSpace is false for selectable items so Space can toggle several
	// of them without closing the menu.
	closeOnSpace bool

	env     *Env
	parent  *Menu
	group   *MenuGroup
	trigger *MenuTrigger
	bounds  geometry.Rect

	triggered event.Emitter[*MenuItem]
	subs      event.Subscriptions
	destroyed bool
}

func newItem(env *Env, parent *Menu, text string, kind Kind) *MenuItem {
	return &MenuItem{
		handle:       stack.NewHandle(),
		text:         text,
		kind:         kind,
		closeOnSpace: kind == KindPlain,
		env:          env,
		parent:       parent,
	}
}

// NewStandaloneItem returns an item outside any menu, typically the button
// that opens a root menu. Its bounds are set by the caller's layout.
func NewStandaloneItem(env *Env, text string) *MenuItem {
	item := newItem(env, nil, text, KindPlain)
	env.registerStandalone(item)
	return item
}

func (it *MenuItem) Handle() stack.Handle      { return it.handle }
func (it *MenuItem) ID() string                { return it.id }
func (it *MenuItem) Text() string              { return it.text }
func (it *MenuItem) Kind() Kind                { return it.kind }
func (it *MenuItem) Checked() bool             { return it.checked }
func (it *MenuItem) Disabled() bool            { return it.disabled }
func (it *MenuItem) Parent() *Menu             { return it.parent }
func (it *MenuItem) Group() *MenuGroup         { return it.group }
func (it *MenuItem) Trigger() *MenuTrigger     { return it.trigger }
func (it *MenuItem) Bounds() geometry.Rect     { return it.bounds }
func (it *MenuItem) HasMenu() bool             { return it.trigger != nil }
func (it *MenuItem) Destroyed() bool           { return it.destroyed }
func (it *MenuItem) SetBounds(r geometry.Rect) { it.bounds = r }

// Label is the text matched by type-ahead.
func (it *MenuItem) Label() string {
	if it.typeahead != "" {
		return it.typeahead
	}
	return it.text
}

// Triggered fires when the item is activated.
func (it *MenuItem) Triggered() *event.Emitter[*MenuItem] { return &it.triggered }

// WithID sets an application id, returned by ID.
func (it *MenuItem) WithID(id string) *MenuItem {
	it.id = id
	return it
}

// WithTypeaheadLabel overrides the text used for type-ahead.
func (it *MenuItem) WithTypeaheadLabel(label string) *MenuItem {
	it.typeahead = label
	return it
}

// WithDisabled sets the disabled state.
func (it *MenuItem) WithDisabled(disabled bool) *MenuItem {
	it.disabled = disabled
	return it
}

// OnTriggered subscribes fn to Triggered for the item's lifetime.
func (it *MenuItem) OnTriggered(fn func(*MenuItem)) *MenuItem {
	it.subs.Add(it.triggered.Subscribe(fn))
	return it
}

// SetMenu attaches a trigger that opens panel from this item.
func (it *MenuItem) SetMenu(panel *MenuPanel) (*MenuTrigger, error) {
	return NewMenuTrigger(it, panel)
}

// IsMenuOpen reports whether the item's submenu is open.
func (it *MenuItem) IsMenuOpen() bool {
	return it.trigger != nil && it.trigger.IsOpen()
}

// Focused reports whether the item holds keyboard focus.
func (it *MenuItem) Focused() bool {
	return it.env.focused == it
}

// Focus gives the item keyboard focus.
func (it *MenuItem) Focus(origin keymanager.FocusOrigin) {
	if it.destroyed {
		return
	}
	it.env.focus(it, origin)
}

// TabIndex is 0 for the one item of a menu reachable by tabbing and -1 for
// the rest.
func (it *MenuItem) TabIndex() int {
	if it.parent == nil {
		return 0
	}
	if active, ok := it.parent.ActiveItem(); ok {
		if active == it {
			return 0
		}
		return -1
	}
	if it.parent.inline && it.parent.stack.IsEmpty() {
		for _, sibling := range it.parent.items {
			if !sibling.disabled {
				if sibling == it {
					return 0
				}
				break
			}
		}
	}
	return -1
}

// Activate triggers the item. Selectable items update their checked state
// before Triggered fires. Unless keepOpen is set, every menu on the item's
// stack closes and focus returns to the root trigger.
func (it *MenuItem) Activate(keepOpen bool) {
	if it.disabled || it.HasMenu() || it.destroyed {
		return
	}
	switch it.kind {
	case KindCheckbox:
		it.checked = !it.checked
		events.Menu.Checked(string(it.handle), it.checked)
	case KindRadio:
		if it.group != nil {
			it.group.selection.Emit(it.handle)
		} else {
			it.checked = true
		}
		events.Menu.Checked(string(it.handle), it.checked)
	}
	events.Menu.Triggered(string(it.handle), it.text)
	it.triggered.Emit(it)
	if !keepOpen {
		if s := it.menuStack(); s != nil {
			s.CloseAll(stack.CloseOptions{FocusParentTrigger: true})
		}
	}
}

func (it *MenuItem) menuStack() *stack.Stack {
	if it.parent != nil {
		return it.parent.stack
	}
	if it.trigger != nil {
		return it.trigger.stack
	}
	return nil
}

func (it *MenuItem) isParentVertical() bool {
	return it.parent != nil && it.parent.orientation == geometry.Vertical
}

// focusFromParent focuses the item through its menu's key manager so the
// active item follows.
func (it *MenuItem) focusFromParent(origin keymanager.FocusOrigin) {
	if it.parent != nil && it.parent.keyManager != nil {
		it.parent.keyManager.SetFocusOrigin(origin)
		it.parent.keyManager.SetActiveItem(it)
		return
	}
	it.Focus(origin)
}

func (it *MenuItem) click() {
	if it.destroyed {
		return
	}
	it.Activate(false)
	if it.trigger != nil && !it.disabled {
		reportError(it.trigger.Toggle())
	}
}

// handleKey runs the item's handlers and then its menu's, as a key event
// bubbling from the focused item would.
func (it *MenuItem) handleKey(ev *keys.Event) {
	it.onKeydown(ev)
	if it.trigger != nil && !it.destroyed {
		it.trigger.toggleOnKeydown(ev)
	}
	if it.parent != nil && !it.parent.destroyed && !ev.PropagationStopped() {
		it.parent.HandleKey(ev)
	}
}

func (it *MenuItem) onKeydown(ev *keys.Event) {
	switch ev.Key {
	case keys.Space, keys.Enter:
		if !ev.HasModifier() {
			it.Activate(ev.Key == keys.Space && !it.closeOnSpace)
		}
	case keys.Right, keys.Left:
		if ev.HasModifier() || !it.isParentVertical() {
			return
		}
		forward := ev.Key == keys.Right
		if it.env.Direction() == geometry.RTL {
			forward = !forward
		}
		if forward {
			it.forwardArrowPressed(ev)
		} else {
			it.backArrowPressed(ev)
		}
	}
}

// forwardArrowPressed on a leaf item below a horizontal inline menu moves
// on to the menu's next item.
func (it *MenuItem) forwardArrowPressed(ev *keys.Event) {
	s := it.parent.stack
	if orientation, ok := s.InlineMenuOrientation(); !it.HasMenu() && ok && orientation == geometry.Horizontal {
		ev.PreventDefault()
		s.CloseAll(stack.CloseOptions{
			FocusNextOnEmpty:   stack.FocusNextItem,
			FocusParentTrigger: true,
		})
	}
}

// backArrowPressed closes the item's menu and returns to the level above.
func (it *MenuItem) backArrowPressed(ev *keys.Event) {
	s := it.parent.stack
	if !s.HasInlineMenu() && s.Len() <= 1 {
		return
	}
	ev.PreventDefault()
	next := stack.FocusCurrentItem
	if orientation, ok := s.InlineMenuOrientation(); ok && orientation == geometry.Horizontal {
		next = stack.FocusPreviousItem
	}
	s.Close(it.parent, stack.CloseOptions{
		FocusNextOnEmpty:   next,
		FocusParentTrigger: true,
	})
}

// onMouseEnter closes a sibling's open submenu, or opens this item's own,
// through menu aim so a diagonal move into an open submenu is not cut short.
func (it *MenuItem) onMouseEnter() {
	if it.destroyed {
		return
	}
	if it.trigger != nil {
		it.trigger.onMouseEnter()
		return
	}
	if it.parent == nil {
		return
	}
	menu := it.parent
	s := menu.stack
	if s.IsEmpty() {
		return
	}
	closeOpenSiblings := func() { s.CloseSubMenuOf(menu) }
	if menu.aim == nil {
		closeOpenSiblings()
		return
	}
	reportError(menu.aim.Toggle(closeOpenSiblings))
}

func (it *MenuItem) destroy() {
	if it.destroyed {
		return
	}
	it.destroyed = true
	it.subs.Close()
	if it.trigger != nil {
		it.trigger.Destroy()
	}
	if it.parent == nil {
		it.env.unregisterStandalone(it)
	}
	it.env.itemLost(it)
}

// Destroy releases a standalone item and its trigger. Items inside a menu
// are destroyed with the menu.
func (it *MenuItem) Destroy() {
	it.destroy()
}
