package menu

import (
	"fmt"

	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/pointer"
	"github.com/atomicstack/menukit/internal/stack"
)

// triggerBase holds what menu and context menu triggers share: one overlay,
// created on first open and reattached afterwards, and the menu currently
// attached through it.
type triggerBase struct {
	handle     stack.Handle
	env        *Env
	stack      *stack.Stack
	panel      *MenuPanel
	overlayRef OverlayRef
	childMenu  *Menu

	opened event.Emitter[struct{}]
	closed event.Emitter[struct{}]

	listening event.Subscriptions
	subs      event.Subscriptions
	destroyed bool
}

func (t *triggerBase) Handle() stack.Handle             { return t.handle }
func (t *triggerBase) MenuStack() *stack.Stack          { return t.stack }
func (t *triggerBase) Opened() *event.Emitter[struct{}] { return &t.opened }
func (t *triggerBase) Closed() *event.Emitter[struct{}] { return &t.closed }
func (t *triggerBase) Overlay() OverlayRef              { return t.overlayRef }

// IsOpen reports whether the menu is attached.
func (t *triggerBase) IsOpen() bool {
	return t.overlayRef != nil && t.overlayRef.HasAttached()
}

// ChildMenu returns the open menu.
func (t *triggerBase) ChildMenu() (*Menu, bool) {
	return t.childMenu, t.childMenu != nil
}

// Panel returns the panel the trigger opens.
func (t *triggerBase) Panel() *MenuPanel { return t.panel }

// SetPanel sets the panel to open. A panel that already received a stack
// from another trigger is rejected.
func (t *triggerBase) SetPanel(panel *MenuPanel) error {
	if panel == nil {
		t.panel = nil
		return nil
	}
	if err := panel.setStack(t.stack); err != nil {
		return err
	}
	t.panel = panel
	return nil
}

func (t *triggerBase) registerChildMenu(m *Menu) {
	t.childMenu = m
}

func (t *triggerBase) portal() overlay.Portal {
	return overlay.PortalFunc(func() (overlay.Content, error) {
		return t.panel.instantiate(t.env, t)
	})
}

// attach emits Opened and attaches the panel, undoing the emission when
// the panel cannot be built.
func (t *triggerBase) attach() error {
	if _, err := t.overlayRef.Attach(t.portal()); err != nil {
		t.closed.Emit(struct{}{})
		return fmt.Errorf("open menu: %w", err)
	}
	events.Trigger.Open(string(t.handle), string(t.childMenuHandle()))
	return nil
}

func (t *triggerBase) childMenuHandle() stack.Handle {
	if t.childMenu == nil {
		return ""
	}
	return t.childMenu.handle
}

// detach emits Closed and detaches the overlay when the menu is open.
func (t *triggerBase) detach() {
	if !t.IsOpen() {
		return
	}
	events.Trigger.Close(string(t.handle))
	t.closed.Emit(struct{}{})
	t.listening.Close()
	t.overlayRef.Detach()
}

// listen forwards overlay key presses to the open menu while nothing inside
// it has focus, and outside clicks to onOutside, until the menu closes.
func (t *triggerBase) listen(onOutside func(*pointer.Event)) {
	t.listening.Close()
	t.listening.Add(t.overlayRef.OutsidePointerEvents().Subscribe(onOutside))
	t.listening.Add(t.overlayRef.KeydownEvents().Subscribe(func(ev *keys.Event) {
		if m := t.childMenu; m != nil {
			m.HandleKey(ev)
		}
	}))
}

// isInsideStack reports whether p is over any menu on the trigger's stack,
// including the inline menu that owns it.
func (t *triggerBase) isInsideStack(p geometry.Point) bool {
	for _, m := range t.env.menusOnStack(t.stack) {
		if m.bounds.Contains(p) {
			return true
		}
	}
	return false
}

func (t *triggerBase) destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.listening.Close()
	t.subs.Close()
	if t.overlayRef != nil {
		t.overlayRef.Dispose()
		t.overlayRef = nil
	}
	if t.panel != nil && t.panel.stack == t.stack {
		t.panel.stack = nil
	}
}

// MenuTrigger opens a panel from a menu item. Inside a menu it shares the
// menu's stack and opens on hover once a sibling submenu is open; on a
// standalone item it owns a new stack and opens only when asked.
type MenuTrigger struct {
	triggerBase
	host      *MenuItem
	parent    *Menu
	positions []overlay.ConnectedPosition
}

// NewMenuTrigger attaches a trigger for panel to host.
func NewMenuTrigger(host *MenuItem, panel *MenuPanel) (*MenuTrigger, error) {
	parent := host.parent
	var s *stack.Stack
	if parent != nil {
		if parent.stack == nil {
			return nil, ErrMissingMenuStack
		}
		s = parent.stack
	} else {
		s = stack.New()
	}
	t := &MenuTrigger{
		triggerBase: triggerBase{handle: stack.NewHandle(), env: host.env, stack: s},
		host:        host,
		parent:      parent,
	}
	if err := t.SetPanel(panel); err != nil {
		return nil, err
	}
	if host.trigger != nil {
		host.trigger.Destroy()
	}
	host.trigger = t
	if parent != nil {
		parent.watchTrigger(host)
	} else {
		t.subs.Add(s.Closed().Subscribe(t.onStandaloneClosed))
	}
	return t, nil
}

// Host returns the item the trigger is attached to.
func (t *MenuTrigger) Host() *MenuItem { return t.host }

// WithPositions overrides the default positions.
func (t *MenuTrigger) WithPositions(positions []overlay.ConnectedPosition) *MenuTrigger {
	t.positions = append([]overlay.ConnectedPosition(nil), positions...)
	return t
}

// Positions returns the positions the menu is tried at: below the host in
// a menu bar or standalone, beside it in a vertical menu.
func (t *MenuTrigger) Positions() []overlay.ConnectedPosition {
	if t.positions != nil {
		return t.positions
	}
	if t.parent == nil || t.parent.orientation == geometry.Horizontal {
		return StandardDropdownBelowPositions
	}
	return StandardDropdownAdjacentPositions
}

// Toggle opens the menu when closed and closes it when open.
func (t *MenuTrigger) Toggle() error {
	if t.IsOpen() {
		t.Close()
		return nil
	}
	return t.Open()
}

// Open attaches the menu. Opening an open menu does nothing.
func (t *MenuTrigger) Open() error {
	if t.IsOpen() || t.panel == nil || t.destroyed || t.host.disabled {
		return nil
	}
	t.opened.Emit(struct{}{})
	if t.overlayRef == nil {
		t.overlayRef = t.env.overlays.Create(overlay.Config{
			PositionStrategy: overlay.FlexibleConnectedTo(t.host.bounds).
				WithLockedPosition().
				WithPositions(t.Positions()),
			Direction: t.env.Direction(),
		})
	} else if s := t.overlayRef.PositionStrategy(); s != nil {
		s.SetOrigin(t.host.bounds)
	}
	if err := t.attach(); err != nil {
		return err
	}
	t.listen(t.onOutsideClick)
	return nil
}

// Close detaches the menu and then closes whatever sibling submenus are
// still open next to it.
func (t *MenuTrigger) Close() {
	t.detach()
	t.closeSiblingTriggers()
}

// Destroy disposes the overlay and releases the panel. A root trigger
// empties the stack it owns first.
func (t *MenuTrigger) Destroy() {
	if t.parent == nil && !t.destroyed {
		t.stack.CloseAll(stack.CloseOptions{})
	}
	t.destroy()
}

// closeSiblingTriggers closes submenus opened from the trigger's menu. The
// submenus of an inline menu are everything on its stack.
func (t *MenuTrigger) closeSiblingTriggers() {
	if t.parent == nil || t.parent.inline {
		t.stack.CloseAll(stack.CloseOptions{})
		return
	}
	t.stack.CloseSubMenuOf(t.parent)
}

func (t *MenuTrigger) onOutsideClick(ev *pointer.Event) {
	if t.host.bounds.Contains(ev.Pos) {
		return
	}
	inside := t.isInsideStack(ev.Pos)
	events.Trigger.OutsideClick(string(t.handle), string(ev.Kind), inside)
	if inside {
		t.closeSiblingTriggers()
		return
	}
	t.stack.CloseAll(stack.CloseOptions{})
}

// onStandaloneClosed closes a root trigger's menu when it is popped, and
// hands focus back to the trigger when asked to.
func (t *MenuTrigger) onStandaloneClosed(ev stack.CloseEvent) {
	child := t.childMenu
	if child == nil || child.handle != ev.Item.Handle() {
		return
	}
	t.Close()
	if ev.FocusParentTrigger {
		t.host.Focus(keymanager.OriginKeyboard)
	}
}

func (t *MenuTrigger) onMouseEnter() {
	if t.stack.IsEmpty() || t.IsOpen() {
		return
	}
	toggleMenus := func() {
		t.closeSiblingTriggers()
		reportError(t.Open())
	}
	if t.parent == nil || t.parent.aim == nil {
		toggleMenus()
		return
	}
	reportError(t.parent.aim.Toggle(toggleMenus))
}

func (t *MenuTrigger) toggleOnKeydown(ev *keys.Event) {
	if ev.HasModifier() {
		return
	}
	parentVertical := t.parent != nil && t.parent.orientation == geometry.Vertical
	rtl := t.env.Direction() == geometry.RTL
	switch ev.Key {
	case keys.Space, keys.Enter:
		ev.PreventDefault()
		reportError(t.Toggle())
		t.focusChild(true)
	case keys.Right, keys.Left:
		into := keys.Right
		if rtl {
			into = keys.Left
		}
		if parentVertical && ev.Key == into {
			ev.PreventDefault()
			reportError(t.Open())
			t.focusChild(true)
		}
	case keys.Down, keys.Up:
		if !parentVertical {
			ev.PreventDefault()
			reportError(t.Open())
			t.focusChild(ev.Key == keys.Down)
		}
	}
}

func (t *MenuTrigger) focusChild(first bool) {
	m := t.childMenu
	if m == nil {
		return
	}
	if first {
		m.FocusFirstItem(keymanager.OriginKeyboard)
	} else {
		m.FocusLastItem(keymanager.OriginKeyboard)
	}
}
