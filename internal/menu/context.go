package menu

import (
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/pointer"
	"github.com/atomicstack/menukit/internal/stack"
)

// ContextMenuTracker makes sure only one context menu is open at a time.
type ContextMenuTracker struct {
	open *ContextMenuTrigger
}

func NewContextMenuTracker() *ContextMenuTracker {
	return &ContextMenuTracker{}
}

// Update records trigger as the open context menu, closing the previous one.
func (c *ContextMenuTracker) Update(trigger *ContextMenuTrigger) {
	if c.open == trigger {
		return
	}
	if prev := c.open; prev != nil {
		prev.Close()
	}
	c.open = trigger
}

// Current returns the trigger recorded by the last Update.
func (c *ContextMenuTracker) Current() (*ContextMenuTrigger, bool) {
	return c.open, c.open != nil
}

func (c *ContextMenuTracker) forget(trigger *ContextMenuTrigger) {
	if c.open == trigger {
		c.open = nil
	}
}

// ContextMenuTrigger opens a panel at the pointer when the user asks for a
// context menu anywhere inside its area. It always owns its stack.
type ContextMenuTrigger struct {
	triggerBase
	bounds   geometry.Rect
	disabled bool
}

// NewContextMenuTrigger registers area as a context menu target for panel.
func NewContextMenuTrigger(env *Env, area geometry.Rect, panel *MenuPanel) (*ContextMenuTrigger, error) {
	t := &ContextMenuTrigger{
		triggerBase: triggerBase{handle: stack.NewHandle(), env: env, stack: stack.New()},
		bounds:      area,
	}
	if err := t.SetPanel(panel); err != nil {
		return nil, err
	}
	t.subs.Add(t.stack.Closed().Subscribe(func(ev stack.CloseEvent) {
		if t.childMenu != nil && t.childMenu.handle == ev.Item.Handle() && t.IsOpen() {
			t.detach()
		}
	}))
	env.registerContextArea(t)
	return t, nil
}

func (t *ContextMenuTrigger) Bounds() geometry.Rect     { return t.bounds }
func (t *ContextMenuTrigger) SetBounds(r geometry.Rect) { t.bounds = r }
func (t *ContextMenuTrigger) Disabled() bool            { return t.disabled }

// SetDisabled stops the trigger from reacting. A disabled trigger lets the
// context menu event reach enclosing areas.
func (t *ContextMenuTrigger) SetDisabled(disabled bool) { t.disabled = disabled }

// OpenAt opens the menu at p without a pointer event.
func (t *ContextMenuTrigger) OpenAt(p geometry.Point) error {
	return t.open(p, false)
}

// Close closes the menu and every submenu opened from it.
func (t *ContextMenuTrigger) Close() {
	t.stack.CloseAll(stack.CloseOptions{})
}

// HandleContextMenu opens the menu at the event's position and focuses its
// first item.
func (t *ContextMenuTrigger) HandleContextMenu(ev *pointer.Event) error {
	if t.disabled {
		return nil
	}
	ev.PreventDefault()
	ev.StopPropagation()
	events.Trigger.ContextMenu(string(t.handle), ev.Pos.X, ev.Pos.Y, int(ev.Button))
	t.env.contextMenus.Update(t)
	if err := t.open(ev.Pos, ev.Button != pointer.ButtonPrimary); err != nil {
		return err
	}
	origin := keymanager.OriginProgram
	switch ev.Button {
	case pointer.ButtonSecondary:
		origin = keymanager.OriginMouse
	case pointer.ButtonPrimary:
		origin = keymanager.OriginKeyboard
	}
	if m := t.childMenu; m != nil {
		m.FocusFirstItem(origin)
	}
	return nil
}

// open attaches the menu at p. An open menu is moved instead: its submenus
// close and the overlay is positioned around the new point.
func (t *ContextMenuTrigger) open(p geometry.Point, releaseFollows bool) error {
	if t.disabled || t.destroyed || t.panel == nil {
		return nil
	}
	origin := geometry.RectXYWH(p.X, p.Y, 0, 0)
	if t.IsOpen() {
		t.stack.CloseSubMenuOf(t.childMenu)
		if s := t.overlayRef.PositionStrategy(); s != nil {
			s.SetOrigin(origin)
		}
		t.overlayRef.UpdatePosition()
		return nil
	}
	t.opened.Emit(struct{}{})
	if t.overlayRef == nil {
		t.overlayRef = t.env.overlays.Create(overlay.Config{
			PositionStrategy: overlay.FlexibleConnectedTo(origin).
				WithLockedPosition().
				WithPositions(ContextMenuPositions),
			Direction: t.env.Direction(),
		})
	} else if s := t.overlayRef.PositionStrategy(); s != nil {
		s.SetOrigin(origin)
	}
	if err := t.attach(); err != nil {
		return err
	}
	t.listenOutside(releaseFollows)
	return nil
}

// listenOutside closes the menu on clicks outside its stack. When a
// non-primary button opened the menu, its release arrives as an outside
// auxclick right after, so the first auxclick is ignored.
func (t *ContextMenuTrigger) listenOutside(releaseFollows bool) {
	skipped := !releaseFollows
	t.listen(func(ev *pointer.Event) {
		if ev.Kind == pointer.AuxClick && !skipped {
			skipped = true
			return
		}
		inside := t.isInsideStack(ev.Pos)
		events.Trigger.OutsideClick(string(t.handle), string(ev.Kind), inside)
		if !inside {
			t.stack.CloseAll(stack.CloseOptions{})
		}
	})
}

// Destroy disposes the overlay and unregisters the area.
func (t *ContextMenuTrigger) Destroy() {
	if !t.destroyed {
		t.Close()
	}
	t.destroy()
	t.env.unregisterContextArea(t)
	t.env.contextMenus.forget(t)
}
