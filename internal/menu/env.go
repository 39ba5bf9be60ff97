package menu

import (
	"sort"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/pointer"
	"github.com/atomicstack/menukit/internal/stack"
)

// Directionality reports the current writing direction.
type Directionality interface {
	Value() geometry.Direction
}

// FixedDirection is a Directionality that never changes.
type FixedDirection geometry.Direction

func (d FixedDirection) Value() geometry.Direction { return geometry.Direction(d) }

// OverlayRef is the part of an overlay a trigger drives.
type OverlayRef interface {
	Attach(portal overlay.Portal) (overlay.Content, error)
	Detach()
	Dispose()
	HasAttached() bool
	Bounds() geometry.Rect
	OutsidePointerEvents() *event.Emitter[*pointer.Event]
	KeydownEvents() *event.Emitter[*keys.Event]
	PositionStrategy() *overlay.ConnectedStrategy
	UpdatePosition()
}

// OverlayService creates overlays and routes input to them.
type OverlayService interface {
	Create(config overlay.Config) OverlayRef
	DispatchPointer(ev *pointer.Event)
	DispatchKey(ev *keys.Event) bool
}

type overlayManager struct {
	*overlay.Manager
}

func (m overlayManager) Create(config overlay.Config) OverlayRef {
	return m.Manager.Create(config)
}

// Overlays adapts an overlay.Manager to OverlayService.
func Overlays(m *overlay.Manager) OverlayService {
	return overlayManager{Manager: m}
}

// Config lists the collaborators shared by every menu in an Env.
type Config struct {
	Overlays  OverlayService
	Direction Directionality
	// Scheduler delays menu aim toggles and clears the type-ahead buffer.
	Scheduler aim.Scheduler
	Renderer  Renderer
	// ContextMenus is shared across Envs that must not show two context
	// menus at once. A new tracker is used when nil.
	ContextMenus   *ContextMenuTracker
	DisableMenuAim bool
}

// Env is the composition root for a menu graph. It owns keyboard focus,
// knows every live menu for hit testing, and turns raw key and pointer
// events into calls on the focused item and the menus under the pointer.
type Env struct {
	overlays     OverlayService
	dir          Directionality
	scheduler    aim.Scheduler
	renderer     Renderer
	contextMenus *ContextMenuTracker
	menuAim      bool

	menus        []*Menu
	standalone   []*MenuItem
	contextAreas []*ContextMenuTrigger

	focused     *MenuItem
	focusOrigin keymanager.FocusOrigin
	focusStack  *stack.Stack
	focusChange event.Emitter[*MenuItem]
}

// NewEnv validates cfg and returns an Env.
func NewEnv(cfg Config) (*Env, error) {
	if cfg.Overlays == nil {
		return nil, ErrMissingOverlayService
	}
	if !cfg.DisableMenuAim && cfg.Scheduler == nil {
		return nil, ErrMissingMenuAim
	}
	env := &Env{
		overlays:     cfg.Overlays,
		dir:          cfg.Direction,
		scheduler:    cfg.Scheduler,
		renderer:     cfg.Renderer,
		contextMenus: cfg.ContextMenus,
		menuAim:      !cfg.DisableMenuAim,
	}
	if env.dir == nil {
		env.dir = FixedDirection(geometry.LTR)
	}
	if env.renderer == nil {
		env.renderer = PlainRenderer{}
	}
	if env.contextMenus == nil {
		env.contextMenus = NewContextMenuTracker()
	}
	return env, nil
}

// Direction returns the current writing direction.
func (e *Env) Direction() geometry.Direction {
	if d := e.dir.Value(); d == geometry.RTL {
		return d
	}
	return geometry.LTR
}

func (e *Env) Renderer() Renderer                      { return e.renderer }
func (e *Env) ContextMenus() *ContextMenuTracker       { return e.contextMenus }
func (e *Env) FocusChanges() *event.Emitter[*MenuItem] { return &e.focusChange }

// Focused returns the item holding keyboard focus.
func (e *Env) Focused() (*MenuItem, bool) {
	return e.focused, e.focused != nil
}

// FocusOrigin returns what moved focus to the focused item.
func (e *Env) FocusOrigin() keymanager.FocusOrigin { return e.focusOrigin }

// Menus returns the live menus, inline menus first and then popups in the
// order they opened.
func (e *Env) Menus() []*Menu {
	out := make([]*Menu, 0, len(e.menus))
	for _, m := range e.menus {
		if m.inline {
			out = append(out, m)
		}
	}
	for _, m := range e.menus {
		if !m.inline {
			out = append(out, m)
		}
	}
	return out
}

// Blur drops keyboard focus. Inline menus close their open submenus when the
// focus leaves their stack.
func (e *Env) Blur() {
	e.focused = nil
	if s := e.focusStack; s != nil {
		e.focusStack = nil
		s.SetHasFocus(false)
	}
	e.focusChange.Emit(nil)
}

func (e *Env) focus(item *MenuItem, origin keymanager.FocusOrigin) {
	e.focused = item
	e.focusOrigin = origin
	next := item.menuStack()
	if prev := e.focusStack; prev != nil && prev != next {
		e.focusStack = nil
		prev.SetHasFocus(false)
	}
	e.focusStack = next
	if next != nil {
		next.SetHasFocus(true)
	}
	parent := ""
	if item.parent != nil {
		parent = string(item.parent.handle)
	}
	events.Menu.Active(parent, item.text, string(origin))
	e.focusChange.Emit(item)
}

// HandleKey delivers ev to the focused item, which passes it on to its menu.
// Without a focused item the topmost overlay listening for keys gets it.
func (e *Env) HandleKey(ev *keys.Event) bool {
	if item := e.focused; item != nil && !item.destroyed {
		item.handleKey(ev)
		handled := ev.DefaultPrevented()
		events.Menu.Key(string(item.handle), ev.String(), handled)
		return true
	}
	return e.overlays.DispatchKey(ev)
}

// HandlePointer hit-tests ev against the live menus. Clicks are offered to
// the overlays' outside-click listeners first, as a capturing listener on
// the document would see them.
func (e *Env) HandlePointer(ev *pointer.Event) {
	switch ev.Kind {
	case pointer.Move:
		e.pointerMove(ev.Pos)
	case pointer.Down:
		item, inside := e.itemAt(ev.Pos)
		switch {
		case item != nil && !item.disabled:
			item.focusFromParent(keymanager.OriginMouse)
		case item == nil && !inside:
			e.Blur()
		}
	case pointer.Click:
		e.overlays.DispatchPointer(ev)
		if item, _ := e.itemAt(ev.Pos); item != nil {
			item.click()
		}
	case pointer.AuxClick:
		e.overlays.DispatchPointer(ev)
	case pointer.ContextMenu:
		e.overlays.DispatchPointer(ev)
		if _, inside := e.itemAt(ev.Pos); inside {
			return
		}
		for _, area := range e.contextAreasAt(ev.Pos) {
			if err := area.HandleContextMenu(ev); err != nil {
				reportError(err)
			}
			if ev.PropagationStopped() {
				return
			}
		}
	}
}

func (e *Env) pointerMove(p geometry.Point) {
	target := e.menuAt(p)
	for _, m := range e.Menus() {
		if m != target {
			m.pointerLeave()
		}
	}
	if target != nil {
		target.pointerMove(p)
	}
}

// menuAt returns the topmost live menu containing p.
func (e *Env) menuAt(p geometry.Point) *Menu {
	menus := e.Menus()
	for i := len(menus) - 1; i >= 0; i-- {
		if menus[i].bounds.Contains(p) {
			return menus[i]
		}
	}
	return nil
}

// itemAt returns the item under p and whether p is inside a menu or a
// standalone item at all.
func (e *Env) itemAt(p geometry.Point) (*MenuItem, bool) {
	if m := e.menuAt(p); m != nil {
		for _, item := range m.items {
			if item.bounds.Contains(p) {
				return item, true
			}
		}
		return nil, true
	}
	for _, item := range e.standalone {
		if !item.destroyed && item.bounds.Contains(p) {
			return item, true
		}
	}
	return nil, false
}

// contextAreasAt returns the context menu areas containing p, innermost
// first.
func (e *Env) contextAreasAt(p geometry.Point) []*ContextMenuTrigger {
	var out []*ContextMenuTrigger
	for _, area := range e.contextAreas {
		if area.bounds.Contains(p) {
			out = append(out, area)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].bounds.Area() < out[j].bounds.Area()
	})
	return out
}

// menusOnStack returns the live menus registered on s, including its inline
// menu.
func (e *Env) menusOnStack(s *stack.Stack) []*Menu {
	var out []*Menu
	for _, m := range e.menus {
		if m.stack == s {
			out = append(out, m)
		}
	}
	return out
}

func (e *Env) register(m *Menu) {
	e.menus = append(e.menus, m)
}

func (e *Env) unregister(m *Menu) {
	for i, live := range e.menus {
		if live == m {
			e.menus = append(e.menus[:i], e.menus[i+1:]...)
			return
		}
	}
}

func (e *Env) registerStandalone(item *MenuItem) {
	e.standalone = append(e.standalone, item)
}

func (e *Env) unregisterStandalone(item *MenuItem) {
	for i, live := range e.standalone {
		if live == item {
			e.standalone = append(e.standalone[:i], e.standalone[i+1:]...)
			return
		}
	}
}

func (e *Env) registerContextArea(t *ContextMenuTrigger) {
	e.contextAreas = append(e.contextAreas, t)
}

func (e *Env) unregisterContextArea(t *ContextMenuTrigger) {
	for i, live := range e.contextAreas {
		if live == t {
			e.contextAreas = append(e.contextAreas[:i], e.contextAreas[i+1:]...)
			return
		}
	}
}

func (e *Env) itemLost(item *MenuItem) {
	if e.focused == item {
		e.focused = nil
	}
}
