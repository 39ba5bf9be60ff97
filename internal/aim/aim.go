// Package aim predicts whether the pointer is travelling toward an open
// submenu so that hovering a sibling item on the way does not close it.
package aim

import (
	"errors"
	"time"

	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/logging/events"
)

const (
	// NumPoints is the number of pointer samples kept.
	NumPoints = 5
	// SampleFrequency keeps every n-th mouse move.
	SampleFrequency = 3
	// CloseDelay is how long a toggle is held back while the pointer seems to
	// be heading into the open submenu.
	CloseDelay = 300 * time.Millisecond
)

var (
	ErrMissingPointerTracker = errors.New("menu aim: expected a pointer focus tracker")
	ErrMissingMenu           = errors.New("menu aim: expected a reference to the parent menu")
)

// Target is the menu whose items are being hovered.
type Target interface {
	Orientation() geometry.Orientation
}

// Tracker reports the pointer state of the target's items.
type Tracker interface {
	// HasActive reports whether the pointer is over one of the target's items.
	HasActive() bool
	// PreviousSubmenuBounds returns the box of the submenu opened by the item
	// the pointer last left, if that item has an open submenu.
	PreviousSubmenuBounds() (geometry.Rect, bool)
}

// MenuAim gates sibling toggles. Implementations must be initialised with
// the menu they serve before Toggle is called.
type MenuAim interface {
	Initialize(menu Target, tracker Tracker)
	Sample(p geometry.Point)
	Toggle(doToggle func()) error
	Destroy()
}

// TargetMenuAim implements MenuAim by testing whether the lines between the
// latest pointer sample and the older ones cross the submenu's box.
type TargetMenuAim struct {
	scheduler Scheduler
	menu      Target
	tracker   Tracker
	points    []geometry.Point
	moves     int
	token     uint64
	pending   uint64
}

// New returns a TargetMenuAim that defers toggles through scheduler.
func New(scheduler Scheduler) *TargetMenuAim {
	return &TargetMenuAim{scheduler: scheduler}
}

// Initialize binds the aim to a menu and its pointer tracker.
func (a *TargetMenuAim) Initialize(menu Target, tracker Tracker) {
	a.menu = menu
	a.tracker = tracker
}

// Sample records a raw mouse move inside the menu; only every
// SampleFrequency-th move is kept and at most NumPoints are retained.
func (a *TargetMenuAim) Sample(p geometry.Point) {
	idx := a.moves
	a.moves++
	if idx%SampleFrequency != 0 {
		return
	}
	a.points = append(a.points, p)
	if len(a.points) > NumPoints {
		a.points = a.points[1:]
	}
}

// Points returns a copy of the retained samples, oldest first.
func (a *TargetMenuAim) Points() []geometry.Point {
	out := make([]geometry.Point, len(a.points))
	copy(out, a.points)
	return out
}

// Pending reports whether a deferred toggle is waiting to fire.
func (a *TargetMenuAim) Pending() bool {
	return a.pending != 0
}

// Toggle runs doToggle now, or after CloseDelay when the pointer appears to
// be moving into the submenu. A newer Toggle supersedes a pending one.
func (a *TargetMenuAim) Toggle(doToggle func()) error {
	if a.menu == nil {
		return ErrMissingMenu
	}
	if a.menu.Orientation() == geometry.Horizontal {
		events.Aim.Immediate("horizontal")
		doToggle()
		return nil
	}
	if a.tracker == nil {
		return ErrMissingPointerTracker
	}
	if len(a.points) > 1 {
		if hits, ok := a.movingToSubmenu(); ok {
			a.startTimeout(doToggle, hits)
			return nil
		}
	}
	a.supersede()
	events.Aim.Immediate("trajectory")
	doToggle()
	return nil
}

// Destroy drops any pending toggle.
func (a *TargetMenuAim) Destroy() {
	a.supersede()
}

func (a *TargetMenuAim) startTimeout(doToggle func(), hits int) {
	a.supersede()
	a.token++
	token := a.token
	a.pending = token
	events.Aim.Defer(token, hits, len(a.points))
	a.scheduler.AfterFunc(CloseDelay, func() {
		executed := false
		if a.pending == token {
			a.pending = 0
			if a.tracker.HasActive() {
				doToggle()
				executed = true
			}
		}
		events.Aim.Fire(token, executed)
	})
}

// supersede forgets the pending toggle. Its timer still fires but the token
// no longer matches, so it does nothing.
func (a *TargetMenuAim) supersede() {
	a.pending = 0
}

// movingToSubmenu counts how many of the older samples, joined with the
// newest one, form a line crossing the submenu's box. At least half of
// NumPoints (rounded down) must agree.
func (a *TargetMenuAim) movingToSubmenu() (int, bool) {
	bounds, ok := a.tracker.PreviousSubmenuBounds()
	if !ok {
		return 0, false
	}
	current := a.points[len(a.points)-1]
	hits := 0
	for i := len(a.points) - 2; i >= 0; i-- {
		slope := geometry.Slope(current, a.points[i])
		if geometry.LineEntersRect(bounds, slope, geometry.YIntercept(current, slope)) {
			hits++
		}
	}
	return hits, hits >= NumPoints/2
}
