package pointer

import (
	"fmt"

	"github.com/atomicstack/menukit/internal/geometry"
)

// Kind is the type of a pointer event.
type Kind string

const (
	Move        Kind = "mousemove"
	Down        Kind = "mousedown"
	Click       Kind = "click"
	AuxClick    Kind = "auxclick"
	ContextMenu Kind = "contextmenu"
)

// Button follows the usual numbering: 0 primary, 1 auxiliary, 2 secondary.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Event is a pointer event in screen coordinates.
type Event struct {
	Kind   Kind
	Pos    geometry.Point
	Button Button

	defaultPrevented bool
	stopped          bool
}

// NewEvent builds an Event at x, y.
func NewEvent(kind Kind, x, y float64, button Button) *Event {
	return &Event{Kind: kind, Pos: geometry.Pt(x, y), Button: button}
}

// IsClick reports whether the event is one of the click-like kinds that
// count as outside clicks for overlays.
func (e *Event) IsClick() bool {
	switch e.Kind {
	case Click, AuxClick, ContextMenu:
		return true
	}
	return false
}

func (e *Event) PreventDefault()          { e.defaultPrevented = true }
func (e *Event) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *Event) StopPropagation()         { e.stopped = true }
func (e *Event) PropagationStopped() bool { return e.stopped }

func (e *Event) String() string {
	return fmt.Sprintf("%s(%g,%g button=%d)", e.Kind, e.Pos.X, e.Pos.Y, e.Button)
}
