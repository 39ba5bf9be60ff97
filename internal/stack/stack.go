// Package stack records which menus are open and in what order. It is the
// only state shared between a menu bar, its menus and their triggers, and all
// mutation goes through the narrow push/close API below.
package stack

import (
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/google/uuid"
)

// Handle identifies a component without holding a reference to it.
type Handle string

// NewHandle returns a fresh opaque handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Item is anything that can sit on a Stack, i.e. an open menu.
type Item interface {
	Handle() Handle
}

// FocusNext tells the inline menu where focus should go once the stack empties.
type FocusNext int

const (
	FocusNone FocusNext = iota
	FocusNextItem
	FocusPreviousItem
	FocusCurrentItem
)

func (f FocusNext) String() string {
	switch f {
	case FocusNextItem:
		return "next"
	case FocusPreviousItem:
		return "previous"
	case FocusCurrentItem:
		return "current"
	default:
		return "none"
	}
}

// CloseOptions tune Close and CloseAll.
type CloseOptions struct {
	FocusNextOnEmpty   FocusNext
	FocusParentTrigger bool
}

// CloseEvent is emitted once for every item popped off the stack.
type CloseEvent struct {
	Item               Item
	FocusParentTrigger bool
}

// Stack is an ordered bottom→top record of open menus.
type Stack struct {
	id                string
	items             []Item
	hasInline         bool
	inlineOrientation geometry.Orientation
	focused           bool
	emptiedSent       bool

	closed   event.Emitter[CloseEvent]
	emptied  event.Emitter[FocusNext]
	hasFocus event.Emitter[bool]
}

// New returns an empty stack owned by a standalone trigger.
func New() *Stack {
	return &Stack{id: uuid.NewString()}
}

// NewInline returns a stack owned by an inline menu (a menu bar or a menu
// rendered in place) with the given orientation.
func NewInline(orientation geometry.Orientation) *Stack {
	s := New()
	s.hasInline = true
	s.inlineOrientation = orientation
	return s
}

// ID identifies the stack; menus tag themselves with it for hit tests.
func (s *Stack) ID() string { return s.id }

// Closed streams every popped item, top first.
func (s *Stack) Closed() *event.Emitter[CloseEvent] { return &s.closed }

// Emptied fires once per transition from non-empty to empty.
func (s *Stack) Emptied() *event.Emitter[FocusNext] { return &s.emptied }

// HasFocus reports focus entering or leaving the menus of this stack.
func (s *Stack) HasFocus() *event.Emitter[bool] { return &s.hasFocus }

// Push appends item as the new top. Pushing the same item twice is the
// caller's mistake and is not checked.
func (s *Stack) Push(item Item) {
	s.items = append(s.items, item)
	s.emptiedSent = false
	events.Stack.Push(s.id, string(item.Handle()), len(s.items))
}

// Close pops items until lastItem has been popped, emitting each one. Nothing
// happens when lastItem is not on the stack.
func (s *Stack) Close(lastItem Item, opts CloseOptions) {
	if s.indexOf(lastItem) < 0 {
		events.Stack.Miss(s.id, string(lastItem.Handle()))
		return
	}
	for !s.IsEmpty() {
		popped := s.pop()
		s.closed.Emit(CloseEvent{Item: popped, FocusParentTrigger: opts.FocusParentTrigger})
		// a listener may already have closed lastItem re-entrantly
		if popped.Handle() == lastItem.Handle() || !s.Contains(lastItem) {
			break
		}
	}
	if s.IsEmpty() {
		s.emitEmptied(opts.FocusNextOnEmpty)
	}
}

// CloseSubMenuOf pops every item above lastItem, leaving lastItem on top. It
// reports whether anything was popped.
func (s *Stack) CloseSubMenuOf(lastItem Item) bool {
	if s.indexOf(lastItem) < 0 {
		return false
	}
	removed := false
	for {
		top, ok := s.Peek()
		if !ok || top.Handle() == lastItem.Handle() {
			break
		}
		removed = true
		s.closed.Emit(CloseEvent{Item: s.pop()})
	}
	return removed
}

// CloseAll pops every item and then emits Emptied once. An empty stack is
// left untouched.
func (s *Stack) CloseAll(opts CloseOptions) {
	if s.IsEmpty() {
		return
	}
	for !s.IsEmpty() {
		s.closed.Emit(CloseEvent{Item: s.pop(), FocusParentTrigger: opts.FocusParentTrigger})
	}
	s.emitEmptied(opts.FocusNextOnEmpty)
}

// IsEmpty reports whether no menu is open.
func (s *Stack) IsEmpty() bool { return len(s.items) == 0 }

// Len reports the number of open menus.
func (s *Stack) Len() int { return len(s.items) }

// Peek returns the top item.
func (s *Stack) Peek() (Item, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// Contains reports whether item is on the stack.
func (s *Stack) Contains(item Item) bool {
	return s.indexOf(item) >= 0
}

// Items returns a copy of the stack, bottom first.
func (s *Stack) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// HasInlineMenu reports whether the stack belongs to an inline menu.
func (s *Stack) HasInlineMenu() bool { return s.hasInline }

// InlineMenuOrientation returns the inline menu's orientation and whether
// there is one.
func (s *Stack) InlineMenuOrientation() (geometry.Orientation, bool) {
	return s.inlineOrientation, s.hasInline
}

// SetHasFocus records whether focus is inside one of the stack's menus and
// emits on HasFocus when that changes.
func (s *Stack) SetHasFocus(focused bool) {
	if s.focused == focused {
		return
	}
	s.focused = focused
	s.hasFocus.Emit(focused)
}

// Focused reports the last value given to SetHasFocus.
func (s *Stack) Focused() bool { return s.focused }

// pop removes the top item before anyone is told about it, so listeners that
// re-enter the stack see the post-pop state.
func (s *Stack) pop() Item {
	last := len(s.items) - 1
	item := s.items[last]
	s.items[last] = nil
	s.items = s.items[:last]
	events.Stack.Pop(s.id, string(item.Handle()), len(s.items))
	return item
}

// emitEmptied fires at most once per non-empty → empty transition, even when
// a listener closes the stack re-entrantly.
func (s *Stack) emitEmptied(next FocusNext) {
	if s.emptiedSent {
		return
	}
	s.emptiedSent = true
	events.Stack.Emptied(s.id, next.String())
	s.emptied.Emit(next)
}

func (s *Stack) indexOf(item Item) int {
	if item == nil {
		return -1
	}
	h := item.Handle()
	for i, it := range s.items {
		if it.Handle() == h {
			return i
		}
	}
	return -1
}
