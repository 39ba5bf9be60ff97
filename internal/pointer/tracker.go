// Package pointer tracks which of a set of items the pointer is over.
package pointer

import (
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
)

// Element is something with an on-screen box the pointer can enter.
type Element interface {
	comparable
	Bounds() geometry.Rect
}

// FocusTracker emits Entered/Exited as the pointer moves between elements and
// remembers the element it was over before the current one.
type FocusTracker[T Element] struct {
	items    func() []T
	active   T
	previous T
	entered  event.Emitter[T]
	exited   event.Emitter[T]
}

// NewFocusTracker tracks the elements returned by items, which is consulted on
// every move so the set may change over time.
func NewFocusTracker[T Element](items func() []T) *FocusTracker[T] {
	return &FocusTracker[T]{items: items}
}

// Entered fires when the pointer enters an element.
func (t *FocusTracker[T]) Entered() *event.Emitter[T] { return &t.entered }

// Exited fires when the pointer leaves an element.
func (t *FocusTracker[T]) Exited() *event.Emitter[T] { return &t.exited }

// Active returns the element under the pointer.
func (t *FocusTracker[T]) Active() (T, bool) {
	var zero T
	return t.active, t.active != zero
}

// Previous returns the element the pointer last left.
func (t *FocusTracker[T]) Previous() (T, bool) {
	var zero T
	return t.previous, t.previous != zero
}

// Move updates the tracker for a pointer at p.
func (t *FocusTracker[T]) Move(p geometry.Point) {
	var zero, hit T
	for _, item := range t.items() {
		if item.Bounds().Contains(p) {
			hit = item
			break
		}
	}
	if hit == t.active {
		return
	}
	if t.active != zero {
		left := t.active
		t.previous = left
		t.active = zero
		t.exited.Emit(left)
	}
	if hit != zero {
		t.active = hit
		t.entered.Emit(hit)
	}
}

// Leave clears the active element as if the pointer left every element.
func (t *FocusTracker[T]) Leave() {
	var zero T
	if t.active == zero {
		return
	}
	left := t.active
	t.previous = left
	t.active = zero
	t.exited.Emit(left)
}
