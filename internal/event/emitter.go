// Package event provides the synchronous publish/subscribe primitive the menu
// engine uses in place of observable streams. Everything runs on the caller's
// goroutine; listeners run in subscription order.
package event

// Emitter delivers values of type T to its subscribers.
type Emitter[T any] struct {
	nextID    int
	listeners []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (e *Emitter[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	return func() { e.remove(id) }
}

// Emit calls every listener registered at the time of the call. Listeners
// removed by an earlier listener during the same Emit are skipped.
func (e *Emitter[T]) Emit(v T) {
	snapshot := make([]listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	for _, l := range snapshot {
		if !e.has(l.id) {
			continue
		}
		l.fn(v)
	}
}

// Len reports the number of active listeners.
func (e *Emitter[T]) Len() int {
	return len(e.listeners)
}

func (e *Emitter[T]) has(id int) bool {
	for _, l := range e.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (e *Emitter[T]) remove(id int) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Subscriptions collects unsubscribe functions so a component can drop all of
// them when it is destroyed.
type Subscriptions []func()

// Add records an unsubscribe function.
func (s *Subscriptions) Add(unsubscribe func()) {
	*s = append(*s, unsubscribe)
}

// Close runs every recorded unsubscribe function once.
func (s *Subscriptions) Close() {
	for _, fn := range *s {
		fn()
	}
	*s = nil
}
