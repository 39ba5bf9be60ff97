// Package keymanager implements the roving "active item" used for keyboard
// navigation inside a menu: arrow keys move the active item, Home/End jump,
// and typing characters jumps to the item whose label matches.
package keymanager

import (
	"strings"
	"time"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TypeAheadReset is how long typed characters are kept before the buffer
// starts over.
const TypeAheadReset = 200 * time.Millisecond

// FocusOrigin records what moved focus.
type FocusOrigin string

const (
	OriginMouse    FocusOrigin = "mouse"
	OriginKeyboard FocusOrigin = "keyboard"
	OriginProgram  FocusOrigin = "program"
)

// Item is an entry the manager can make active.
type Item interface {
	comparable
	Disabled() bool
	Label() string
	Focus(origin FocusOrigin)
}

// Manager tracks the active item of a list and moves it in response to keys.
type Manager[T Item] struct {
	items      func() []T
	active     int
	wrap       bool
	homeAndEnd bool
	vertical   bool
	horizontal bool
	dir        geometry.Direction
	typeAhead  bool
	scheduler  aim.Scheduler
	typed      []rune
	typedToken uint64
	origin     FocusOrigin
	change     event.Emitter[int]
	tabOut     event.Emitter[struct{}]
}

// New returns a manager over items with vertical arrows enabled.
func New[T Item](items func() []T) *Manager[T] {
	return &Manager[T]{items: items, active: -1, vertical: true, origin: OriginProgram}
}

// WithWrap makes next/previous wrap around the ends.
func (m *Manager[T]) WithWrap() *Manager[T] {
	m.wrap = true
	return m
}

// WithHomeAndEnd enables Home and End.
func (m *Manager[T]) WithHomeAndEnd() *Manager[T] {
	m.homeAndEnd = true
	return m
}

// WithVerticalOrientation enables Up/Down navigation.
func (m *Manager[T]) WithVerticalOrientation() *Manager[T] {
	m.vertical = true
	return m
}

// WithHorizontalOrientation enables Left/Right navigation, mirrored for rtl.
func (m *Manager[T]) WithHorizontalOrientation(dir geometry.Direction) *Manager[T] {
	m.horizontal = true
	m.dir = dir
	return m
}

// WithTypeAhead enables jumping by label. The scheduler clears the typed
// buffer after TypeAheadReset; without one the buffer holds a single key.
func (m *Manager[T]) WithTypeAhead(s aim.Scheduler) *Manager[T] {
	m.typeAhead = true
	m.scheduler = s
	return m
}

// Change fires with the new active index.
func (m *Manager[T]) Change() *event.Emitter[int] { return &m.change }

// TabOut fires when Tab is pressed.
func (m *Manager[T]) TabOut() *event.Emitter[struct{}] { return &m.tabOut }

// SetFocusOrigin sets the origin passed to the next focused item.
func (m *Manager[T]) SetFocusOrigin(origin FocusOrigin) *Manager[T] {
	m.origin = origin
	return m
}

// ActiveIndex returns the active index, -1 when none.
func (m *Manager[T]) ActiveIndex() int {
	if m.active >= len(m.items()) {
		return -1
	}
	return m.active
}

// ActiveItem returns the active item.
func (m *Manager[T]) ActiveItem() (T, bool) {
	var zero T
	items := m.items()
	if m.active < 0 || m.active >= len(items) {
		return zero, false
	}
	return items[m.active], true
}

// SetActiveItem makes item active and focuses it.
func (m *Manager[T]) SetActiveItem(item T) {
	for i, it := range m.items() {
		if it == item {
			m.SetActiveIndex(i)
			return
		}
	}
}

// SetActiveIndex makes the item at index active and focuses it.
func (m *Manager[T]) SetActiveIndex(index int) {
	if !m.UpdateActiveIndex(index) {
		return
	}
	if item, ok := m.ActiveItem(); ok {
		item.Focus(m.origin)
	}
}

// UpdateActiveItem changes the active item without focusing it.
func (m *Manager[T]) UpdateActiveItem(item T) {
	for i, it := range m.items() {
		if it == item {
			m.UpdateActiveIndex(i)
			return
		}
	}
}

// UpdateActiveIndex changes the active index without focusing; it reports
// whether index was valid.
func (m *Manager[T]) UpdateActiveIndex(index int) bool {
	items := m.items()
	if index < 0 || index >= len(items) {
		return false
	}
	prev := m.active
	m.active = index
	if prev != index {
		m.change.Emit(index)
	}
	return true
}

// SetFirstItemActive activates the first enabled item.
func (m *Manager[T]) SetFirstItemActive() { m.activateFrom(0, 1) }

// SetLastItemActive activates the last enabled item.
func (m *Manager[T]) SetLastItemActive() { m.activateFrom(len(m.items())-1, -1) }

// SetNextItemActive moves to the next enabled item.
func (m *Manager[T]) SetNextItemActive() {
	if m.active < 0 {
		m.SetFirstItemActive()
		return
	}
	m.step(1)
}

// SetPreviousItemActive moves to the previous enabled item.
func (m *Manager[T]) SetPreviousItemActive() {
	if m.active < 0 && m.wrap {
		m.SetLastItemActive()
		return
	}
	m.step(-1)
}

// OnKeydown moves the active item for navigation keys and reports whether the
// key was used. Used keys have PreventDefault called.
func (m *Manager[T]) OnKeydown(ev *keys.Event) bool {
	switch ev.Key {
	case keys.Tab:
		m.tabOut.Emit(struct{}{})
		return false
	case keys.Down:
		if !m.vertical || ev.HasModifier() {
			return false
		}
		m.SetNextItemActive()
	case keys.Up:
		if !m.vertical || ev.HasModifier() {
			return false
		}
		m.SetPreviousItemActive()
	case keys.Right:
		if !m.horizontal || ev.HasModifier() {
			return false
		}
		if m.dir == geometry.RTL {
			m.SetPreviousItemActive()
		} else {
			m.SetNextItemActive()
		}
	case keys.Left:
		if !m.horizontal || ev.HasModifier() {
			return false
		}
		if m.dir == geometry.RTL {
			m.SetNextItemActive()
		} else {
			m.SetPreviousItemActive()
		}
	case keys.Home:
		if !m.homeAndEnd || ev.HasModifier() {
			return false
		}
		m.SetFirstItemActive()
	case keys.End:
		if !m.homeAndEnd || ev.HasModifier() {
			return false
		}
		m.SetLastItemActive()
	case keys.Rune:
		if !m.typeAhead || ev.HasModifier(keys.ModAlt, keys.ModCtrl, keys.ModMeta) {
			return false
		}
		m.handleTypeAhead(ev.Rune)
		return true
	default:
		return false
	}
	m.typed = m.typed[:0]
	ev.PreventDefault()
	return true
}

func (m *Manager[T]) step(delta int) {
	items := m.items()
	n := len(items)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := m.active + delta*i
		if m.wrap {
			idx = ((idx % n) + n) % n
		} else if idx < 0 || idx >= n {
			return
		}
		if !items[idx].Disabled() {
			m.SetActiveIndex(idx)
			return
		}
	}
}

func (m *Manager[T]) activateFrom(start, delta int) {
	items := m.items()
	for idx := start; idx >= 0 && idx < len(items); idx += delta {
		if !items[idx].Disabled() {
			m.SetActiveIndex(idx)
			return
		}
	}
}

func (m *Manager[T]) handleTypeAhead(r rune) {
	m.typed = append(m.typed, r)
	query := string(m.typed)
	if m.scheduler != nil {
		m.typedToken++
		token := m.typedToken
		m.scheduler.AfterFunc(TypeAheadReset, func() {
			if token == m.typedToken {
				m.typed = m.typed[:0]
			}
		})
	} else {
		m.typed = m.typed[:0]
	}
	if idx := m.matchIndex(query); idx >= 0 {
		m.SetActiveIndex(idx)
	}
}

// matchIndex prefers the first enabled item after the active one whose label
// starts with query, and otherwise the closest fuzzy match.
func (m *Manager[T]) matchIndex(query string) int {
	items := m.items()
	n := len(items)
	if n == 0 {
		return -1
	}
	upper := strings.ToUpper(query)
	for i := 1; i <= n; i++ {
		idx := (m.active + i) % n
		if idx < 0 {
			idx += n
		}
		item := items[idx]
		if item.Disabled() {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(item.Label())), upper) {
			return idx
		}
	}
	labels := make([]string, n)
	for i, item := range items {
		if item.Disabled() {
			continue
		}
		labels[i] = item.Label()
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	best := -1
	bestDistance := 0
	for _, rank := range ranks {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	return best
}
