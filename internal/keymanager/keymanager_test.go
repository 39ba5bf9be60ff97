package keymanager

import (
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/stretchr/testify/assert"
)

type entry struct {
	label    string
	disabled bool
	focused  []FocusOrigin
}

func (e *entry) Disabled() bool           { return e.disabled }
func (e *entry) Label() string            { return e.label }
func (e *entry) Focus(origin FocusOrigin) { e.focused = append(e.focused, origin) }

func entries(labels ...string) []*entry {
	out := make([]*entry, len(labels))
	for i, l := range labels {
		out[i] = &entry{label: l}
	}
	return out
}

func newManager(list []*entry) *Manager[*entry] {
	return New(func() []*entry { return list })
}

func TestVerticalNavigationWrapsAndSkipsDisabled(t *testing.T) {
	list := entries("Cut", "Copy", "Paste")
	list[1].disabled = true
	m := newManager(list).WithWrap()

	m.SetFirstItemActive()
	assert.Equal(t, 0, m.ActiveIndex())

	ev := keys.Press(keys.Down)
	assert.True(t, m.OnKeydown(ev))
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 2, m.ActiveIndex(), "disabled Copy is skipped")

	m.OnKeydown(keys.Press(keys.Down))
	assert.Equal(t, 0, m.ActiveIndex(), "wraps to the top")

	m.OnKeydown(keys.Press(keys.Up))
	assert.Equal(t, 2, m.ActiveIndex(), "wraps to the bottom")
}

func TestNoWrapStopsAtEnds(t *testing.T) {
	list := entries("a", "b")
	m := newManager(list)
	m.SetLastItemActive()
	m.OnKeydown(keys.Press(keys.Down))
	assert.Equal(t, 1, m.ActiveIndex())
}

func TestHorizontalArrowsMirrorUnderRTL(t *testing.T) {
	list := entries("File", "Edit", "View")
	ltr := newManager(list).WithHorizontalOrientation(geometry.LTR)
	ltr.SetFirstItemActive()
	ltr.OnKeydown(keys.Press(keys.Right))
	assert.Equal(t, 1, ltr.ActiveIndex())

	rtl := newManager(list).WithWrap().WithHorizontalOrientation(geometry.RTL)
	rtl.SetFirstItemActive()
	rtl.OnKeydown(keys.Press(keys.Right))
	assert.Equal(t, 2, rtl.ActiveIndex(), "right moves backwards in rtl")
	rtl.OnKeydown(keys.Press(keys.Left))
	assert.Equal(t, 0, rtl.ActiveIndex())
}

func TestHorizontalKeysIgnoredWithoutHorizontalOrientation(t *testing.T) {
	m := newManager(entries("a", "b"))
	m.SetFirstItemActive()
	ev := keys.Press(keys.Right)
	assert.False(t, m.OnKeydown(ev))
	assert.False(t, ev.DefaultPrevented())
}

func TestHomeEnd(t *testing.T) {
	m := newManager(entries("a", "b", "c")).WithHomeAndEnd()
	m.OnKeydown(keys.Press(keys.End))
	assert.Equal(t, 2, m.ActiveIndex())
	m.OnKeydown(keys.Press(keys.Home))
	assert.Equal(t, 0, m.ActiveIndex())
}

func TestFocusOriginIsPassedToItems(t *testing.T) {
	list := entries("a", "b")
	m := newManager(list)
	m.SetFocusOrigin(OriginKeyboard).SetFirstItemActive()
	assert.Equal(t, []FocusOrigin{OriginKeyboard}, list[0].focused)

	m.UpdateActiveIndex(1)
	assert.Empty(t, list[1].focused, "update does not focus")
}

func TestTypeAheadPrefixThenFuzzy(t *testing.T) {
	sched := aim.NewManualScheduler()
	list := entries("Open", "Save", "Save As", "Print")
	m := newManager(list).WithTypeAhead(sched)
	m.SetFirstItemActive()

	m.OnKeydown(keys.Char('s'))
	assert.Equal(t, 1, m.ActiveIndex())
	m.OnKeydown(keys.Char('a'))
	assert.Equal(t, 2, m.ActiveIndex(), "sa matches the next label with that prefix")

	sched.Advance(TypeAheadReset)
	m.OnKeydown(keys.Char('p'))
	assert.Equal(t, 3, m.ActiveIndex())

	sched.Advance(TypeAheadReset)
	m.OnKeydown(keys.Char('r'))
	m.OnKeydown(keys.Char('n'))
	assert.Equal(t, 3, m.ActiveIndex(), "rn only matches Print fuzzily")
}

func TestTypeAheadBufferResetsAfterNavigation(t *testing.T) {
	sched := aim.NewManualScheduler()
	list := entries("Alpha", "Beta", "Bravo")
	m := newManager(list).WithTypeAhead(sched)
	m.SetFirstItemActive()
	m.OnKeydown(keys.Char('b'))
	assert.Equal(t, 1, m.ActiveIndex())
	m.OnKeydown(keys.Press(keys.Up))
	m.OnKeydown(keys.Char('b'))
	assert.Equal(t, 1, m.ActiveIndex())
	sched.Advance(time.Second)
}

func TestChangeEmitsOnMove(t *testing.T) {
	m := newManager(entries("a", "b"))
	var got []int
	m.Change().Subscribe(func(i int) { got = append(got, i) })
	m.SetFirstItemActive()
	m.SetFirstItemActive()
	m.SetNextItemActive()
	assert.Equal(t, []int{0, 1}, got)
}
