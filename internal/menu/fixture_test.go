package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/pointer"
)

type harness struct {
	t        *testing.T
	overlays *overlay.Manager
	sched    *aim.ManualScheduler
	env      *Env
}

func newHarness(t *testing.T, dir geometry.Direction) *harness {
	t.Helper()
	overlays := overlay.NewManager()
	overlays.SetViewport(80, 24)
	sched := aim.NewManualScheduler()
	env, err := NewEnv(Config{
		Overlays:  Overlays(overlays),
		Direction: FixedDirection(dir),
		Scheduler: sched,
	})
	require.NoError(t, err)
	return &harness{t: t, overlays: overlays, sched: sched, env: env}
}

func (h *harness) pointer(kind pointer.Kind, x, y float64, button pointer.Button) {
	h.env.HandlePointer(pointer.NewEvent(kind, x, y, button))
}

func (h *harness) move(x, y float64) {
	h.pointer(pointer.Move, x, y, pointer.ButtonPrimary)
}

// moveSampled repeats each move so menu aim keeps one sample per point.
func (h *harness) moveSampled(pts ...geometry.Point) {
	for _, p := range pts {
		for i := 0; i < aim.SampleFrequency; i++ {
			h.move(p.X, p.Y)
		}
	}
}

func (h *harness) click(x, y float64) {
	h.pointer(pointer.Click, x, y, pointer.ButtonPrimary)
}

func (h *harness) press(key keys.Key) *keys.Event {
	ev := keys.Press(key)
	h.env.HandleKey(ev)
	return ev
}

func (h *harness) focused() *MenuItem {
	h.t.Helper()
	item, ok := h.env.Focused()
	require.True(h.t, ok, "expected a focused item")
	return item
}

func leaves(labels ...string) Template {
	return func(m *Menu) error {
		for _, label := range labels {
			m.AddItem(label)
		}
		return nil
	}
}

func childMenu(t *testing.T, item *MenuItem) *Menu {
	t.Helper()
	require.NotNil(t, item.Trigger())
	m, ok := item.Trigger().ChildMenu()
	require.True(t, ok, "%s has no open menu", item.Text())
	return m
}

func itemNamed(t *testing.T, m *Menu, text string) *MenuItem {
	t.Helper()
	for _, item := range m.Items() {
		if item.Text() == text {
			return item
		}
	}
	t.Fatalf("no item %q", text)
	return nil
}

// barFixture is a menu bar laid out on row 0:
//
//	File  (x 0-7)  New, Open, Recent > [a.txt, b.txt], Quit
//	Edit  (x 8-15) Undo, Redo
//	Help  (x 16-23)
//
// The File dropdown opens at (0,1) and is 12x6 with items on rows 2-5; the
// Recent submenu opens at (11,4).
type barFixture struct {
	*harness
	bar              *MenuBar
	file, edit, help *MenuItem
	// recent is the Recent item of the File menu currently open.
	recent *MenuItem
}

func newBarFixture(t *testing.T) *barFixture {
	t.Helper()
	f := &barFixture{harness: newHarness(t, geometry.LTR)}
	bar, err := NewMenuBar(f.env)
	require.NoError(t, err)
	f.bar = bar

	f.file = bar.AddItem("File")
	_, err = f.file.SetMenu(NewPanel(func(m *Menu) error {
		m.AddItem("New")
		m.AddItem("Open")
		f.recent = m.AddItem("Recent")
		if _, err := f.recent.SetMenu(NewPanel(leaves("a.txt", "b.txt"))); err != nil {
			return err
		}
		m.AddItem("Quit")
		return nil
	}))
	require.NoError(t, err)

	f.edit = bar.AddItem("Edit")
	_, err = f.edit.SetMenu(NewPanel(leaves("Undo", "Redo")))
	require.NoError(t, err)

	f.help = bar.AddItem("Help")
	bar.SetBounds(geometry.RectXYWH(0, 0, 80, 1))
	return f
}
