package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/overlay"
	"github.com/atomicstack/menukit/internal/pointer"
)

func TestNewEnvValidatesCollaborators(t *testing.T) {
	_, err := NewEnv(Config{})
	assert.ErrorIs(t, err, ErrMissingOverlayService)

	overlays := Overlays(overlay.NewManager())
	_, err = NewEnv(Config{Overlays: overlays})
	assert.ErrorIs(t, err, ErrMissingMenuAim)

	env, err := NewEnv(Config{Overlays: overlays, DisableMenuAim: true})
	require.NoError(t, err)
	assert.Equal(t, geometry.LTR, env.Direction())
	assert.IsType(t, PlainRenderer{}, env.Renderer())
	assert.NotNil(t, env.ContextMenus())

	env, err = NewEnv(Config{Overlays: overlays, Scheduler: aim.NewManualScheduler(), Direction: FixedDirection(geometry.RTL)})
	require.NoError(t, err)
	assert.Equal(t, geometry.RTL, env.Direction())
}

func pointerAt(x, y float64) *pointer.Event {
	return pointer.NewEvent(pointer.ContextMenu, x, y, pointer.ButtonSecondary)
}

func TestSharedContextMenuTrackerSpansEnvs(t *testing.T) {
	tracker := NewContextMenuTracker()
	newEnv := func() *Env {
		m := overlay.NewManager()
		m.SetViewport(80, 24)
		env, err := NewEnv(Config{Overlays: Overlays(m), DisableMenuAim: true, ContextMenus: tracker})
		require.NoError(t, err)
		return env
	}
	a, err := NewContextMenuTrigger(newEnv(), geometry.RectXYWH(0, 0, 80, 24), NewPanel(leaves("A")))
	require.NoError(t, err)
	b, err := NewContextMenuTrigger(newEnv(), geometry.RectXYWH(0, 0, 80, 24), NewPanel(leaves("B")))
	require.NoError(t, err)

	require.NoError(t, a.HandleContextMenu(pointerAt(4, 4)))
	require.NoError(t, b.HandleContextMenu(pointerAt(4, 4)))

	assert.False(t, a.IsOpen())
	assert.True(t, b.IsOpen())
}

func TestMenusWithoutAimToggleImmediately(t *testing.T) {
	m := overlay.NewManager()
	m.SetViewport(80, 24)
	env, err := NewEnv(Config{Overlays: Overlays(m), DisableMenuAim: true})
	require.NoError(t, err)
	h := &harness{t: t, overlays: m, env: env}

	var first, second *MenuItem
	button := NewStandaloneItem(env, "Go")
	button.SetBounds(geometry.RectXYWH(0, 0, 4, 1))
	trigger, err := button.SetMenu(NewPanel(func(menu *Menu) error {
		first = menu.AddItem("First")
		if _, err := first.SetMenu(NewPanel(leaves("x"))); err != nil {
			return err
		}
		second = menu.AddItem("Second")
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, trigger.Open())

	h.move(first.Bounds().Left+1, first.Bounds().Top)
	require.True(t, first.IsMenuOpen())
	h.move(second.Bounds().Left+1, second.Bounds().Top)
	assert.False(t, first.IsMenuOpen())
}

func TestMenusListInlineBeforePopups(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	menus := f.env.Menus()
	require.Len(t, menus, 2)
	assert.Same(t, f.bar.Menu, menus[0])
	assert.Same(t, childMenu(t, f.file), menus[1])
}
