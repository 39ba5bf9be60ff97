package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menukit/internal/aim"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keymanager"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/pointer"
)

func TestMenuBarLaysItemsOutSideBySide(t *testing.T) {
	f := newBarFixture(t)
	assert.Equal(t, geometry.RectXYWH(0, 0, 8, 1), f.file.Bounds())
	assert.Equal(t, geometry.RectXYWH(8, 0, 8, 1), f.edit.Bounds())
	assert.Equal(t, geometry.RectXYWH(16, 0, 8, 1), f.help.Bounds())
	assert.True(t, f.bar.IsInline())
	assert.True(t, f.bar.MenuStack().HasInlineMenu())
}

func TestMenuBarClickTogglesDropdown(t *testing.T) {
	f := newBarFixture(t)

	f.click(2, 0)
	require.True(t, f.file.IsMenuOpen())
	fileMenu := childMenu(t, f.file)
	assert.Equal(t, geometry.RectXYWH(0, 1, 12, 6), fileMenu.Bounds())
	assert.Equal(t, geometry.RectXYWH(1, 4, 10, 1), itemNamed(t, fileMenu, "Recent").Bounds())
	assert.Equal(t, 1, f.bar.MenuStack().Len())
	triggerItem, ok := f.bar.TriggerItem()
	require.True(t, ok)
	assert.Same(t, f.file, triggerItem)

	f.click(2, 0)
	assert.False(t, f.file.IsMenuOpen())
	assert.True(t, f.bar.MenuStack().IsEmpty())
	assert.True(t, fileMenu.Destroyed())
	_, ok = f.bar.TriggerItem()
	assert.False(t, ok)
}

func TestMenuBarHoverSwitchesDropdownImmediately(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	require.True(t, f.file.IsMenuOpen())

	f.move(3, 3)
	f.move(10, 0)

	assert.False(t, f.file.IsMenuOpen())
	require.True(t, f.edit.IsMenuOpen())
	assert.Zero(t, f.sched.PendingCount(), "a horizontal bar never defers")
	top, ok := f.bar.MenuStack().Peek()
	require.True(t, ok)
	assert.Equal(t, childMenu(t, f.edit).Handle(), top.Handle())
	assert.Equal(t, 1, f.bar.MenuStack().Len())
}

func TestMenuBarHoverDoesNothingWhileClosed(t *testing.T) {
	f := newBarFixture(t)
	f.move(2, 0)
	f.move(10, 0)
	assert.False(t, f.file.IsMenuOpen())
	assert.False(t, f.edit.IsMenuOpen())
}

func TestMenuBarArrowKeysCarryOpenDropdown(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	require.Same(t, f.file, f.focused())

	f.press(keys.Down)
	require.True(t, f.file.IsMenuOpen())
	assert.Equal(t, "New", f.focused().Text())

	// a leaf's forward arrow moves on to the next bar item
	f.press(keys.Right)
	assert.False(t, f.file.IsMenuOpen())
	assert.True(t, f.edit.IsMenuOpen())
	assert.Same(t, f.edit, f.focused())

	f.press(keys.Left)
	assert.False(t, f.edit.IsMenuOpen())
	assert.True(t, f.file.IsMenuOpen())
	assert.Same(t, f.file, f.focused())
	assert.Equal(t, 1, f.bar.MenuStack().Len())
}

func TestMenuBarBackArrowInDropdownOpensPreviousItem(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	f.press(keys.Right)
	require.Same(t, f.edit, f.focused())
	f.press(keys.Down)
	require.True(t, f.edit.IsMenuOpen())
	require.Equal(t, "Undo", f.focused().Text())

	ev := f.press(keys.Left)

	assert.True(t, ev.DefaultPrevented())
	assert.False(t, f.edit.IsMenuOpen())
	assert.True(t, f.file.IsMenuOpen())
	assert.Same(t, f.file, f.focused())
}

func TestMenuBarUpOpensDropdownAtLastItem(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	f.press(keys.Up)
	require.True(t, f.file.IsMenuOpen())
	assert.Equal(t, "Quit", f.focused().Text())
}

func TestEscapeReturnsFocusToBarItem(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	f.press(keys.Down)
	require.True(t, f.file.IsMenuOpen())

	f.press(keys.Escape)

	assert.False(t, f.file.IsMenuOpen())
	assert.True(t, f.bar.MenuStack().IsEmpty())
	assert.Same(t, f.file, f.focused())
	assert.Equal(t, keymanager.OriginKeyboard, f.env.FocusOrigin())
}

func TestTabClosesWholeStack(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	f.press(keys.Down)
	f.press(keys.Down)
	f.press(keys.Down)
	require.Equal(t, "Recent", f.focused().Text())
	f.press(keys.Right)
	require.True(t, f.recent.IsMenuOpen())
	require.Equal(t, "a.txt", f.focused().Text())
	require.Equal(t, 2, f.bar.MenuStack().Len())

	f.press(keys.Tab)

	assert.True(t, f.bar.MenuStack().IsEmpty())
	assert.Empty(t, f.overlays.Attached())
	assert.Same(t, f.file, f.focused())
}

func TestBlurClosesInlineMenuStack(t *testing.T) {
	f := newBarFixture(t)
	f.pointer(pointer.Down, 2, 0, pointer.ButtonPrimary)
	f.click(2, 0)
	require.True(t, f.file.IsMenuOpen())
	assert.Equal(t, -1, f.bar.TabIndex())

	f.pointer(pointer.Down, 70, 20, pointer.ButtonPrimary)

	assert.False(t, f.file.IsMenuOpen())
	assert.True(t, f.bar.MenuStack().IsEmpty())
	_, ok := f.env.Focused()
	assert.False(t, ok)
	assert.Equal(t, 0, f.bar.TabIndex())
}

func TestOutsideClickInsideStackClosesOnlySubmenus(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	require.NoError(t, f.recent.Trigger().Open())
	require.Equal(t, 2, f.bar.MenuStack().Len())

	// the File menu's left border: inside the stack, on no item
	f.click(0, 3)
	assert.False(t, f.recent.IsMenuOpen())
	assert.True(t, f.file.IsMenuOpen())
	assert.Equal(t, 1, f.bar.MenuStack().Len())

	f.click(70, 20)
	assert.False(t, f.file.IsMenuOpen())
	assert.True(t, f.bar.MenuStack().IsEmpty())
}

func TestHoverOpensSubmenuInsideDropdown(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	f.move(2, 4)

	require.True(t, f.recent.IsMenuOpen())
	assert.Equal(t, geometry.RectXYWH(11, 4, 11, 4), childMenu(t, f.recent).Bounds())
	assert.Same(t, f.recent, f.focused())
	assert.Equal(t, keymanager.OriginMouse, f.env.FocusOrigin())
}

func TestMenuAimDefersClosingWhileHeadingIntoSubmenu(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	f.moveSampled(geometry.Pt(2, 4), geometry.Pt(4, 4), geometry.Pt(6, 4))
	require.True(t, f.recent.IsMenuOpen())

	// crossing Quit on the way to the submenu
	f.move(9, 5)
	assert.True(t, f.recent.IsMenuOpen(), "close is held back")
	assert.Equal(t, 1, f.sched.PendingCount())

	f.sched.Advance(aim.CloseDelay)
	assert.False(t, f.recent.IsMenuOpen(), "pointer settled on Quit")
	assert.Equal(t, 1, f.bar.MenuStack().Len())
}

func TestMenuAimDropsDeferredCloseOncePointerLeaves(t *testing.T) {
	f := newBarFixture(t)
	f.click(2, 0)
	f.moveSampled(geometry.Pt(2, 4), geometry.Pt(4, 4), geometry.Pt(6, 4))
	f.move(9, 5)
	require.Equal(t, 1, f.sched.PendingCount())

	f.move(50, 20)
	f.sched.Advance(aim.CloseDelay)

	assert.True(t, f.recent.IsMenuOpen())
	assert.Equal(t, 2, f.bar.MenuStack().Len())
}

func TestPlainRendererDrawsFramedDropdown(t *testing.T) {
	f := newBarFixture(t)
	f.bar.FocusFirstItem(keymanager.OriginKeyboard)
	f.press(keys.Down)
	lines := childMenu(t, f.file).Render()

	require.Len(t, lines, 6)
	assert.Equal(t, "┌──────────┐", lines[0])
	assert.Equal(t, "│> New     │", lines[1])
	assert.Equal(t, "│  Recent ›│", lines[3])
	assert.Equal(t, "└──────────┘", lines[5])

	bar := f.bar.Render()
	require.Len(t, bar, 1)
	assert.Equal(t, "  File ›  Edit ›  Help  ", bar[0])
}
