// Package keys describes keyboard input in terms the menu engine understands,
// independent of the terminal library that produced it.
package keys

import "strings"

// Key names a key the menus react to. Printable characters use Rune.
type Key string

const (
	Up     Key = "up"
	Down   Key = "down"
	Left   Key = "left"
	Right  Key = "right"
	Enter  Key = "enter"
	Space  Key = "space"
	Escape Key = "esc"
	Tab    Key = "tab"
	Home   Key = "home"
	End    Key = "end"
	Rune   Key = "rune"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// Event is a key press travelling from the focused item up to its menus.
type Event struct {
	Key  Key
	Rune rune
	Mods Modifier

	defaultPrevented bool
	stopped          bool
}

// Press builds an Event for key with the given modifiers.
func Press(key Key, mods ...Modifier) *Event {
	ev := &Event{Key: key}
	for _, m := range mods {
		ev.Mods |= m
	}
	if key == Space {
		ev.Rune = ' '
	}
	return ev
}

// Char builds an Event for a printable character.
func Char(r rune) *Event {
	if r == ' ' {
		return Press(Space)
	}
	return &Event{Key: Rune, Rune: r}
}

// HasModifier reports whether any of mods is held; with no arguments it
// reports whether any modifier at all is held.
func (e *Event) HasModifier(mods ...Modifier) bool {
	if len(mods) == 0 {
		return e.Mods != 0
	}
	for _, m := range mods {
		if e.Mods&m != 0 {
			return true
		}
	}
	return false
}

// PreventDefault marks the event as consumed by a menu.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching enclosing menus.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

func (e *Event) String() string {
	var b strings.Builder
	if e.Mods&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if e.Mods&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if e.Mods&ModMeta != 0 {
		b.WriteString("meta+")
	}
	if e.Mods&ModShift != 0 {
		b.WriteString("shift+")
	}
	if e.Key == Rune {
		b.WriteRune(e.Rune)
	} else {
		b.WriteString(string(e.Key))
	}
	return b.String()
}
