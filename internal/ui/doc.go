// Package ui contains the Bubble Tea program that hosts a menu graph in the
// terminal. The Model type focuses on message orchestration; the menu
// engine in internal/menu owns every interaction rule.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are matched against a bubbles/key keymap and translated into
//     keys.Event values for menu.Env.HandleKey. Mouse messages become one or
//     more pointer.Event values (press, release and motion map onto mousedown,
//     click/auxclick/contextmenu and mousemove) for menu.Env.HandlePointer.
//   - Menu aim and type-ahead timers are scheduled through tickScheduler. Each
//     timer becomes a tea.Tick command whose timerMsg runs the callback back
//     on the event loop, so the engine never sees another goroutine.
//
// Rendering:
//   - styledRenderer implements menu.Renderer with the Lip Gloss styles from
//     internal/theme. View draws the bar, the body and the status line, then
//     composites every open overlay over them.
//
// Actions and reloads:
//   - Items built by the Builder hand their actions to the command bus, which
//     runs them as tea.Cmd values and reports command.ActionResult messages.
//   - An optional backend.Watcher streams menu file changes; the dispatcher
//     stores them and the model rebuilds its Scene when the definition changed.
package ui
