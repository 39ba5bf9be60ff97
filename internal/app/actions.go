package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/ui/command"
)

// ErrUnknownAction is returned when a definition names an action that is
// not registered.
var ErrUnknownAction = errors.New("unknown action")

const defaultAction = "status"

// ActionContext describes the item an action runs for. Checked holds the
// state after activation.
type ActionContext struct {
	ID      string
	Label   string
	Path    []string
	Kind    string
	Checked bool
}

// Action produces the message reported back to the model.
type Action func(ctx ActionContext) tea.Msg

// Actions maps action names from a menu definition to their handlers.
type Actions struct {
	handlers map[string]Action
}

// NewActions returns an empty registry.
func NewActions() *Actions {
	return &Actions{handlers: map[string]Action{}}
}

// DefaultActions returns the built-in quit, clear and status actions.
func DefaultActions() *Actions {
	a := NewActions()
	a.Register("quit", func(ctx ActionContext) tea.Msg {
		return command.ActionResult{ID: ctx.ID, Quit: true}
	})
	a.Register("clear", func(ctx ActionContext) tea.Msg {
		return command.ActionResult{ID: ctx.ID, Clear: true}
	})
	a.Register(defaultAction, func(ctx ActionContext) tea.Msg {
		return command.ActionResult{ID: ctx.ID, Info: describe(ctx)}
	})
	return a
}

// Register adds or replaces the action called name.
func (a *Actions) Register(name string, fn Action) {
	a.handlers[strings.ToLower(name)] = fn
}

// Lookup returns the action called name. An empty name selects the status
// action.
func (a *Actions) Lookup(name string) (Action, error) {
	if name == "" {
		name = defaultAction
	}
	fn, ok := a.handlers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
	}
	return fn, nil
}

// Names lists the registered actions.
func (a *Actions) Names() []string {
	names := make([]string, 0, len(a.handlers))
	for name := range a.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func describe(ctx ActionContext) string {
	where := strings.Join(ctx.Path, " → ")
	switch ctx.Kind {
	case config.KindCheckbox:
		state := "off"
		if ctx.Checked {
			state = "on"
		}
		return fmt.Sprintf("%s: %s", where, state)
	case config.KindRadio:
		return fmt.Sprintf("%s selected", where)
	}
	return fmt.Sprintf("ran %s", where)
}
