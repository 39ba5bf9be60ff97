package command

import (
	"errors"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/logging/events"
)

// ErrActionPanicked wraps a panic raised by an action handler.
var ErrActionPanicked = errors.New("action panicked")

// Handler runs an action and returns the message describing its outcome.
type Handler func() tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// ActionResult reports the outcome of an action to the model.
type ActionResult struct {
	ID    string
	Info  string
	Err   error
	Clear bool
	Quit  bool
}

// Bus turns action requests into Bubble Tea commands and counts the ones
// that have been queued but not yet run.
type Bus struct {
	inflight atomic.Int64
}

func New() *Bus {
	return &Bus{}
}

// Pending reports how many queued actions have not finished.
func (b *Bus) Pending() int {
	return int(b.inflight.Load())
}

// Execute wraps req into a command. A panicking handler yields an
// ActionResult carrying ErrActionPanicked instead of crashing the program.
func (b *Bus) Execute(req Request) tea.Cmd {
	depth := b.inflight.Add(1)
	events.Command.Queue(req.ID, req.Label, int(depth))
	return func() (msg tea.Msg) {
		defer b.inflight.Add(-1)
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%w: %s: %v", ErrActionPanicked, req.ID, r)
				events.Command.Failure(req.ID, req.Label, err)
				msg = ActionResult{ID: req.ID, Err: err}
			}
		}()
		msg = req.Handler()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
