package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerMsg struct {
	id int
}

// tickScheduler implements aim.Scheduler on top of tea.Tick. Timers are
// queued as commands during Update and their callbacks run when the
// matching timerMsg comes back through the event loop.
type tickScheduler struct {
	next    int
	pending map[int]func()
	queued  []tea.Cmd
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{pending: map[int]func(){}}
}

func (s *tickScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return func() { delete(s.pending, id) }
}

// drain hands over the tick commands queued since the last call.
func (s *tickScheduler) drain() []tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return cmds
}

// fire runs the callback for id unless it was cancelled or already ran.
func (s *tickScheduler) fire(id int) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	timer, ok := msg.(timerMsg)
	if !ok || m.ticks == nil {
		return nil
	}
	m.ticks.fire(timer.id)
	return nil
}
