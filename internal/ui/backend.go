package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/backend"
	"github.com/atomicstack/menukit/internal/logging"
)

// menuFileMsg carries one watcher event, or closed once the watcher stops.
type menuFileMsg struct {
	event  backend.Event
	closed bool
}

func listenMenuFile(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		return menuFileMsg{event: evt, closed: !ok}
	}
}

func (m *Model) handleMenuFileMsg(msg tea.Msg) tea.Cmd {
	fileMsg := msg.(menuFileMsg)
	if fileMsg.closed {
		m.backend = nil
		return nil
	}
	m.reload(fileMsg.event)
	if m.backend == nil {
		return nil
	}
	return listenMenuFile(m.backend)
}

func (m *Model) reload(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	switch {
	case res.Err != nil:
		m.errMsg = fmt.Sprintf("%s: %v", evt.Kind, res.Err)
	case !res.MenusUpdated:
	default:
		if err := m.rebuild(); err != nil {
			logging.Error(err)
			m.errMsg = fmt.Sprintf("%s: %v", evt.Kind, err)
			return
		}
		m.errMsg = ""
		m.infoMsg = "menus reloaded"
	}
}
