package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/logging"
	"github.com/atomicstack/menukit/internal/ui/command"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		logging.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	switch {
	case result.Clear:
		m.infoMsg = ""
	case result.Info != "":
		m.infoMsg = result.Info
	}
	if result.Quit {
		return tea.Quit
	}
	return nil
}
