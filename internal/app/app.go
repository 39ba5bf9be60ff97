package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/backend"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/ui"
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg config.App) error {
	model, stop, err := newModel(cfg)
	if err != nil {
		return err
	}
	defer stop()
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}

// loadDefinition reads the configured menu file, or falls back to the
// built-in demo menus.
func loadDefinition(cfg config.App) (config.MenuDefinition, error) {
	if cfg.MenuFile == "" {
		return config.DefaultMenuDefinition(), nil
	}
	def, err := config.LoadMenuFile(cfg.MenuFile)
	if err != nil {
		return config.MenuDefinition{}, err
	}
	if err := def.Validate(); err != nil {
		return config.MenuDefinition{}, err
	}
	events.App.MenuFile(cfg.MenuFile, def.Count())
	return def, nil
}

// newModel builds the UI model and, when the menu file is watched, the
// watcher feeding it. stop releases the watcher.
func newModel(cfg config.App) (*ui.Model, func(), error) {
	def, err := loadDefinition(cfg)
	if err != nil {
		return nil, nil, err
	}
	var watcher *backend.Watcher
	stop := func() {}
	if cfg.MenuFile != "" && cfg.WatchInterval > 0 {
		watcher = backend.NewWatcher(cfg.MenuFile, cfg.WatchInterval)
		stop = watcher.Stop
	}
	model, err := ui.NewModel(def, NewBuilder(DefaultActions()), ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Direction:  cfg.Direction,
		ShowFooter: cfg.ShowFooter,
		DisableAim: cfg.DisableAim,
		Watcher:    watcher,
	})
	if err != nil {
		stop()
		return nil, nil, err
	}
	return model, stop, nil
}
