package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menukit/internal/geometry"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, geometry.LTR, cfg.App.Direction)
	assert.True(t, cfg.App.ShowFooter)
	assert.Equal(t, time.Second, cfg.App.WatchInterval)
	assert.Equal(t, "ltr", cfg.Flags["dir"])
	assert.Empty(t, cfg.Args)
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"MENUKIT_DIR=rtl",
		"MENUKIT_WIDTH=90",
		"MENUKIT_TRACE=1",
		"MENUKIT_WATCH=250ms",
		"MENUKIT_LOG_FILE=/tmp/env.log",
	}
	cfg, err := LoadArgs([]string{"-width", "60", "-menu-file", "menus.yaml"}, env)
	require.NoError(t, err)

	assert.Equal(t, geometry.RTL, cfg.App.Direction)
	assert.Equal(t, 60, cfg.App.Width)
	assert.Equal(t, "menus.yaml", cfg.App.MenuFile)
	assert.Equal(t, 250*time.Millisecond, cfg.App.WatchInterval)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "/tmp/env.log", cfg.Logging.FilePath)
	assert.Equal(t, []string{"-width", "60", "-menu-file", "menus.yaml"}, cfg.Args)
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"MENUKIT_HEIGHT=tall", "garbage", ""})
	require.NoError(t, err)
	assert.Zero(t, cfg.App.Height)
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	_, err := LoadArgs([]string{"-width", "-1"}, nil)
	assert.Error(t, err)

	_, err = LoadArgs([]string{"-dir", "up"}, nil)
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = LoadArgs([]string{"-nope"}, nil)
	assert.Error(t, err)
}

func TestParseDirectionIsCaseInsensitive(t *testing.T) {
	dir, err := ParseDirection(" RTL ")
	require.NoError(t, err)
	assert.Equal(t, geometry.RTL, dir)
}

const sampleYAML = `
title: sample
bar:
  - id: file
    label: File
    items:
      - id: new
        label: New
        action: status
      - id: wrap
        label: Wrap
        kind: checkbox
        checked: true
context:
  - id: copy
    label: Copy
    typeahead: Duplicate
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMenuFileDecodesNestedItems(t *testing.T) {
	def, err := LoadMenuFile(writeFile(t, "menus.yaml", sampleYAML))
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	assert.Equal(t, "sample", def.Title)
	require.Len(t, def.Bar, 1)
	require.Len(t, def.Bar[0].Items, 2)
	assert.Equal(t, "status", def.Bar[0].Items[0].Action)
	assert.Equal(t, KindCheckbox, def.Bar[0].Items[1].KindOrDefault())
	assert.True(t, def.Bar[0].Items[1].Checked)
	assert.Equal(t, "Duplicate", def.Context[0].Typeahead)
	assert.Equal(t, 4, def.Count())
}

func TestLoadMenuFileReadsJSON(t *testing.T) {
	def, err := LoadMenuFile(writeFile(t, "menus.json", `{"context":[{"id":"a","label":"A"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "A", def.Context[0].Label)
	assert.Equal(t, KindItem, def.Context[0].KindOrDefault())
}

func TestLoadMenuFileMissing(t *testing.T) {
	_, err := LoadMenuFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBrokenDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  MenuDefinition
	}{
		{name: "empty", def: MenuDefinition{}},
		{name: "missing id", def: MenuDefinition{Bar: []ItemDefinition{{Label: "File"}}}},
		{name: "missing label", def: MenuDefinition{Bar: []ItemDefinition{{ID: "file"}}}},
		{name: "duplicate id", def: MenuDefinition{Context: []ItemDefinition{
			{ID: "a", Label: "A"}, {ID: "a", Label: "B"},
		}}},
		{name: "unknown kind", def: MenuDefinition{Context: []ItemDefinition{{ID: "a", Label: "A", Kind: "toggle"}}}},
		{name: "radio without group", def: MenuDefinition{Context: []ItemDefinition{{ID: "a", Label: "A", Kind: KindRadio}}}},
		{name: "checkbox with submenu", def: MenuDefinition{Context: []ItemDefinition{{
			ID: "a", Label: "A", Kind: KindCheckbox, Items: []ItemDefinition{{ID: "b", Label: "B"}},
		}}}},
		{name: "nested duplicate", def: MenuDefinition{Bar: []ItemDefinition{{
			ID: "file", Label: "File", Items: []ItemDefinition{{ID: "x", Label: "X"}, {ID: "x", Label: "Y"}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.def.Validate(), ErrInvalidDefinition)
		})
	}
}

func TestSameIDInDifferentMenusIsAllowed(t *testing.T) {
	def := MenuDefinition{Bar: []ItemDefinition{
		{ID: "file", Label: "File", Items: []ItemDefinition{{ID: "open", Label: "Open"}}},
		{ID: "edit", Label: "Edit", Items: []ItemDefinition{{ID: "open", Label: "Open"}}},
	}}
	assert.NoError(t, def.Validate())
}

func TestDefaultMenuDefinitionIsValid(t *testing.T) {
	def := DefaultMenuDefinition()
	require.NoError(t, def.Validate())
	assert.NotEmpty(t, def.Bar)
	assert.NotEmpty(t, def.Context)
}

func TestValidateLoadsConfiguredMenuFile(t *testing.T) {
	cfg := Config{App: App{MenuFile: writeFile(t, "bad.yaml", "bar:\n  - label: File\n")}}
	assert.ErrorIs(t, Validate(cfg), ErrInvalidDefinition)

	cfg.App.MenuFile = writeFile(t, "good.yaml", sampleYAML)
	assert.NoError(t, Validate(cfg))

	assert.NoError(t, Validate(Config{}))
}
