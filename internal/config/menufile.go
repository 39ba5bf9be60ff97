package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrInvalidDirection  = errors.New("invalid direction")
	ErrInvalidDefinition = errors.New("invalid menu definition")
)

// Item kinds accepted in a definition file.
const (
	KindItem     = "item"
	KindCheckbox = "checkbox"
	KindRadio    = "radio"
)

// MenuDefinition describes the menu bar and the context menu of the demo.
type MenuDefinition struct {
	Title   string           `mapstructure:"title"`
	Bar     []ItemDefinition `mapstructure:"bar"`
	Context []ItemDefinition `mapstructure:"context"`
}

// ItemDefinition is one entry in a menu. Entries with Items open a submenu.
type ItemDefinition struct {
	ID        string           `mapstructure:"id"`
	Label     string           `mapstructure:"label"`
	Kind      string           `mapstructure:"kind"`
	Group     string           `mapstructure:"group"`
	Checked   bool             `mapstructure:"checked"`
	Disabled  bool             `mapstructure:"disabled"`
	Typeahead string           `mapstructure:"typeahead"`
	Action    string           `mapstructure:"action"`
	Items     []ItemDefinition `mapstructure:"items"`
}

// KindOrDefault returns the item kind, treating an empty kind as a plain item.
func (d ItemDefinition) KindOrDefault() string {
	if d.Kind == "" {
		return KindItem
	}
	return strings.ToLower(d.Kind)
}

// LoadMenuFile reads a definition from path in any format viper understands.
func LoadMenuFile(path string) (MenuDefinition, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return MenuDefinition{}, fmt.Errorf("read menu file %s: %w", path, err)
	}
	var def MenuDefinition
	if err := v.Unmarshal(&def); err != nil {
		return MenuDefinition{}, fmt.Errorf("decode menu file %s: %w", path, err)
	}
	return def, nil
}

// Validate checks ids, kinds and radio groups throughout the definition.
func (d MenuDefinition) Validate() error {
	if len(d.Bar) == 0 && len(d.Context) == 0 {
		return fmt.Errorf("%w: no bar or context items", ErrInvalidDefinition)
	}
	if err := validateItems("bar", d.Bar); err != nil {
		return err
	}
	return validateItems("context", d.Context)
}

// Count returns the number of items in the definition, submenus included.
func (d MenuDefinition) Count() int {
	return countItems(d.Bar) + countItems(d.Context)
}

func countItems(items []ItemDefinition) int {
	n := len(items)
	for _, item := range items {
		n += countItems(item.Items)
	}
	return n
}

func validateItems(path string, items []ItemDefinition) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		where := fmt.Sprintf("%s[%d]", path, i)
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: %s has no id", ErrInvalidDefinition, where)
		}
		where = path + "/" + item.ID
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidDefinition, where)
		}
		seen[item.ID] = struct{}{}
		if strings.TrimSpace(item.Label) == "" {
			return fmt.Errorf("%w: %s has no label", ErrInvalidDefinition, where)
		}
		switch item.KindOrDefault() {
		case KindItem:
		case KindCheckbox, KindRadio:
			if len(item.Items) > 0 {
				return fmt.Errorf("%w: %s is a %s and cannot open a submenu", ErrInvalidDefinition, where, item.KindOrDefault())
			}
			if item.KindOrDefault() == KindRadio && item.Group == "" {
				return fmt.Errorf("%w: radio %s needs a group", ErrInvalidDefinition, where)
			}
		default:
			return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidDefinition, where, item.Kind)
		}
		if err := validateItems(where, item.Items); err != nil {
			return err
		}
	}
	return nil
}

// DefaultMenuDefinition is used when no menu file is configured.
func DefaultMenuDefinition() MenuDefinition {
	leaf := func(id, label string) ItemDefinition {
		return ItemDefinition{ID: id, Label: label}
	}
	return MenuDefinition{
		Title: "menukit",
		Bar: []ItemDefinition{
			{ID: "file", Label: "File", Items: []ItemDefinition{
				leaf("new", "New"),
				leaf("open", "Open"),
				{ID: "recent", Label: "Recent", Items: []ItemDefinition{
					leaf("notes", "notes.txt"),
					leaf("todo", "todo.txt"),
				}},
				{ID: "quit", Label: "Quit", Action: "quit"},
			}},
			{ID: "edit", Label: "Edit", Items: []ItemDefinition{
				leaf("undo", "Undo"),
				{ID: "redo", Label: "Redo", Disabled: true},
				leaf("cut", "Cut"),
				leaf("copy", "Copy"),
				leaf("paste", "Paste"),
			}},
			{ID: "view", Label: "View", Items: []ItemDefinition{
				{ID: "wrap", Label: "Wrap lines", Kind: KindCheckbox},
				{ID: "numbers", Label: "Line numbers", Kind: KindCheckbox, Checked: true},
				{ID: "small", Label: "Small", Kind: KindRadio, Group: "zoom"},
				{ID: "medium", Label: "Medium", Kind: KindRadio, Group: "zoom", Checked: true},
				{ID: "large", Label: "Large", Kind: KindRadio, Group: "zoom"},
				{ID: "theme", Label: "Theme", Items: []ItemDefinition{
					leaf("light", "Light"),
					leaf("dark", "Dark"),
				}},
			}},
			{ID: "help", Label: "Help", Items: []ItemDefinition{
				{ID: "clear", Label: "Clear status", Action: "clear"},
				leaf("about", "About"),
			}},
		},
		Context: []ItemDefinition{
			leaf("ctx-cut", "Cut"),
			leaf("ctx-copy", "Copy"),
			leaf("ctx-paste", "Paste"),
			{ID: "ctx-share", Label: "Share", Items: []ItemDefinition{
				leaf("mail", "Mail"),
				leaf("chat", "Chat"),
			}},
		},
	}
}
