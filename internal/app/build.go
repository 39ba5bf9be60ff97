package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/menu"
	"github.com/atomicstack/menukit/internal/ui"
	"github.com/atomicstack/menukit/internal/ui/command"
)

// sceneBuilder turns one definition into menus. Submenu templates run on
// every open, so checked states live here keyed by item path rather than
// on the items themselves.
type sceneBuilder struct {
	env      *menu.Env
	actions  *Actions
	dispatch func(command.Request)
	checked  map[string]bool
}

// NewBuilder returns a ui.Builder that resolves item actions in actions.
func NewBuilder(actions *Actions) ui.Builder {
	if actions == nil {
		actions = DefaultActions()
	}
	return func(env *menu.Env, def config.MenuDefinition, dispatch func(command.Request)) (*ui.Scene, error) {
		b := &sceneBuilder{
			env:      env,
			actions:  actions,
			dispatch: dispatch,
			checked:  map[string]bool{},
		}
		return b.build(def)
	}
}

func (b *sceneBuilder) build(def config.MenuDefinition) (*ui.Scene, error) {
	if err := b.checkActions(def.Bar); err != nil {
		return nil, err
	}
	if err := b.checkActions(def.Context); err != nil {
		return nil, err
	}
	b.seed("bar", def.Bar)
	b.seed("context", def.Context)

	scene := &ui.Scene{Title: def.Title}
	if len(def.Bar) > 0 {
		bar, err := menu.NewMenuBar(b.env)
		if err != nil {
			return nil, err
		}
		scene.Bar = bar
		if err := b.template("bar", nil, def.Bar)(bar.Menu); err != nil {
			scene.Destroy()
			return nil, err
		}
	}
	if len(def.Context) > 0 {
		area, err := menu.NewContextMenuTrigger(b.env, geometry.Rect{}, menu.NewPanel(b.template("context", nil, def.Context)))
		if err != nil {
			scene.Destroy()
			return nil, err
		}
		scene.Context = append(scene.Context, area)
	}
	return scene, nil
}

// checkActions fails on the first item naming an unregistered action.
func (b *sceneBuilder) checkActions(items []config.ItemDefinition) error {
	for _, item := range items {
		if len(item.Items) > 0 {
			if err := b.checkActions(item.Items); err != nil {
				return err
			}
			continue
		}
		if _, err := b.actions.Lookup(item.Action); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
	}
	return nil
}

func (b *sceneBuilder) seed(prefix string, items []config.ItemDefinition) {
	for _, item := range items {
		key := prefix + "/" + item.ID
		if item.Checked {
			b.checked[key] = true
		}
		b.seed(key, item.Items)
	}
}

// template fills a menu with items. labels is the chain of labels leading
// to the menu and ends up in the status line.
func (b *sceneBuilder) template(prefix string, labels []string, items []config.ItemDefinition) menu.Template {
	return func(m *menu.Menu) error {
		groups := map[string]*menu.MenuGroup{}
		for _, def := range items {
			key := prefix + "/" + def.ID
			path := append(append([]string(nil), labels...), def.Label)

			var item *menu.MenuItem
			switch def.KindOrDefault() {
			case config.KindCheckbox:
				item = m.AddCheckbox(def.Label, b.checked[key])
			case config.KindRadio:
				group, ok := groups[def.Group]
				if !ok {
					group = m.AddGroup()
					groups[def.Group] = group
				}
				item = group.AddRadio(def.Label, b.checked[key])
			default:
				item = m.AddItem(def.Label)
			}
			item.WithID(def.ID).WithDisabled(def.Disabled)
			if def.Typeahead != "" {
				item.WithTypeaheadLabel(def.Typeahead)
			}

			if len(def.Items) > 0 {
				if _, err := item.SetMenu(menu.NewPanel(b.template(key, path, def.Items))); err != nil {
					return fmt.Errorf("item %s: %w", def.ID, err)
				}
				continue
			}
			action, err := b.actions.Lookup(def.Action)
			if err != nil {
				return fmt.Errorf("item %s: %w", def.ID, err)
			}
			b.bind(item, def, key, prefix, path, action)
		}
		return nil
	}
}

func (b *sceneBuilder) bind(item *menu.MenuItem, def config.ItemDefinition, key, prefix string, path []string, action Action) {
	item.OnTriggered(func(it *menu.MenuItem) {
		if it.Kind() == menu.KindRadio && it.Group() != nil {
			for _, sibling := range it.Group().Items() {
				delete(b.checked, prefix+"/"+sibling.ID())
			}
		}
		if it.Checked() {
			b.checked[key] = true
		} else {
			delete(b.checked, key)
		}
		ctx := ActionContext{
			ID:      def.ID,
			Label:   def.Label,
			Path:    path,
			Kind:    def.KindOrDefault(),
			Checked: it.Checked(),
		}
		b.dispatch(command.Request{
			ID:    def.ID,
			Label: def.Label,
			Handler: func() tea.Msg {
				return action(ctx)
			},
		})
	})
}
