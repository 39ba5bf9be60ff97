package menu

import (
	"fmt"

	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/stack"
)

// Template fills a freshly created menu with items. It runs every time the
// menu opens, so nested panels should be created inside it.
type Template func(m *Menu) error

// MenuPanel binds a template to the menu it will become once a trigger
// opens it. The trigger hands the panel its stack, and a panel can serve
// only one trigger.
type MenuPanel struct {
	template    Template
	orientation geometry.Orientation
	stack       *stack.Stack
	menu        *Menu
}

// NewPanel returns a panel for a vertical menu built by template.
func NewPanel(template Template) *MenuPanel {
	return &MenuPanel{template: template}
}

// WithOrientation sets the orientation of menus built from the panel.
func (p *MenuPanel) WithOrientation(o geometry.Orientation) *MenuPanel {
	p.orientation = o
	return p
}

// MenuStack returns the stack assigned by the panel's trigger.
func (p *MenuPanel) MenuStack() *stack.Stack { return p.stack }

// Menu returns the menu currently built from the panel, if it is open.
func (p *MenuPanel) Menu() (*Menu, bool) {
	if p.menu == nil || p.menu.destroyed {
		return nil, false
	}
	return p.menu, true
}

func (p *MenuPanel) setStack(s *stack.Stack) error {
	if p.stack != nil {
		return ErrExistingMenuStack
	}
	p.stack = s
	return nil
}

// registerMenu hands the panel's stack to m.
func (p *MenuPanel) registerMenu(m *Menu) error {
	if p.stack == nil {
		return ErrMissingMenuStack
	}
	if m.stack != nil && m.stack != p.stack {
		return ErrExistingMenuStack
	}
	m.stack = p.stack
	p.menu = m
	return nil
}

func (p *MenuPanel) instantiate(env *Env, parent *triggerBase) (*Menu, error) {
	m := newMenu(env, p.orientation, parent)
	if err := p.registerMenu(m); err != nil {
		return nil, err
	}
	if p.template != nil {
		if err := p.template(m); err != nil {
			m.Destroy()
			return nil, fmt.Errorf("build menu: %w", err)
		}
	}
	if err := m.init(); err != nil {
		return nil, err
	}
	return m, nil
}
