package state

import (
	"reflect"

	"github.com/atomicstack/menukit/internal/config"
)

// MenuStore holds the menu definition currently shown and counts how often
// it has been replaced.
type MenuStore interface {
	Definition() config.MenuDefinition
	SetDefinition(config.MenuDefinition) bool
	Revision() int
}

type menuStore struct {
	def      config.MenuDefinition
	revision int
}

func NewMenuStore(initial config.MenuDefinition) MenuStore {
	return &menuStore{def: initial}
}

func (s *menuStore) Definition() config.MenuDefinition {
	return s.def
}

// SetDefinition stores def and reports whether it differs from the current
// one. An identical definition leaves the revision untouched.
func (s *menuStore) SetDefinition(def config.MenuDefinition) bool {
	if reflect.DeepEqual(s.def, def) {
		return false
	}
	s.def = def
	s.revision++
	return true
}

func (s *menuStore) Revision() int {
	return s.revision
}
