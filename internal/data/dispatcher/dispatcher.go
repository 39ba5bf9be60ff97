package dispatcher

import (
	"github.com/atomicstack/menukit/internal/backend"
	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/state"
)

type Result struct {
	MenusUpdated bool
	Err          error
}

type Dispatcher struct {
	menus state.MenuStore
}

func New(menus state.MenuStore) *Dispatcher {
	return &Dispatcher{menus: menus}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindMenuFile:
		if def, ok := evt.Data.(config.MenuDefinition); ok {
			res.MenusUpdated = d.menus.SetDefinition(def)
		}
	}
	return res
}
