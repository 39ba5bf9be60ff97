package events

import "github.com/atomicstack/menukit/internal/logging"

type TriggerTracer struct{}

type MenuTracer struct{}

var (
	Trigger = TriggerTracer{}
	Menu    = MenuTracer{}
)

func (TriggerTracer) Open(trigger, menu string) {
	logging.Trace("trigger.open", map[string]interface{}{"trigger": trigger, "menu": menu})
}

func (TriggerTracer) Close(trigger string) {
	logging.Trace("trigger.close", map[string]interface{}{"trigger": trigger})
}

func (TriggerTracer) OutsideClick(trigger, kind string, insideStack bool) {
	logging.Trace("trigger.outside", map[string]interface{}{"trigger": trigger, "kind": kind, "insideStack": insideStack})
}

func (TriggerTracer) ContextMenu(trigger string, x, y float64, button int) {
	logging.Trace("trigger.contextmenu", map[string]interface{}{"trigger": trigger, "x": x, "y": y, "button": button})
}

func (MenuTracer) Key(menu, key string, handled bool) {
	logging.Trace("menu.key", map[string]interface{}{"menu": menu, "key": key, "handled": handled})
}

func (MenuTracer) Active(menu, item string, origin string) {
	logging.Trace("menu.active", map[string]interface{}{"menu": menu, "item": item, "origin": origin})
}

func (MenuTracer) Triggered(item, label string) {
	logging.Trace("menu.triggered", map[string]interface{}{"item": item, "label": label})
}

func (MenuTracer) Checked(item string, checked bool) {
	logging.Trace("menu.checked", map[string]interface{}{"item": item, "checked": checked})
}
