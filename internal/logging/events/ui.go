package events

import "github.com/atomicstack/menukit/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Key(key string, handled bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "handled": handled})
}

func (UITracer) Mouse(kind string, x, y int) {
	logging.Trace("ui.mouse", map[string]interface{}{"kind": kind, "x": x, "y": y})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Action(item, label string) {
	logging.Trace("ui.action", map[string]interface{}{"item": item, "label": label})
}

func (UITracer) Rebuild(title string, items int) {
	logging.Trace("ui.rebuild", map[string]interface{}{"title": title, "items": items})
}
