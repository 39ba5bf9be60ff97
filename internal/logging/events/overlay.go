package events

import "github.com/atomicstack/menukit/internal/logging"

type OverlayTracer struct{}

var Overlay = OverlayTracer{}

func (OverlayTracer) Create(id string) {
	logging.Trace("overlay.create", map[string]interface{}{"overlay": id})
}

func (OverlayTracer) Attach(id string, left, top, width, height float64) {
	logging.Trace("overlay.attach", map[string]interface{}{"overlay": id, "left": left, "top": top, "width": width, "height": height})
}

func (OverlayTracer) Detach(id string) {
	logging.Trace("overlay.detach", map[string]interface{}{"overlay": id})
}

func (OverlayTracer) Dispose(id string) {
	logging.Trace("overlay.dispose", map[string]interface{}{"overlay": id})
}
