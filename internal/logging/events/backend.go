package events

import "github.com/atomicstack/menukit/internal/logging"

type BackendTracer struct{}

var Backend = BackendTracer{}

func (BackendTracer) Reload(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.reload", payload)
}
