package events

import "github.com/atomicstack/menukit/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Queue(id, label string, pending int) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label, "pending": pending})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

// Failure records an action that panicked.
func (CommandTracer) Failure(id, label string, err error) {
	logging.Trace("command.failure", map[string]interface{}{"id": id, "label": label, "error": err.Error()})
}
