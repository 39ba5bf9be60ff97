package events

import "github.com/atomicstack/menukit/internal/logging"

type StackTracer struct{}

var Stack = StackTracer{}

func (StackTracer) Push(stackID, item string, depth int) {
	logging.Trace("stack.push", map[string]interface{}{"stack": stackID, "item": item, "depth": depth})
}

func (StackTracer) Pop(stackID, item string, depth int) {
	logging.Trace("stack.pop", map[string]interface{}{"stack": stackID, "item": item, "depth": depth})
}

func (StackTracer) Emptied(stackID, focusNext string) {
	logging.Trace("stack.emptied", map[string]interface{}{"stack": stackID, "focusNext": focusNext})
}

func (StackTracer) Miss(stackID, item string) {
	logging.Trace("stack.miss", map[string]interface{}{"stack": stackID, "item": item})
}
