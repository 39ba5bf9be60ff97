package events

import "github.com/atomicstack/menukit/internal/logging"

type AimTracer struct{}

var Aim = AimTracer{}

func (AimTracer) Immediate(reason string) {
	logging.Trace("aim.immediate", map[string]interface{}{"reason": reason})
}

func (AimTracer) Defer(token uint64, hits, samples int) {
	logging.Trace("aim.defer", map[string]interface{}{"token": token, "hits": hits, "samples": samples})
}

func (AimTracer) Fire(token uint64, executed bool) {
	logging.Trace("aim.fire", map[string]interface{}{"token": token, "executed": executed})
}
