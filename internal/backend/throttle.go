package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive file checks at least interval apart so a burst
// of writes to the menu file is read once.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return nil
	}
	return &throttle{interval: interval}
}

// wait blocks until the next slot. It returns false when ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
