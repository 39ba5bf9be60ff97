package aim

import (
	"sort"
	"time"
)

// Scheduler runs fn after d on the caller's event loop. The returned cancel
// function is best effort; callers guard against late firings themselves.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// ManualScheduler is a Scheduler driven by Advance. It is used by tests and
// by headless harnesses where time must not pass on its own.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc queues fn to run once Advance moves past d from now.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.seq++
	t := &manualTimer{at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

// Advance moves the clock forward by d and runs every due timer in order.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fn()
	}
	s.now = target
}

// PendingCount reports timers that have neither fired nor been cancelled.
func (s *ManualScheduler) PendingCount() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(limit time.Duration) *manualTimer {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].at == s.timers[j].at {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].at < s.timers[j].at
	})
	if len(s.timers) == 0 || s.timers[0].at > limit {
		return nil
	}
	t := s.timers[0]
	s.timers = s.timers[1:]
	return t
}
