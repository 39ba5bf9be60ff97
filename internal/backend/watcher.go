package backend

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/menukit/internal/config"
	"github.com/atomicstack/menukit/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindMenuFile Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindMenuFile:
		return "menu-file"
	}
	return "unknown"
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

var errUnchanged = errors.New("unchanged")

// Watcher polls the menu definition file at a fixed interval and publishes
// a fresh definition whenever the file changes.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that checks path every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startMenuFilePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels polling. A fetch already in progress still finishes.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait returns once every poller has exited and Events is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

type fileSignature struct {
	modTime time.Time
	size    int64
}

func (w *Watcher) startMenuFilePoller() {
	throttle := newThrottle(250 * time.Millisecond)
	var last fileSignature
	var seen bool
	w.wg.Add(1)
	go w.poll(KindMenuFile, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		info, err := os.Stat(w.path)
		if err != nil {
			return nil, err
		}
		sig := fileSignature{modTime: info.ModTime(), size: info.Size()}
		if seen && sig == last {
			return nil, errUnchanged
		}
		seen, last = true, sig
		def, err := config.LoadMenuFile(w.path)
		if err == nil {
			err = def.Validate()
		}
		events.Backend.Reload(w.path, err)
		if err != nil {
			return nil, err
		}
		return def, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		if errors.Is(err, errUnchanged) {
			return true
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
