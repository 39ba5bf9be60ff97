// Package overlay hosts floating surfaces above the main view: it positions
// them next to an origin, routes pointer clicks that land outside them and
// key presses to the topmost one, and composites their rendered lines over
// the base view.
package overlay

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/atomicstack/menukit/internal/event"
	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/logging/events"
	"github.com/atomicstack/menukit/internal/pointer"
)

var (
	ErrAlreadyAttached = errors.New("overlay: host already has a portal attached")
	ErrDisposed        = errors.New("overlay: reference has been disposed")
)

// Content is what a portal renders into an overlay.
type Content interface {
	// Size returns the preferred size in cells.
	Size() (width, height int)
	// SetBounds tells the content where it was placed.
	SetBounds(r geometry.Rect)
	// Render returns one string per row of the placed box.
	Render() []string
	// Destroy is called when the content is detached.
	Destroy()
}

// Portal instantiates content each time it is attached.
type Portal interface {
	Instantiate() (Content, error)
}

// PortalFunc adapts a function to Portal.
type PortalFunc func() (Content, error)

func (f PortalFunc) Instantiate() (Content, error) { return f() }

// Config describes an overlay to create.
type Config struct {
	PositionStrategy *ConnectedStrategy
	Direction        geometry.Direction
}

var refSeq atomic.Uint64

// Ref is a handle to one overlay. Its content may be attached and detached
// many times until it is disposed.
type Ref struct {
	id       string
	manager  *Manager
	config   Config
	content  Content
	bounds   geometry.Rect
	disposed bool

	outside  event.Emitter[*pointer.Event]
	keydown  event.Emitter[*keys.Event]
	detached event.Emitter[struct{}]
}

func (r *Ref) ID() string { return r.id }

// HasAttached reports whether content is currently attached.
func (r *Ref) HasAttached() bool { return r.content != nil }

// Content returns the attached content, or nil.
func (r *Ref) Content() Content { return r.content }

// Bounds returns the box of the attached content.
func (r *Ref) Bounds() geometry.Rect { return r.bounds }

// PositionStrategy returns the strategy passed at creation.
func (r *Ref) PositionStrategy() *ConnectedStrategy { return r.config.PositionStrategy }

// OutsidePointerEvents emits clicks that landed outside this overlay and
// every overlay stacked above it.
func (r *Ref) OutsidePointerEvents() *event.Emitter[*pointer.Event] { return &r.outside }

// KeydownEvents emits key presses while this is the topmost overlay with
// keydown listeners.
func (r *Ref) KeydownEvents() *event.Emitter[*keys.Event] { return &r.keydown }

// Detachments emits after content is detached.
func (r *Ref) Detachments() *event.Emitter[struct{}] { return &r.detached }

// Attach instantiates the portal and places the result.
func (r *Ref) Attach(portal Portal) (Content, error) {
	if r.disposed {
		return nil, ErrDisposed
	}
	if r.content != nil {
		return nil, ErrAlreadyAttached
	}
	content, err := portal.Instantiate()
	if err != nil {
		return nil, fmt.Errorf("attach overlay %s: %w", r.id, err)
	}
	r.content = content
	r.manager.attach(r)
	r.UpdatePosition()
	events.Overlay.Attach(r.id, r.bounds.Left, r.bounds.Top, r.bounds.Width(), r.bounds.Height())
	return content, nil
}

// Detach removes the content. Detaching an empty overlay does nothing.
func (r *Ref) Detach() {
	if r.content == nil {
		return
	}
	content := r.content
	r.content = nil
	r.manager.detach(r)
	content.Destroy()
	events.Overlay.Detach(r.id)
	r.detached.Emit(struct{}{})
}

// Dispose detaches and releases the overlay for good.
func (r *Ref) Dispose() {
	if r.disposed {
		return
	}
	r.Detach()
	r.disposed = true
	events.Overlay.Dispose(r.id)
}

// Disposed reports whether Dispose has been called.
func (r *Ref) Disposed() bool { return r.disposed }

// UpdatePosition re-runs the position strategy against the current viewport.
func (r *Ref) UpdatePosition() {
	if r.content == nil {
		return
	}
	w, h := r.content.Size()
	var bounds geometry.Rect
	if r.config.PositionStrategy != nil {
		r.config.PositionStrategy.WithDirection(r.config.Direction)
		bounds = r.config.PositionStrategy.Apply(float64(w), float64(h), r.manager.viewport)
	} else {
		bounds = geometry.RectXYWH(0, 0, float64(w), float64(h))
	}
	r.bounds = bounds
	r.content.SetBounds(bounds)
}

// Manager owns every overlay and their stacking order.
type Manager struct {
	viewport geometry.Rect
	attached []*Ref
}

// NewManager returns a manager with no viewport limits.
func NewManager() *Manager {
	return &Manager{}
}

// SetViewport sets the screen size overlays must fit in and repositions the
// attached ones.
func (m *Manager) SetViewport(width, height int) {
	m.viewport = geometry.RectXYWH(0, 0, float64(width), float64(height))
	for _, ref := range m.Attached() {
		ref.UpdatePosition()
	}
}

// Viewport returns the current screen box.
func (m *Manager) Viewport() geometry.Rect { return m.viewport }

// Create returns a detached overlay.
func (m *Manager) Create(config Config) *Ref {
	ref := &Ref{
		id:      fmt.Sprintf("overlay-%d", refSeq.Add(1)),
		manager: m,
		config:  config,
	}
	events.Overlay.Create(ref.id)
	return ref
}

// Attached returns the overlays with content, bottom to top.
func (m *Manager) Attached() []*Ref {
	return append([]*Ref(nil), m.attached...)
}

// HitTest returns the topmost attached overlay containing p.
func (m *Manager) HitTest(p geometry.Point) (*Ref, bool) {
	for i := len(m.attached) - 1; i >= 0; i-- {
		if m.attached[i].bounds.Contains(p) {
			return m.attached[i], true
		}
	}
	return nil, false
}

// DispatchPointer reports ev as an outside click to every overlay above the
// one it landed in. Overlays without listeners are skipped. Non-click events
// are ignored.
func (m *Manager) DispatchPointer(ev *pointer.Event) {
	if !ev.IsClick() {
		return
	}
	overlays := m.Attached()
	for i := len(overlays) - 1; i >= 0; i-- {
		ref := overlays[i]
		if ref.outside.Len() == 0 || !ref.HasAttached() {
			continue
		}
		if ref.bounds.Contains(ev.Pos) {
			break
		}
		ref.outside.Emit(ev)
	}
}

// DispatchKey sends ev to the topmost overlay listening for key presses.
func (m *Manager) DispatchKey(ev *keys.Event) bool {
	for i := len(m.attached) - 1; i >= 0; i-- {
		ref := m.attached[i]
		if ref.keydown.Len() > 0 {
			ref.keydown.Emit(ev)
			return true
		}
	}
	return false
}

func (m *Manager) attach(ref *Ref) {
	m.detach(ref)
	m.attached = append(m.attached, ref)
}

func (m *Manager) detach(ref *Ref) {
	for i, r := range m.attached {
		if r == ref {
			m.attached = append(m.attached[:i], m.attached[i+1:]...)
			return
		}
	}
}
