package overlay

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/atomicstack/menukit/internal/keys"
	"github.com/atomicstack/menukit/internal/pointer"
)

type boxContent struct {
	w, h      int
	bounds    geometry.Rect
	fill      string
	destroyed int
}

func (c *boxContent) Size() (int, int)          { return c.w, c.h }
func (c *boxContent) SetBounds(r geometry.Rect) { c.bounds = r }
func (c *boxContent) Destroy()                  { c.destroyed++ }
func (c *boxContent) Render() []string {
	lines := make([]string, c.h)
	for i := range lines {
		for j := 0; j < c.w; j++ {
			lines[i] += c.fill
		}
	}
	return lines
}

func portalFor(c *boxContent) Portal {
	return PortalFunc(func() (Content, error) { return c, nil })
}

var below = []ConnectedPosition{
	{OriginX: Start, OriginY: Bottom, OverlayX: Start, OverlayY: Top},
	{OriginX: Start, OriginY: Top, OverlayX: Start, OverlayY: Bottom},
}

func TestAttachPlacesContentBelowOrigin(t *testing.T) {
	m := NewManager()
	m.SetViewport(80, 24)
	ref := m.Create(Config{PositionStrategy: FlexibleConnectedTo(geometry.RectXYWH(4, 0, 6, 1)).WithPositions(below)})
	c := &boxContent{w: 10, h: 3, fill: "x"}

	got, err := ref.Attach(portalFor(c))
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.True(t, ref.HasAttached())
	assert.Equal(t, geometry.RectXYWH(4, 1, 10, 3), c.bounds)
}

func TestAttachTwiceFails(t *testing.T) {
	m := NewManager()
	ref := m.Create(Config{})
	_, err := ref.Attach(portalFor(&boxContent{w: 1, h: 1}))
	require.NoError(t, err)
	_, err = ref.Attach(portalFor(&boxContent{w: 1, h: 1}))
	assert.ErrorIs(t, err, ErrAlreadyAttached)
}

func TestDetachIsNoOpWhenEmpty(t *testing.T) {
	m := NewManager()
	ref := m.Create(Config{})
	detached := 0
	ref.Detachments().Subscribe(func(struct{}) { detached++ })
	ref.Detach()
	assert.Equal(t, 0, detached)

	c := &boxContent{w: 1, h: 1}
	_, err := ref.Attach(portalFor(c))
	require.NoError(t, err)
	ref.Detach()
	ref.Detach()
	assert.Equal(t, 1, detached)
	assert.Equal(t, 1, c.destroyed)
	assert.Empty(t, m.Attached())
}

func TestDisposeRejectsAttach(t *testing.T) {
	m := NewManager()
	ref := m.Create(Config{})
	ref.Dispose()
	_, err := ref.Attach(portalFor(&boxContent{w: 1, h: 1}))
	assert.ErrorIs(t, err, ErrDisposed)
}

func TestPositionFallsBackWhenBelowDoesNotFit(t *testing.T) {
	m := NewManager()
	m.SetViewport(40, 10)
	strategy := FlexibleConnectedTo(geometry.RectXYWH(2, 8, 4, 1)).WithPositions(below)
	ref := m.Create(Config{PositionStrategy: strategy})
	c := &boxContent{w: 8, h: 4}
	_, err := ref.Attach(portalFor(c))
	require.NoError(t, err)
	assert.Equal(t, geometry.RectXYWH(2, 4, 8, 4), c.bounds)
	last, ok := strategy.LastPosition()
	require.True(t, ok)
	assert.Equal(t, Bottom, last.OverlayY)
}

func TestRTLMirrorsStartAndEnd(t *testing.T) {
	m := NewManager()
	m.SetViewport(80, 24)
	ref := m.Create(Config{
		PositionStrategy: FlexibleConnectedTo(geometry.RectXYWH(30, 0, 6, 1)).WithPositions(below),
		Direction:        geometry.RTL,
	})
	c := &boxContent{w: 10, h: 2}
	_, err := ref.Attach(portalFor(c))
	require.NoError(t, err)
	// start is the right edge under rtl, so the overlay hangs to the left.
	assert.Equal(t, geometry.RectXYWH(26, 1, 10, 2), c.bounds)
}

func TestLockedPositionSurvivesUpdateUntilOriginMoves(t *testing.T) {
	m := NewManager()
	m.SetViewport(40, 10)
	strategy := FlexibleConnectedTo(geometry.RectXYWH(0, 0, 4, 1)).WithPositions(below).WithLockedPosition()
	ref := m.Create(Config{PositionStrategy: strategy})
	c := &boxContent{w: 4, h: 3}
	_, err := ref.Attach(portalFor(c))
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.bounds.Top)

	// The locked position is pushed back into view instead of flipping.
	strategy.origin = geometry.RectXYWH(0, 8, 4, 1)
	ref.UpdatePosition()
	assert.Equal(t, 7.0, c.bounds.Top)

	strategy.SetOrigin(geometry.RectXYWH(0, 8, 4, 1))
	ref.UpdatePosition()
	assert.Equal(t, 5.0, c.bounds.Top)
}

func TestDispatchPointerStopsAtContainingOverlay(t *testing.T) {
	m := NewManager()
	lower := m.Create(Config{PositionStrategy: FlexibleConnectedTo(geometry.RectXYWH(0, 0, 0, 0)).WithPositions(below)})
	upper := m.Create(Config{PositionStrategy: FlexibleConnectedTo(geometry.RectXYWH(20, 0, 0, 0)).WithPositions(below)})
	_, err := lower.Attach(portalFor(&boxContent{w: 10, h: 5}))
	require.NoError(t, err)
	_, err = upper.Attach(portalFor(&boxContent{w: 10, h: 5}))
	require.NoError(t, err)

	var lowerHits, upperHits int
	lower.OutsidePointerEvents().Subscribe(func(*pointer.Event) { lowerHits++ })
	upper.OutsidePointerEvents().Subscribe(func(*pointer.Event) { upperHits++ })

	m.DispatchPointer(pointer.NewEvent(pointer.Click, 2, 2, pointer.ButtonPrimary))
	assert.Equal(t, 0, lowerHits)
	assert.Equal(t, 1, upperHits)

	m.DispatchPointer(pointer.NewEvent(pointer.Click, 50, 20, pointer.ButtonPrimary))
	assert.Equal(t, 1, lowerHits)
	assert.Equal(t, 2, upperHits)

	m.DispatchPointer(pointer.NewEvent(pointer.Move, 50, 20, pointer.ButtonPrimary))
	assert.Equal(t, 2, upperHits)
}

func TestDispatchKeyGoesToTopmostListener(t *testing.T) {
	m := NewManager()
	lower := m.Create(Config{})
	upper := m.Create(Config{})
	_, _ = lower.Attach(portalFor(&boxContent{w: 1, h: 1}))
	_, _ = upper.Attach(portalFor(&boxContent{w: 1, h: 1}))
	var got []string
	lower.KeydownEvents().Subscribe(func(*keys.Event) { got = append(got, "lower") })

	assert.True(t, m.DispatchKey(keys.Press(keys.Escape)))
	assert.Equal(t, []string{"lower"}, got)

	upper.KeydownEvents().Subscribe(func(*keys.Event) { got = append(got, "upper") })
	m.DispatchKey(keys.Press(keys.Escape))
	assert.Equal(t, []string{"lower", "upper"}, got)
}

func TestCompositeDrawsOverBase(t *testing.T) {
	m := NewManager()
	ref := m.Create(Config{PositionStrategy: FlexibleConnectedTo(geometry.RectXYWH(2, 0, 0, 1)).WithPositions(below)})
	_, err := ref.Attach(portalFor(&boxContent{w: 3, h: 2, fill: "#"}))
	require.NoError(t, err)

	out := m.Composite([]string{"..........", ".........."}, 10)
	require.Len(t, out, 3)
	assert.Equal(t, "..........", ansi.Strip(out[0]))
	assert.Equal(t, "..###.....", ansi.Strip(out[1]))
	assert.Equal(t, "  ###", ansi.Strip(out[2]))
}
