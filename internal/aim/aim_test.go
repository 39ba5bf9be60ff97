package aim

import (
	"testing"
	"time"

	"github.com/atomicstack/menukit/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenu struct{ o geometry.Orientation }

func (f fakeMenu) Orientation() geometry.Orientation { return f.o }

type fakeTracker struct {
	active  bool
	bounds  geometry.Rect
	hasOpen bool
}

func (f *fakeTracker) HasActive() bool { return f.active }

func (f *fakeTracker) PreviousSubmenuBounds() (geometry.Rect, bool) {
	return f.bounds, f.hasOpen
}

var submenu = geometry.Rect{Left: 100, Right: 200, Top: 0, Bottom: 100}

// feed records pts as kept samples by sending each one SampleFrequency times.
func feed(a *TargetMenuAim, pts ...geometry.Point) {
	for _, p := range pts {
		for i := 0; i < SampleFrequency; i++ {
			a.Sample(p)
		}
	}
}

func newAim(o geometry.Orientation) (*TargetMenuAim, *fakeTracker, *ManualScheduler) {
	sched := NewManualScheduler()
	a := New(sched)
	tr := &fakeTracker{active: true, bounds: submenu, hasOpen: true}
	a.Initialize(fakeMenu{o: o}, tr)
	return a, tr, sched
}

func TestSampleKeepsEveryThirdMoveInBoundedRing(t *testing.T) {
	a, _, _ := newAim(geometry.Vertical)
	for i := 0; i < 20; i++ {
		a.Sample(geometry.Pt(float64(i), 0))
	}
	pts := a.Points()
	require.Len(t, pts, NumPoints)
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	assert.Equal(t, []float64{6, 9, 12, 15, 18}, xs)
}

func TestToggleDefersWhenHeadingIntoSubmenu(t *testing.T) {
	a, _, sched := newAim(geometry.Vertical)
	feed(a,
		geometry.Pt(0, 50),
		geometry.Pt(22.5, 51.25),
		geometry.Pt(45, 52.5),
		geometry.Pt(67.5, 53.75),
		geometry.Pt(90, 55),
	)
	calls := 0
	require.NoError(t, a.Toggle(func() { calls++ }))
	assert.Equal(t, 0, calls)
	assert.True(t, a.Pending())

	sched.Advance(CloseDelay - time.Millisecond)
	assert.Equal(t, 0, calls)
	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, a.Pending())
}

func TestToggleMajorityRule(t *testing.T) {
	cases := []struct {
		name     string
		pts      []geometry.Point
		deferred bool
	}{
		{
			name:     "one crossing line",
			pts:      []geometry.Point{geometry.Pt(0, 50), geometry.Pt(89, 45), geometry.Pt(89, 65), geometry.Pt(90, 0), geometry.Pt(90, 55)},
			deferred: false,
		},
		{
			name:     "two crossing lines",
			pts:      []geometry.Point{geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(89, 45), geometry.Pt(89, 65), geometry.Pt(90, 55)},
			deferred: true,
		},
		{
			name:     "no crossing lines",
			pts:      []geometry.Point{geometry.Pt(89, 45), geometry.Pt(89, 65), geometry.Pt(90, 0), geometry.Pt(90, 55)},
			deferred: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _ := newAim(geometry.Vertical)
			feed(a, tc.pts...)
			calls := 0
			require.NoError(t, a.Toggle(func() { calls++ }))
			if tc.deferred {
				assert.Equal(t, 0, calls)
				assert.True(t, a.Pending())
			} else {
				assert.Equal(t, 1, calls)
				assert.False(t, a.Pending())
			}
		})
	}
}

func TestToggleImmediateForHorizontalMenus(t *testing.T) {
	a, _, _ := newAim(geometry.Horizontal)
	feed(a, geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(90, 55))
	calls := 0
	require.NoError(t, a.Toggle(func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestToggleImmediateWithoutEnoughSamples(t *testing.T) {
	a, _, _ := newAim(geometry.Vertical)
	feed(a, geometry.Pt(90, 55))
	calls := 0
	require.NoError(t, a.Toggle(func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestToggleImmediateWithoutOpenSubmenu(t *testing.T) {
	a, tr, _ := newAim(geometry.Vertical)
	tr.hasOpen = false
	feed(a, geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(90, 55))
	calls := 0
	require.NoError(t, a.Toggle(func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestDeferredToggleSkippedWhenPointerLeftMenu(t *testing.T) {
	a, tr, sched := newAim(geometry.Vertical)
	feed(a, geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(90, 55))
	calls := 0
	require.NoError(t, a.Toggle(func() { calls++ }))
	tr.active = false
	sched.Advance(CloseDelay)
	assert.Equal(t, 0, calls)
	assert.False(t, a.Pending())
}

func TestNewerToggleSupersedesPendingOne(t *testing.T) {
	a, tr, sched := newAim(geometry.Vertical)
	feed(a, geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(90, 55))
	var order []string
	require.NoError(t, a.Toggle(func() { order = append(order, "first") }))

	tr.hasOpen = false
	require.NoError(t, a.Toggle(func() { order = append(order, "second") }))
	sched.Advance(CloseDelay)

	assert.Equal(t, []string{"second"}, order)
}

func TestNewerDeferredToggleReplacesOlderOne(t *testing.T) {
	a, _, sched := newAim(geometry.Vertical)
	feed(a, geometry.Pt(0, 50), geometry.Pt(45, 52.5), geometry.Pt(90, 55))
	var order []string
	require.NoError(t, a.Toggle(func() { order = append(order, "first") }))
	sched.Advance(100 * time.Millisecond)
	require.NoError(t, a.Toggle(func() { order = append(order, "second") }))
	sched.Advance(CloseDelay)

	assert.Equal(t, []string{"second"}, order)
}

func TestToggleReportsMissingCollaborators(t *testing.T) {
	a := New(NewManualScheduler())
	assert.ErrorIs(t, a.Toggle(func() {}), ErrMissingMenu)

	a.Initialize(fakeMenu{o: geometry.Vertical}, nil)
	assert.ErrorIs(t, a.Toggle(func() {}), ErrMissingPointerTracker)
}
