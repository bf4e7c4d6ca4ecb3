package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanelsToggleIndependently(t *testing.T) {
	p := NewPanels()
	p.Toggle(PenPanel)
	assert.True(t, p.IsOpen(PenPanel))
	assert.False(t, p.IsOpen(EraserPanel))

	p.Toggle(EraserPanel)
	p.Toggle(PenPanel)
	assert.False(t, p.IsOpen(PenPanel))
	assert.True(t, p.IsOpen(EraserPanel))
}

func TestOutsideClickClosesOnlyThatPanel(t *testing.T) {
	p := NewPanels()
	p.SetArea(PenPanel, Area{X: 10, Y: 10, Width: 150, Height: 200})
	p.SetArea(EraserPanel, Area{X: 200, Y: 10, Width: 150, Height: 80})
	p.Toggle(PenPanel)

	var changes []Panel
	p.OnChange = func(panel Panel, open bool) {
		assert.False(t, open)
		changes = append(changes, panel)
	}

	p.PointerDown(Point{X: 600, Y: 400})
	assert.False(t, p.IsOpen(PenPanel))
	assert.False(t, p.IsOpen(EraserPanel))
	assert.Equal(t, []Panel{PenPanel}, changes)
}

func TestClickInsidePanelKeepsItOpen(t *testing.T) {
	p := NewPanels()
	p.SetArea(PenPanel, Area{X: 10, Y: 10, Width: 150, Height: 200})
	p.SetArea(EraserPanel, Area{X: 200, Y: 10, Width: 150, Height: 80})
	p.Toggle(PenPanel)
	p.Toggle(EraserPanel)

	p.PointerDown(Point{X: 50, Y: 50})
	assert.True(t, p.IsOpen(PenPanel))
	assert.False(t, p.IsOpen(EraserPanel))
}

func TestPanelWithoutAreaClosesOnAnyPress(t *testing.T) {
	p := NewPanels()
	p.Toggle(EraserPanel)
	p.PointerDown(Point{})
	assert.False(t, p.IsOpen(EraserPanel))
}

func TestPointerHubSubscriptionTeardown(t *testing.T) {
	hub := NewPointerHub()
	var got []Point
	sub := hub.Subscribe(func(p Point) { got = append(got, p) })
	require.Equal(t, 1, hub.Len())

	hub.PointerDown(Point{X: 1, Y: 2})
	sub.Close()
	sub.Close()
	hub.PointerDown(Point{X: 3, Y: 4})

	assert.Equal(t, []Point{{X: 1, Y: 2}}, got)
	assert.Zero(t, hub.Len())
}

func TestPointerHubDrivesPanels(t *testing.T) {
	hub := NewPointerHub()
	p := NewPanels()
	p.SetArea(PenPanel, Area{Width: 100, Height: 100})
	sub := hub.Subscribe(p.PointerDown)
	defer sub.Close()

	p.Toggle(PenPanel)
	hub.PointerDown(Point{X: 500, Y: 500})
	assert.False(t, p.IsOpen(PenPanel))
}

func TestListenerMayUnsubscribeItself(t *testing.T) {
	hub := NewPointerHub()
	calls := 0
	var sub *Subscription
	sub = hub.Subscribe(func(Point) {
		calls++
		sub.Close()
	})
	hub.PointerDown(Point{})
	hub.PointerDown(Point{})
	assert.Equal(t, 1, calls)
}
