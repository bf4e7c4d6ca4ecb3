package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"CalcBoard/internal/session"
	"CalcBoard/internal/state"
)

func press(x, y float32) *desktop.MouseEvent {
	pos := fyne.NewPos(x, y)
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: pos, AbsolutePosition: pos},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func newBoard(t *testing.T) (*BoardWidget, *session.Session, *state.PointerHub) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	s := session.New(nil, zap.NewNop())
	hub := state.NewPointerHub()
	b := NewBoardWidget(s, hub, zap.NewNop())
	w := test.NewWindow(b)
	t.Cleanup(w.Close)
	b.Resize(fyne.NewSize(320, 240))
	require.NotNil(t, s.Surface())
	return b, s, hub
}

func TestBoardSizesSurface(t *testing.T) {
	_, s, _ := newBoard(t)
	w, h := s.Surface().Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestBoardDrawsWhileDragging(t *testing.T) {
	b, s, _ := newBoard(t)

	b.MouseDown(press(20, 20))
	assert.True(t, s.Surface().Drawing())
	b.Dragged(drag(60, 20))
	b.Dragged(drag(100, 40))
	b.DragEnd()

	assert.False(t, s.Surface().Drawing())
	assert.False(t, s.Surface().Empty())
}

func TestBoardHoverDoesNotDraw(t *testing.T) {
	b, s, _ := newBoard(t)
	b.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}})
	assert.True(t, s.Surface().Empty())
}

func TestBoardMouseOutEndsStroke(t *testing.T) {
	b, s, _ := newBoard(t)
	b.MouseDown(press(20, 20))
	b.MouseOut()
	b.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(80, 80)}})
	assert.True(t, s.Surface().Empty())
}

func TestBoardPublishesPresses(t *testing.T) {
	b, _, hub := newBoard(t)
	var got []state.Point
	sub := hub.Subscribe(func(p state.Point) { got = append(got, p) })
	defer sub.Close()

	b.MouseDown(press(7, 9))
	secondary := press(11, 13)
	secondary.Button = desktop.MouseButtonSecondary
	b.MouseDown(secondary)

	assert.Equal(t, []state.Point{{X: 7, Y: 9}, {X: 11, Y: 13}}, got)
}

func TestResultsViewFormatsRows(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := NewResultsView()
	v.Set([]state.Result{{Expression: "2+2", Answer: "4"}, {Expression: "x", Answer: "5"}})
	assert.Equal(t, 2, v.length())
	assert.Equal(t, "2+2 = 4", v.text(0))
	assert.Equal(t, "x = 5", v.text(1))
	assert.Empty(t, v.text(2))
}

func TestBoardRasterUsesLogicalUnits(t *testing.T) {
	b, _, _ := newBoard(t)
	r := test.WidgetRenderer(b).(*boardWidgetRenderer)

	img := r.generate(640, 480)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}
