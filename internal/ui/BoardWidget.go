package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"CalcBoard/internal/export"
	"CalcBoard/internal/session"
	"CalcBoard/internal/state"
)

// BoardWidget shows the session's drawing surface and feeds it pointer events.
type BoardWidget struct {
	widget.BaseWidget
	session *session.Session
	hub     *state.PointerHub
	log     *zap.Logger
	OnError func(error)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *session.Session, hub *state.PointerHub, log *zap.Logger) *BoardWidget {
	b := &BoardWidget{session: s, hub: hub, log: log}
	b.ExtendBaseWidget(b)
	return b
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }

// attach sizes the surface to the widget. A failure here is the only place
// the surface can go missing, so it is reported rather than swallowed.
func (b *BoardWidget) attach(size fyne.Size) {
	if _, err := b.session.Attach(int(size.Width), int(size.Height)); err != nil {
		b.log.Error("cannot size drawing surface", zap.Error(err))
		if b.OnError != nil {
			b.OnError(err)
		}
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	// Every press on the board counts as a press outside any open popover.
	b.hub.PointerDown(toPoint(e.AbsolutePosition))

	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if surface := b.session.Surface(); surface != nil {
		surface.PointerDown(toPoint(e.Position))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if surface := b.session.Surface(); surface != nil {
		surface.PointerUp()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) DragEnd() {
	if surface := b.session.Surface(); surface != nil {
		surface.PointerUp()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) MouseOut() {
	if surface := b.session.Surface(); surface != nil {
		surface.PointerLeave()
	}
}

func (b *BoardWidget) move(p fyne.Position) {
	surface := b.session.Surface()
	if surface == nil {
		return
	}
	if surface.PointerMove(toPoint(p)) {
		b.Refresh()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(export.Background)
	r.raster = canvas.NewRaster(r.generate)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	raster     *canvas.Raster
}

// generate returns the surface at its logical size; fyne scales it to the
// requested w x h pixels.
func (r *boardWidgetRenderer) generate(w, h int) image.Image {
	if surface := r.board.session.Surface(); surface != nil {
		return surface.Image()
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.raster.Resize(size)
	r.board.attach(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
