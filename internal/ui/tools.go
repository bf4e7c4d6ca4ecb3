package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"CalcBoard/internal/state"
)

// ToolProps is the tool state as seen by the selector: it reads the current
// values and reports changes upward, but owns none of them.
type ToolProps interface {
	Tools() state.ToolState
	SetColor(color.NRGBA)
	SetEraser(bool)
	SetPenWidth(int)
	SetEraserWidth(int)
}

const swatchSize = 32

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	props    ToolProps
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, props ToolProps, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, props: props, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) active() bool {
	t := s.props.Tools()
	return !t.Eraser && t.Color == s.Color
}

// dotSize is the diameter of the coloured dot inside a cell of the given
// size. The active colour's dot tracks the pen width.
func (s *colorSwatch) dotSize(cell float32) float32 {
	if s.active() {
		return cell * state.SwatchScale(s.props.Tools().PenWidth)
	}
	return cell * 0.75
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeColor = s.Color
	dot := canvas.NewCircle(s.Color)
	return &swatchRenderer{swatch: s, ring: ring, dot: dot}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

type swatchRenderer struct {
	swatch *colorSwatch
	ring   *canvas.Circle
	dot    *canvas.Circle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	r.ring.Resize(size)
	r.ring.Move(fyne.NewPos(0, 0))
	d := r.swatch.dotSize(fyne.Min(size.Width, size.Height))
	r.dot.Resize(fyne.NewSquareSize(d))
	r.dot.Move(fyne.NewPos((size.Width-d)/2, (size.Height-d)/2))
}

func (r *swatchRenderer) MinSize() fyne.Size { return fyne.NewSquareSize(swatchSize) }

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.ring, r.dot}
}

func (r *swatchRenderer) Refresh() {
	if r.swatch.active() {
		r.ring.StrokeWidth = 2
	} else {
		r.ring.StrokeWidth = 0
	}
	r.Layout(r.swatch.Size())
	r.ring.Refresh()
	r.dot.Refresh()
}

func (r *swatchRenderer) Destroy() {}

// panelBox is the popover background. It swallows presses so they do not
// fall through to the board underneath.
type panelBox struct {
	widget.BaseWidget
	content fyne.CanvasObject
}

var _ desktop.Mouseable = (*panelBox)(nil)

func newPanelBox(content fyne.CanvasObject) *panelBox {
	p := &panelBox{content: content}
	p.ExtendBaseWidget(p)
	return p
}

func (p *panelBox) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	bg.CornerRadius = theme.InputRadiusSize() * 2
	return widget.NewSimpleRenderer(container.NewStack(bg, container.NewPadded(p.content)))
}

func (p *panelBox) Tapped(*fyne.PointEvent) {}
func (p *panelBox) MouseDown(*desktop.MouseEvent) {}
func (p *panelBox) MouseUp(*desktop.MouseEvent) {}

// ToolSelector is the floating pen/eraser control.
type ToolSelector struct {
	widget.BaseWidget
	props  ToolProps
	hub    *state.PointerHub
	panels *state.Panels

	penButton    *widget.Button
	eraserButton *widget.Button
	penPanel     *panelBox
	eraserPanel  *panelBox
	penSlider    *widget.Slider
	eraserSlider *widget.Slider
	swatches     []*colorSwatch
}

func NewToolSelector(props ToolProps, hub *state.PointerHub) *ToolSelector {
	t := &ToolSelector{props: props, hub: hub, panels: state.NewPanels()}
	t.ExtendBaseWidget(t)

	// Each toggle button sits outside the other button's panel, so a press on
	// it closes that panel too.
	t.penButton = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		t.panels.Close(state.EraserPanel)
		t.panels.Toggle(state.PenPanel)
	})
	t.eraserButton = widget.NewButtonWithIcon("", theme.ContentClearIcon(), func() {
		t.panels.Close(state.PenPanel)
		t.props.SetEraser(true)
		t.panels.Toggle(state.EraserPanel)
		t.refreshSwatches()
	})

	// --- Color Palette ---
	palette := container.NewGridWithColumns(3)
	for _, c := range state.Palette {
		sw := newColorSwatch(c, props, t.selectColor)
		t.swatches = append(t.swatches, sw)
		palette.Add(sw)
	}

	current := props.Tools()
	t.penSlider = widget.NewSlider(state.MinPenWidth, state.MaxPenWidth)
	t.penSlider.Step = 1
	t.penSlider.SetValue(float64(current.PenWidth))
	t.penSlider.OnChanged = t.penWidthChanged

	t.eraserSlider = widget.NewSlider(state.MinEraserWidth, state.MaxEraserWidth)
	t.eraserSlider.Step = 1
	t.eraserSlider.SetValue(float64(current.EraserWidth))
	t.eraserSlider.OnChanged = t.eraserWidthChanged

	t.penPanel = newPanelBox(container.NewVBox(palette, t.penSlider))
	t.eraserPanel = newPanelBox(container.NewVBox(widget.NewLabel("Eraser size"), t.eraserSlider))
	t.penPanel.Hide()
	t.eraserPanel.Hide()

	t.panels.OnChange = t.panelChanged
	return t
}

func (t *ToolSelector) selectColor(c color.NRGBA) {
	// SetColor also leaves eraser mode.
	t.props.SetColor(c)
	t.panels.Close(state.PenPanel)
	t.refreshSwatches()
}

func (t *ToolSelector) penWidthChanged(v float64) {
	t.props.SetPenWidth(int(v))
	t.refreshSwatches()
}

func (t *ToolSelector) eraserWidthChanged(v float64) {
	t.props.SetEraserWidth(int(v))
}

func (t *ToolSelector) refreshSwatches() {
	for _, sw := range t.swatches {
		sw.Refresh()
	}
}

func (t *ToolSelector) panelChanged(panel state.Panel, open bool) {
	box := t.penPanel
	if panel == state.EraserPanel {
		box = t.eraserPanel
	}
	if open {
		box.Show()
	} else {
		box.Hide()
	}
	t.Refresh()
}

// outsidePress is the hub listener. Panel areas are measured at press time so
// they follow the selector wherever the layout has put it.
func (t *ToolSelector) outsidePress(p state.Point) {
	t.panels.SetArea(state.PenPanel, areaOf(t.penPanel))
	t.panels.SetArea(state.EraserPanel, areaOf(t.eraserPanel))
	t.panels.PointerDown(p)
}

// pressFrom reports a press on o to the hub. Buttons and lists consume their
// own pointer events, so they publish here instead of through the board.
func pressFrom(hub *state.PointerHub, o fyne.CanvasObject) {
	var p fyne.Position
	if a := fyne.CurrentApp(); a != nil {
		p = a.Driver().AbsolutePositionForObject(o)
	}
	hub.PointerDown(toPoint(p))
}

func areaOf(o fyne.CanvasObject) state.Area {
	a := fyne.CurrentApp()
	if a == nil || !o.Visible() {
		return state.Area{}
	}
	pos := a.Driver().AbsolutePositionForObject(o)
	size := o.Size()
	return state.Area{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// CreateRenderer mounts the selector: the outside-press listener lives exactly
// as long as the renderer.
func (t *ToolSelector) CreateRenderer() fyne.WidgetRenderer {
	buttons := container.NewHBox(t.penButton, t.eraserButton)
	panels := container.NewHBox(t.penPanel, t.eraserPanel)
	content := container.NewVBox(
		container.NewHBox(layout.NewSpacer(), buttons, layout.NewSpacer()),
		panels,
	)
	return &toolSelectorRenderer{
		WidgetRenderer: widget.NewSimpleRenderer(content),
		sub:            t.hub.Subscribe(t.outsidePress),
	}
}

type toolSelectorRenderer struct {
	fyne.WidgetRenderer
	sub *state.Subscription
}

func (r *toolSelectorRenderer) Destroy() {
	r.sub.Close()
	r.WidgetRenderer.Destroy()
}
