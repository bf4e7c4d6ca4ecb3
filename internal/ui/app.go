package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"CalcBoard/internal/session"
	"CalcBoard/internal/state"
)

// pressCatcher forwards presses on otherwise inert content, like labels, to
// the hub so open tool panels close.
type pressCatcher struct {
	widget.BaseWidget
	hub     *state.PointerHub
	content fyne.CanvasObject
}

var _ desktop.Mouseable = (*pressCatcher)(nil)

func newPressCatcher(hub *state.PointerHub, content fyne.CanvasObject) *pressCatcher {
	p := &pressCatcher{hub: hub, content: content}
	p.ExtendBaseWidget(p)
	return p
}

func (p *pressCatcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

func (p *pressCatcher) MouseDown(e *desktop.MouseEvent) {
	p.hub.PointerDown(toPoint(e.AbsolutePosition))
}

func (p *pressCatcher) MouseUp(*desktop.MouseEvent) {}

type mainView struct {
	hub      *state.PointerHub
	board    *BoardWidget
	selector *ToolSelector
	results  *ResultsView
	status   *widget.Label
	bottom   *pressCatcher

	generate  *widget.Button
	reset     *widget.Button
	exportBtn *widget.Button

	content fyne.CanvasObject
}

// Build lays out the main window: toolbar on top, the board with its floating
// tool selector in the middle, results and status along the bottom. It also
// wires the session's callbacks to the widgets.
func Build(win fyne.Window, s *session.Session, log *zap.Logger) fyne.CanvasObject {
	return newMainView(win, s, log).content
}

func newMainView(win fyne.Window, s *session.Session, log *zap.Logger) *mainView {
	v := &mainView{hub: state.NewPointerHub()}
	v.board = NewBoardWidget(s, v.hub, log)
	v.selector = NewToolSelector(s, v.hub)
	v.results = NewResultsView()
	v.status = widget.NewLabel("Ready")

	v.generate = widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), func() {
		pressFrom(v.hub, v.generate)
		go func() {
			_, err := s.Submit(context.Background())
			if errors.Is(err, session.ErrSubmitInFlight) || errors.Is(err, session.ErrSuperseded) {
				log.Debug("submit ignored", zap.Error(err))
			}
		}()
	})
	v.generate.Importance = widget.HighImportance

	v.reset = widget.NewButtonWithIcon("Reset", theme.ContentClearIcon(), func() {
		pressFrom(v.hub, v.reset)
		s.Reset()
		v.status.SetText("Board reset")
	})
	v.exportBtn = widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), func() {
		pressFrom(v.hub, v.exportBtn)
		showExportDialog(win, s, v.status, log)
	})
	v.results.List.OnSelected = func(id widget.ListItemID) {
		pressFrom(v.hub, v.results.List)
		v.results.List.Unselect(id)
	}

	v.board.OnError = func(err error) {
		v.status.SetText("Canvas unavailable: " + err.Error())
	}
	s.OnBusy = func(busy bool) {
		fyne.Do(func() {
			if busy {
				v.generate.Disable()
				v.status.SetText("Solving...")
			} else {
				v.generate.Enable()
			}
		})
	}
	s.OnResults = func(all []state.Result) {
		fyne.Do(func() {
			v.results.Set(all)
			v.board.Refresh()
			if len(all) > 0 {
				v.status.SetText("Solved: " + FormatResult(all[len(all)-1]))
			}
		})
	}
	s.OnError = func(err error) {
		fyne.Do(func() {
			v.status.SetText("Error: " + err.Error())
		})
	}

	toolbar := newPressCatcher(v.hub, container.NewHBox(v.reset, layout.NewSpacer(), v.exportBtn, v.generate))
	floating := container.NewVBox(container.NewHBox(layout.NewSpacer(), v.selector, layout.NewSpacer()))
	center := container.NewStack(v.board, floating)

	v.bottom = newPressCatcher(v.hub, container.NewBorder(widget.NewLabel("Results"), v.status, nil, nil, v.results.List))
	split := container.NewVSplit(center, v.bottom)
	split.Offset = 0.8

	v.content = container.NewBorder(toolbar, nil, nil, nil, split)
	return v
}
