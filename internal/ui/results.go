package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"CalcBoard/internal/state"
)

// FormatResult is how a result row reads on screen.
func FormatResult(r state.Result) string {
	return r.Expression + " = " + r.Answer
}

// ResultsView lists solved expressions under the board.
type ResultsView struct {
	List  *widget.List
	mu    sync.RWMutex
	items []state.Result
}

func NewResultsView() *ResultsView {
	v := &ResultsView{}
	v.List = widget.NewList(
		v.length,
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.text(id))
		},
	)
	return v
}

// Set replaces the rows and scrolls to the newest one. Call on the UI thread.
func (v *ResultsView) Set(items []state.Result) {
	v.mu.Lock()
	v.items = items
	n := len(items)
	v.mu.Unlock()

	v.List.Refresh()
	if n > 0 {
		v.List.ScrollToBottom()
	}
}

func (v *ResultsView) length() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

func (v *ResultsView) text(id widget.ListItemID) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if id < 0 || id >= len(v.items) {
		return ""
	}
	return FormatResult(v.items[id])
}
