package state

import (
	"image/color"
	"sync"
)

// Tools owns the current ToolState. All mutation goes through the setters,
// which keep the widths inside their bounds.
type Tools struct {
	mu       sync.RWMutex
	state    ToolState
	OnChange func(ToolState)
}

func NewTools() *Tools {
	return &Tools{state: DefaultToolState()}
}

// Tools returns a copy of the current state.
func (t *Tools) Tools() ToolState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// SetColor selects a palette color. Picking a color always leaves eraser mode.
func (t *Tools) SetColor(c color.NRGBA) error {
	if !InPalette(c) {
		return ErrUnknownColor
	}
	t.update(func(s *ToolState) {
		s.Color = c
		s.Eraser = false
	})
	return nil
}

func (t *Tools) SetEraser(on bool) {
	t.update(func(s *ToolState) { s.Eraser = on })
}

func (t *Tools) SetPenWidth(w int) {
	t.update(func(s *ToolState) { s.PenWidth = ClampPenWidth(w) })
}

func (t *Tools) SetEraserWidth(w int) {
	t.update(func(s *ToolState) { s.EraserWidth = ClampEraserWidth(w) })
}

func (t *Tools) update(fn func(*ToolState)) {
	t.mu.Lock()
	fn(&t.state)
	s := t.state
	onChange := t.OnChange
	t.mu.Unlock()

	if onChange != nil {
		onChange(s)
	}
}
