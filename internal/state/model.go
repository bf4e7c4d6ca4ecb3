package state

import (
	"errors"
	"image/color"
)

// Point is a position in board coordinates.
type Point struct{ X, Y float32 }

// Pen and eraser width bounds, inclusive.
const (
	MinPenWidth    = 1
	MaxPenWidth    = 25
	MinEraserWidth = 1
	MaxEraserWidth = 100
)

var ErrUnknownColor = errors.New("color is not in the palette")

// Palette is the closed set of pen colors offered by the tool selector.
var Palette = []color.NRGBA{
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
	{R: 0xee, G: 0x33, B: 0x33, A: 0xff}, // red
	{R: 0xe6, G: 0x49, B: 0x80, A: 0xff}, // pink
	{R: 0xbe, G: 0x4b, B: 0xdb, A: 0xff}, // purple
	{R: 0x22, G: 0x8b, B: 0xe6, A: 0xff}, // blue
	{R: 0x3b, G: 0xc9, B: 0xdb, A: 0xff}, // cyan
	{R: 0x40, G: 0xc0, B: 0x57, A: 0xff}, // green
	{R: 0xfa, G: 0xb0, B: 0x05, A: 0xff}, // yellow
	{R: 0xfd, G: 0x7e, B: 0x14, A: 0xff}, // orange
}

// InPalette reports whether c is one of the palette colors.
func InPalette(c color.NRGBA) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// ToolState is the pen/eraser configuration read by the drawing surface on
// every pointer move.
type ToolState struct {
	Color       color.NRGBA
	Eraser      bool
	PenWidth    int
	EraserWidth int
}

// DefaultToolState is a white pen, width 3, with a 20px eraser.
func DefaultToolState() ToolState {
	return ToolState{
		Color:       Palette[0],
		PenWidth:    3,
		EraserWidth: 20,
	}
}

// Width returns the width of whichever tool is active.
func (t ToolState) Width() int {
	if t.Eraser {
		return t.EraserWidth
	}
	return t.PenWidth
}

// SwatchScale is the fraction of a swatch cell filled by the active color's
// dot. It grows with the pen width and reaches the full cell at MaxPenWidth.
func SwatchScale(penWidth int) float32 {
	return float32(ClampPenWidth(penWidth)) * 4 / 100
}

func ClampPenWidth(w int) int { return clamp(w, MinPenWidth, MaxPenWidth) }
func ClampEraserWidth(w int) int { return clamp(w, MinEraserWidth, MaxEraserWidth) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result is one recognised expression and its answer as returned by the
// solver service.
type Result struct {
	Expression string `json:"expression"`
	Answer     string `json:"answer"`
}
