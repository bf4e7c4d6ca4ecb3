// Package raster holds the drawing surface: a pixel buffer that pointer
// events paint into or erase from.
package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"sync"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"CalcBoard/internal/state"
)

// DataURIPrefix starts every snapshot produced by Surface.Snapshot.
const DataURIPrefix = "data:image/png;base64,"

var ErrNoCanvas = errors.New("raster: canvas has no drawable area")

// ToolReader supplies the tool state. It is consulted on every move so that
// changes made mid-stroke apply to the very next segment.
type ToolReader interface {
	Tools() state.ToolState
}

// Surface is a transparent RGBA buffer with a single in-progress stroke.
type Surface struct {
	mu      sync.Mutex
	img     *image.RGBA
	tools   ToolReader
	drawing bool
	last    state.Point
}

func New(width, height int, tools ToolReader) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoCanvas, width, height)
	}
	if tools == nil {
		return nil, errors.New("raster: nil tool reader")
	}
	return &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		tools: tools,
	}, nil
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Drawing reports whether a stroke is in progress.
func (s *Surface) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// PointerDown starts a new path at p.
func (s *Surface) PointerDown(p state.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = true
	s.last = p
}

// PointerMove extends the current path to p, painting or erasing the segment
// from the previous point. It reports whether anything was rasterised.
func (s *Surface) PointerMove(p state.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drawing {
		return false
	}
	s.segment(s.last, p, s.tools.Tools())
	s.last = p
	return true
}

func (s *Surface) PointerUp() { s.stop() }

func (s *Surface) PointerLeave() { s.stop() }

func (s *Surface) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing = false
}

// Clear wipes every pixel back to transparent.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.img.Pix)
}

// Empty reports whether every pixel is fully transparent.
func (s *Surface) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 3; i < len(s.img.Pix); i += 4 {
		if s.img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// Resize reallocates the buffer, keeping whatever fits at the origin. A
// stroke in progress carries on in the new buffer.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoCanvas, width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), s.img, image.Point{}, draw.Src)
	s.img = img
	return nil
}

// Image returns a copy of the buffer.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Snapshot encodes the buffer as a PNG data URI.
func (s *Surface) Snapshot() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image()); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// segment rasterises a->b into the smallest box that holds the stroke. Pen
// strokes composite over the buffer; eraser strokes punch the same shape out
// to transparent.
func (s *Surface) segment(a, b state.Point, t state.ToolState) {
	width := float64(t.Width())
	pad := int(math.Ceil(width/2)) + 2
	box := image.Rect(
		int(math.Floor(float64(min(a.X, b.X))))-pad,
		int(math.Floor(float64(min(a.Y, b.Y))))-pad,
		int(math.Ceil(float64(max(a.X, b.X))))+pad+1,
		int(math.Ceil(float64(max(a.Y, b.Y))))+pad+1,
	).Intersect(s.img.Bounds())
	if box.Empty() {
		return
	}

	from := rasterx.ToFixedP(float64(a.X)-float64(box.Min.X), float64(a.Y)-float64(box.Min.Y))
	to := rasterx.ToFixedP(float64(b.X)-float64(box.Min.X), float64(b.Y)-float64(box.Min.Y))

	if t.Eraser {
		mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
		stroke(mask, from, to, width, color.Opaque)
		draw.DrawMask(s.img, box, image.Transparent, image.Point{}, mask, image.Point{}, draw.Src)
		return
	}
	stroke(s.img.SubImage(box).(*image.RGBA), from, to, width, t.Color)
}

// stroke draws a round-capped line onto dst. Coordinates are relative to
// dst.Bounds().Min.
func stroke(dst draw.Image, from, to fixed.Point26_6, width float64, c color.Color) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	stroker := rasterx.NewStroker(b.Dx(), b.Dy(), scanner)
	stroker.SetStroke(fixed.Int26_6(width*64), 4<<6, rasterx.RoundCap, nil, rasterx.RoundGap, rasterx.Round)
	stroker.SetColor(c)
	stroker.Start(from)
	stroker.Line(to)
	stroker.Stop(false)
	stroker.Draw()
}
