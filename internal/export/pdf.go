// Package export renders the board and its results to a printable PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"CalcBoard/internal/state"
)

// Background is the board colour strokes are drawn against on screen.
var Background = color.NRGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff}

var ErrEmptyBoard = errors.New("export: board image has no pixels")

// WritePDF writes a landscape A4 page with the board at the top and the
// result list under it. The transparent board is flattened onto bg first so
// white strokes stay visible on paper.
func WritePDF(w io.Writer, board image.Image, bg color.Color, results []state.Result) error {
	if board == nil || board.Bounds().Empty() {
		return ErrEmptyBoard
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, flatten(board, bg)); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("CalcBoard", true)
	p.SetCreator("CalcBoard", true)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	imgW := pageW - left - right
	bw, bh := board.Bounds().Dx(), board.Bounds().Dy()
	imgH := imgW * float64(bh) / float64(bw)
	if maxH := (pageH - top - bottom) * 0.6; imgH > maxH {
		imgH = maxH
		imgW = imgH * float64(bw) / float64(bh)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)
	p.ImageOptions("board", left, top, imgW, imgH, false, opts, 0, "")

	p.SetY(top + imgH + 8)
	p.SetFont("Helvetica", "B", 14)
	p.CellFormat(0, 8, "Results", "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 12)
	if len(results) == 0 {
		p.CellFormat(0, 7, "No results yet.", "", 1, "L", false, 0, "")
	}
	for _, r := range results {
		p.CellFormat(0, 7, tr(fmt.Sprintf("%s = %s", r.Expression, r.Answer)), "", 1, "L", false, 0, "")
	}
	return p.Output(w)
}

func flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}
