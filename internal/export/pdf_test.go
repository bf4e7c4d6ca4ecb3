package export

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CalcBoard/internal/state"
)

func board() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	for x := 20; x < 300; x++ {
		img.SetRGBA(x, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return img
}

func TestWritePDF(t *testing.T) {
	var out bytes.Buffer
	err := WritePDF(&out, board(), Background, []state.Result{
		{Expression: "2+2", Answer: "4"},
		{Expression: "x", Answer: "5"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out.String(), "%%EOF")
}

func TestWritePDFWithoutResults(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePDF(&out, board(), Background, nil))
	assert.NotZero(t, out.Len())
}

func TestWritePDFRejectsEmptyBoard(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, WritePDF(&out, nil, Background, nil), ErrEmptyBoard)
	assert.ErrorIs(t, WritePDF(&out, image.NewRGBA(image.Rect(0, 0, 0, 0)), Background, nil), ErrEmptyBoard)
	assert.Zero(t, out.Len())
}

func TestFlattenPaintsBackground(t *testing.T) {
	img := flatten(board(), Background)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x10, B: 0x12, A: 0xff}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(50, 100))
}
