package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"CalcBoard/internal/export"
	"CalcBoard/internal/session"
)

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closingBuffer) Close() error {
	b.closed = true
	return nil
}

func TestExportSessionWritesPDF(t *testing.T) {
	s := session.New(nil, zap.NewNop())
	_, err := s.Attach(64, 48)
	require.NoError(t, err)

	buf := &closingBuffer{}
	require.NoError(t, exportSession(buf, s, zap.NewNop()))
	assert.True(t, buf.closed)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportSessionWithoutSurface(t *testing.T) {
	s := session.New(nil, zap.NewNop())

	buf := &closingBuffer{}
	err := exportSession(buf, s, zap.NewNop())
	assert.ErrorIs(t, err, export.ErrEmptyBoard)
	assert.True(t, buf.closed)
	assert.Zero(t, buf.Len())
}
