package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"CalcBoard/internal/export"
	"CalcBoard/internal/session"
)

func showExportDialog(win fyne.Window, s *session.Session, status *widget.Label, log *zap.Logger) {
	if s.Surface() == nil {
		status.SetText("Nothing to export yet")
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		if err := exportSession(writer, s, log); err != nil {
			status.SetText("Export failed: " + err.Error())
			dialog.ShowError(err, win)
			return
		}
		status.SetText(fmt.Sprintf("Exported %d results to %s", len(s.Results()), writer.URI().Name()))
	}, win)
	d.SetFileName("calcboard.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}

// exportSession writes the board and results as a PDF and always closes the
// writer.
func exportSession(writer io.WriteCloser, s *session.Session, log *zap.Logger) (err error) {
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()

	surface := s.Surface()
	if surface == nil {
		return export.ErrEmptyBoard
	}
	results := s.Results()
	if err := export.WritePDF(writer, surface.Image(), export.Background, results); err != nil {
		log.Error("export failed", zap.Error(err))
		return err
	}
	log.Info("exported board", zap.Int("results", len(results)))
	return nil
}
