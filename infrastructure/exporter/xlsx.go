package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

const (
	sheetName  = "Sheet1"
	dateFormat = "yyyy-mm-dd"
)

var header = []any{"Channel Name", "Video Title", "Description", "Published Date", "View Count"}

type xlsxExporter struct{}

func NewXLSXExporter() ports.ExporterPort {
	return &xlsxExporter{}
}

// DefaultFileName is the file name suggested for an export of window.
func DefaultFileName(window domain.DateWindow) string {
	return fmt.Sprintf("youtube_data_%s_%s.xlsx", window.StartToken(), window.EndToken())
}

func (e *xlsxExporter) Export(w io.Writer, records []domain.VideoRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("error while writing header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{
			record.ChannelName,
			record.Title,
			record.Description,
			domain.CalendarDate(record.PublishedDate),
			record.ViewCount,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("error while writing row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		if err := applyDateStyle(f, len(records)); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "C", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "D", "E", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error while writing spreadsheet: %w", err)
	}

	return nil
}

func applyDateStyle(f *excelize.File, rows int) error {
	format := dateFormat
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("error while creating date style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(4, rows+1)
	if err != nil {
		return err
	}

	return f.SetCellStyle(sheetName, "D2", last, style)
}

// ExportFile writes to a temporary file next to path and renames it into place,
// so a failed export never leaves a partial spreadsheet behind.
func (e *xlsxExporter) ExportFile(path string, records []domain.VideoRecord) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".ytx-*.xlsx")
	if err != nil {
		return fmt.Errorf("error while creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := e.Export(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error while closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error while moving export to %s: %w", path, err)
	}

	return nil
}
