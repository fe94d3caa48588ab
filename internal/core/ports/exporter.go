package ports

import (
	"io"

	"yt_view_extractor/internal/core/domain"
)

type ExporterPort interface {
	Export(w io.Writer, records []domain.VideoRecord) error
	ExportFile(path string, records []domain.VideoRecord) error
}
