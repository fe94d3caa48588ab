package usecases

import "yt_view_extractor/internal/core/domain"

// Aggregate concatenates per-source tables in the order given. Duplicates are kept.
func Aggregate(parts ...[]domain.VideoRecord) ([]domain.VideoRecord, domain.Status) {
	total := 0
	for _, p := range parts {
		total += len(p)
	}

	if total == 0 {
		return nil, domain.StatusNoData
	}

	records := make([]domain.VideoRecord, 0, total)
	for _, p := range parts {
		records = append(records, p...)
	}

	return records, domain.StatusOK
}
