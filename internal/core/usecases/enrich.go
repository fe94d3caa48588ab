package usecases

import (
	"context"
	"fmt"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// detailBatchSize is the most ids the videos endpoint accepts per call.
const detailBatchSize = 50

// EnrichVideos fetches details for ids, batchSize ids per call. Details come back
// in response order; ids the API did not return are listed in missing.
func EnrichVideos(ctx context.Context, yt ports.YoutubePort, ids []string, batchSize int) (details []domain.VideoDetail, missing []string, err error) {
	if batchSize <= 0 || batchSize > detailBatchSize {
		batchSize = detailBatchSize
	}

	details = make([]domain.VideoDetail, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batch := ids[start:end]

		got, err := yt.GetVideoDetails(ctx, batch)
		if err != nil {
			return nil, nil, fmt.Errorf("error while getting video details: %w", err)
		}

		returned := make(map[string]struct{}, len(got))
		for _, d := range got {
			returned[d.ID] = struct{}{}
		}
		for _, id := range batch {
			if _, ok := returned[id]; !ok {
				missing = append(missing, id)
			}
		}

		details = append(details, got...)
	}

	return details, missing, nil
}
