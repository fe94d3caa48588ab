package usecases

import (
	"context"
	"fmt"
	"time"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

func (uc *extractUseCase) fetchHashtagSearch(ctx context.Context, yt ports.YoutubePort, query string, window domain.DateWindow) (sourceResult, error) {
	res := sourceResult{summary: domain.SourceSummary{Source: query, Name: query}}

	pages, err := Paginate(ctx, func(ctx context.Context, pageToken string) (domain.Page[domain.SearchHit], error) {
		return yt.SearchVideos(ctx, query, pageToken)
	}, func(hits []domain.SearchHit) error {
		var ids []string
		published := make(map[string]time.Time, len(hits))

		for _, hit := range hits {
			if hit.VideoID == "" {
				continue
			}
			if !window.Matches(domain.PolicyChronological28, hit.PublishedAt) {
				continue
			}
			ids = append(ids, hit.VideoID)
			published[hit.VideoID] = hit.PublishedAt
		}

		if len(ids) == 0 {
			return nil
		}
		res.summary.Matched += len(ids)

		details, missing, err := EnrichVideos(ctx, yt, ids, detailBatchSize)
		if err != nil {
			return err
		}

		for _, id := range missing {
			res.warnings = append(res.warnings, domain.Warning{
				Source:  query,
				Kind:    domain.WarningVideoMissing,
				Message: fmt.Sprintf("video %s is no longer available", id),
			})
		}

		for _, d := range details {
			publishedAt, ok := published[d.ID]
			if !ok {
				publishedAt = d.PublishedAt
			}

			res.records = append(res.records, domain.VideoRecord{
				VideoID:       d.ID,
				ChannelName:   d.ChannelTitle,
				Title:         d.Title,
				Description:   d.Description,
				PublishedDate: domain.CalendarDate(publishedAt),
				ViewCount:     d.ViewCount,
				Duration:      d.Duration,
			})
		}

		return nil
	})
	res.summary.Pages = pages
	if err != nil {
		res.records = nil
		return res, &domain.FetchError{Source: query, Op: "search", Err: err}
	}

	res.summary.Rows = len(res.records)
	return res, nil
}
