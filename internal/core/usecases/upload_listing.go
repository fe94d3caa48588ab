package usecases

import (
	"context"
	"fmt"
	"time"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// sourceResult is what one channel or one query contributed to a run.
type sourceResult struct {
	records  []domain.VideoRecord
	warnings []domain.Warning
	summary  domain.SourceSummary
}

func (uc *extractUseCase) fetchChannelUploads(ctx context.Context, yt ports.YoutubePort, runID, channelID string, req domain.ExtractRequest) (sourceResult, error) {
	res := sourceResult{summary: domain.SourceSummary{Source: channelID}}

	channel, err := ResolveChannel(ctx, yt, channelID)
	if err != nil {
		return res, &domain.FetchError{Source: channelID, Op: "resolve channel", Err: err}
	}
	res.summary.Name = channel.Title

	var ids []string
	published := make(map[string]time.Time)
	skipped := 0

	pages, err := Paginate(ctx, func(ctx context.Context, pageToken string) (domain.Page[domain.UploadItem], error) {
		return yt.ListUploads(ctx, channel.UploadsPlaylistID, pageToken)
	}, func(items []domain.UploadItem) error {
		for _, item := range items {
			if item.VideoID == "" || item.PublishedAt.IsZero() {
				skipped++
				continue
			}
			if _, seen := published[item.VideoID]; !seen {
				published[item.VideoID] = item.PublishedAt
			}
			if req.Window.Matches(req.UploadPolicy, item.PublishedAt) {
				ids = append(ids, item.VideoID)
			}
		}
		return nil
	})
	res.summary.Pages = pages
	if err != nil {
		return res, &domain.FetchError{Source: channelID, Op: "list uploads", Err: err}
	}

	if skipped > 0 {
		uc.log.Warning(fmt.Sprintf("[%s] %s: skipped %d uploads without video id or publish time", runID, channelID, skipped))
	}
	res.summary.Matched = len(ids)

	// One detail call per video keeps a deleted video from hiding its neighbours.
	details, missing, err := EnrichVideos(ctx, yt, ids, 1)
	if err != nil {
		return res, &domain.FetchError{Source: channelID, Op: "video details", Err: err}
	}

	for _, id := range missing {
		res.warnings = append(res.warnings, domain.Warning{
			Source:  channelID,
			Kind:    domain.WarningVideoMissing,
			Message: fmt.Sprintf("video %s is no longer available", id),
		})
	}

	for _, d := range details {
		if !req.Filter.Matches(d.Title, d.Description) {
			continue
		}

		res.records = append(res.records, domain.VideoRecord{
			VideoID:       d.ID,
			ChannelName:   channel.Title,
			Title:         d.Title,
			Description:   domain.HashtagSummary(d.Description),
			PublishedDate: domain.CalendarDate(published[d.ID]),
			ViewCount:     d.ViewCount,
			Duration:      d.Duration,
		})
	}
	res.summary.Rows = len(res.records)

	return res, nil
}
