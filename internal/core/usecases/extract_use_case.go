package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

// largeRangeMonths is the widest hashtag search window that does not trigger a quota warning.
const largeRangeMonths = 1

type extractUseCase struct {
	open     ports.YoutubeOpener
	log      ports.LoggerPort
	newRunID func() string
}

type ExtractUseCase interface {
	Run(ctx context.Context, req domain.ExtractRequest) (domain.Report, error)
}

func NewExtractUseCase(open ports.YoutubeOpener, logger ports.LoggerPort) ExtractUseCase {
	return &extractUseCase{
		open:     open,
		log:      logger,
		newRunID: uuid.NewString,
	}
}

// Run executes one extraction. Only an invalid request returns an error; upstream
// failures are reported per channel or query in Report.Warnings.
func (uc *extractUseCase) Run(ctx context.Context, req domain.ExtractRequest) (domain.Report, error) {
	req, err := normalizeRequest(req)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{
		RunID:   uc.newRunID(),
		Request: req,
	}

	uc.log.Info(fmt.Sprintf("[%s] Init %s run, window %s, credential %s", report.RunID, req.Mode, req.Window, req.Credential))

	yt := uc.open(req.Credential)

	var parts [][]domain.VideoRecord

	switch req.Mode {
	case domain.ModeChannelUploads:
		for _, channelID := range req.ChannelIDs {
			if err := ctx.Err(); err != nil {
				return domain.Report{}, fmt.Errorf("run %s interrupted: %w", report.RunID, err)
			}

			res, err := uc.fetchChannelUploads(ctx, yt, report.RunID, channelID, req)
			uc.collect(&report, res, err)
			parts = append(parts, res.records)
		}

	case domain.ModeHashtagSearch:
		if req.Window.MonthSpan() > largeRangeMonths {
			report.Warnings = append(report.Warnings, domain.Warning{
				Source:  req.Query,
				Kind:    domain.WarningLargeRange,
				Message: "date range is more than 2 months, quota might reach the limit if there are more than 500 videos",
			})
		}

		res, err := uc.fetchHashtagSearch(ctx, yt, req.Query, req.Window)
		uc.collect(&report, res, err)
		parts = append(parts, res.records)
	}

	report.Records, report.Status = Aggregate(parts...)

	if report.Status == domain.StatusNoData {
		uc.log.Warning(fmt.Sprintf("[%s] No data found for the selected period", report.RunID))
	}
	uc.log.Info(fmt.Sprintf("[%s] Run completed: %d rows, %d warnings", report.RunID, len(report.Records), len(report.Warnings)))

	return report, nil
}

// collect merges a source result into the report, turning a fetch error into a warning.
func (uc *extractUseCase) collect(report *domain.Report, res sourceResult, err error) {
	report.Warnings = append(report.Warnings, res.warnings...)

	if err != nil {
		res.summary.Failed = true
		res.summary.Rows = 0
		w := warningFor(res.summary.Source, err)
		report.Warnings = append(report.Warnings, w)
		uc.log.Error(fmt.Sprintf("[%s] %s", report.RunID, w.Message), err)
	} else {
		uc.log.Info(fmt.Sprintf("[%s] %s: %d pages, %d matched, %d rows",
			report.RunID, res.summary.Source, res.summary.Pages, res.summary.Matched, res.summary.Rows))
	}

	report.Sources = append(report.Sources, res.summary)
}

func warningFor(source string, err error) domain.Warning {
	switch {
	case errors.Is(err, domain.ErrChannelNotFound):
		return domain.Warning{
			Source:  source,
			Kind:    domain.WarningChannelNotFound,
			Message: fmt.Sprintf("No items found for channel ID: %s", source),
			Err:     err,
		}
	case errors.Is(err, domain.ErrQuotaExceeded):
		return domain.Warning{
			Source:  source,
			Kind:    domain.WarningQuotaExceeded,
			Message: fmt.Sprintf("quota exceeded while fetching %s, its results were dropped", source),
			Err:     err,
		}
	default:
		return domain.Warning{
			Source:  source,
			Kind:    domain.WarningFetchFailed,
			Message: fmt.Sprintf("an error occurred while fetching %s: %v", source, err),
			Err:     err,
		}
	}
}

func normalizeRequest(req domain.ExtractRequest) (domain.ExtractRequest, error) {
	switch req.Mode {
	case domain.ModeChannelUploads:
		ids := make([]string, 0, len(req.ChannelIDs))
		for _, id := range req.ChannelIDs {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return req, fmt.Errorf("please enter at least one channel ID: %w", domain.ErrInvalidRequest)
		}
		req.ChannelIDs = ids

	case domain.ModeHashtagSearch:
		req.Query = strings.TrimSpace(req.Query)
		if req.Query == "" {
			return req, fmt.Errorf("please enter a hashtag: %w", domain.ErrInvalidRequest)
		}
		// Search results are already narrowed by the query and the date window.
		req.Filter = domain.FilterSpec{}

	default:
		return req, fmt.Errorf("unknown mode %v: %w", req.Mode, domain.ErrInvalidRequest)
	}

	if req.Window.MonthSpan() < 0 || req.Window.StartMonth == 0 || req.Window.EndMonth == 0 {
		return req, fmt.Errorf("date window %s: %w", req.Window, domain.ErrInvalidDateRange)
	}

	return req, nil
}
