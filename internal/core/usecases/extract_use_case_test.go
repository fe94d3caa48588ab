package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt_view_extractor/internal/core/domain"
	"yt_view_extractor/internal/core/ports"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func newTestUseCase(yt *fakeYoutube) *extractUseCase {
	return &extractUseCase{
		open:     func(domain.Credential) ports.YoutubePort { return yt },
		log:      nopLogger{},
		newRunID: func() string { return "run-1" },
	}
}

func titles(records []domain.VideoRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func mustWindow(t *testing.T, start, end string) domain.DateWindow {
	t.Helper()
	w, err := domain.ParseDateWindow(start, end)
	require.NoError(t, err)
	return w
}

// threeChannels sets up UC1 and UC3 with matching uploads and UC2 with uploads
// outside the window.
func threeChannels() *fakeYoutube {
	yt := newFakeYoutube()
	yt.channels["UC1"] = domain.Channel{ID: "UC1", Title: "One", UploadsPlaylistID: "UU1"}
	yt.channels["UC2"] = domain.Channel{ID: "UC2", Title: "Two", UploadsPlaylistID: "UU2"}
	yt.channels["UC3"] = domain.Channel{ID: "UC3", Title: "Three", UploadsPlaylistID: "UU3"}

	yt.uploads["UU1"] = pagesOf(
		[]domain.UploadItem{{VideoID: "a1", PublishedAt: at(2024, time.March, 2)}},
		[]domain.UploadItem{{VideoID: "a2", PublishedAt: at(2024, time.March, 30)}},
	)
	yt.uploads["UU2"] = pagesOf(
		[]domain.UploadItem{{VideoID: "b1", PublishedAt: at(2023, time.March, 2)}},
	)
	yt.uploads["UU3"] = pagesOf(
		[]domain.UploadItem{
			{VideoID: "c1", PublishedAt: at(2024, time.March, 5)},
			{VideoID: "c2", PublishedAt: at(2024, time.April, 1)},
		},
	)

	yt.videos["a1"] = domain.VideoDetail{ID: "a1", Title: "A1", Description: "hello #AI #go", ChannelTitle: "One", ViewCount: 10}
	yt.videos["a2"] = domain.VideoDetail{ID: "a2", Title: "A2", Description: "plain", ChannelTitle: "One", ViewCount: 20}
	yt.videos["b1"] = domain.VideoDetail{ID: "b1", Title: "B1"}
	yt.videos["c1"] = domain.VideoDetail{ID: "c1", Title: "C1", Description: "#ml stuff", ChannelTitle: "Three", ViewCount: 30}
	yt.videos["c2"] = domain.VideoDetail{ID: "c2", Title: "C2"}
	return yt
}

func TestRun_ChannelUploads_AggregatesInOrder(t *testing.T) {
	yt := threeChannels()
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1", " UC2 ", "UC3", ""},
		Window:     mustWindow(t, "032024", "032024"),
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, domain.StatusOK, report.Status)
	assert.Equal(t, []string{"A1", "A2", "C1"}, titles(report.Records))
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Sources, 3)
	assert.Equal(t, 0, report.Sources[1].Rows)
	assert.Equal(t, 2, report.Sources[0].Pages)

	first := report.Records[0]
	assert.Equal(t, "One", first.ChannelName)
	assert.Equal(t, "#AI, #go", first.Description)
	assert.Equal(t, uint64(10), first.ViewCount)
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), first.PublishedDate)

	// one detail call per matching upload
	assert.Equal(t, 3, yt.countCalls("videos:"))
}

func TestRun_ChannelUploads_FailureDoesNotDropOthers(t *testing.T) {
	yt := threeChannels()
	yt.fail["videos:a2"] = errors.Join(domain.ErrQuotaExceeded, errors.New("403"))
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1", "UC3"},
		Window:     mustWindow(t, "032024", "032024"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"C1"}, titles(report.Records))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningQuotaExceeded, report.Warnings[0].Kind)
	assert.Equal(t, "UC1", report.Warnings[0].Source)
	assert.True(t, report.Sources[0].Failed)

	var fetchErr *domain.FetchError
	require.ErrorAs(t, report.Warnings[0].Err, &fetchErr)
	assert.Equal(t, "video details", fetchErr.Op)
}

func TestRun_ChannelUploads_ChannelNotFoundSkipped(t *testing.T) {
	yt := threeChannels()
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UCmissing", "UC3"},
		Window:     mustWindow(t, "032024", "032024"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"C1"}, titles(report.Records))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningChannelNotFound, report.Warnings[0].Kind)
	assert.ErrorIs(t, report.Warnings[0].Err, domain.ErrChannelNotFound)
	assert.Contains(t, report.Warnings[0].Message, "UCmissing")
}

func TestRun_ChannelUploads_Filters(t *testing.T) {
	yt := threeChannels()
	uc := newTestUseCase(yt)
	window := mustWindow(t, "032024", "032024")

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1", "UC3"},
		Window:     window,
		Filter:     domain.NewFilterSpec("", "#ai, #ML"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "C1"}, titles(report.Records))

	report, err = uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1", "UC3"},
		Window:     window,
		Filter:     domain.NewFilterSpec("PLAIN", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, titles(report.Records))
}

func TestRun_ChannelUploads_PolicyQuirk(t *testing.T) {
	yt := newFakeYoutube()
	yt.channels["UC1"] = domain.Channel{ID: "UC1", Title: "One", UploadsPlaylistID: "UU1"}
	yt.uploads["UU1"] = pagesOf([]domain.UploadItem{
		{VideoID: "dec", PublishedAt: at(2023, time.December, 10)},
		{VideoID: "jan", PublishedAt: at(2024, time.January, 10)},
	})
	yt.videos["dec"] = domain.VideoDetail{ID: "dec", Title: "Dec"}
	yt.videos["jan"] = domain.VideoDetail{ID: "jan", Title: "Jan"}
	uc := newTestUseCase(yt)

	req := domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1"},
		Window:     mustWindow(t, "122023", "022024"),
	}

	report, err := uc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoData, report.Status)
	assert.Empty(t, report.Records)

	req.UploadPolicy = domain.PolicyChronological28
	report, err = uc.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dec", "Jan"}, titles(report.Records))
}

func TestRun_ChannelUploads_SkipsIncompleteItems(t *testing.T) {
	yt := newFakeYoutube()
	yt.channels["UC1"] = domain.Channel{ID: "UC1", Title: "One", UploadsPlaylistID: "UU1"}
	yt.uploads["UU1"] = pagesOf([]domain.UploadItem{
		{VideoID: "private"},
		{VideoID: "gone", PublishedAt: at(2024, time.May, 1)},
		{VideoID: "ok", PublishedAt: at(2024, time.May, 2)},
	})
	yt.videos["ok"] = domain.VideoDetail{ID: "ok", Title: "OK"}
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1"},
		Window:     mustWindow(t, "052024", "052024"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"OK"}, titles(report.Records))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningVideoMissing, report.Warnings[0].Kind)
	assert.Equal(t, 0, yt.countCalls("videos:private"))
}

func TestRun_HashtagSearch(t *testing.T) {
	yt := newFakeYoutube()
	yt.search["#AI"] = pagesOf(
		[]domain.SearchHit{
			{VideoID: "", PublishedAt: at(2024, time.January, 3)},
			{VideoID: "in1", PublishedAt: at(2024, time.January, 15)},
			{VideoID: "late", PublishedAt: at(2024, time.January, 29)},
		},
		[]domain.SearchHit{
			{VideoID: "in2", PublishedAt: time.Date(2024, time.January, 28, 0, 0, 0, 0, time.UTC)},
			{VideoID: "feb", PublishedAt: at(2024, time.February, 1)},
		},
	)
	yt.videos["in1"] = domain.VideoDetail{ID: "in1", Title: "In 1", Description: "full text #AI", ChannelTitle: "Chan A", ViewCount: 5}
	yt.videos["in2"] = domain.VideoDetail{ID: "in2", Title: "In 2", Description: "other", ChannelTitle: "Chan B"}
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:   domain.ModeHashtagSearch,
		Query:  " #AI ",
		Window: mustWindow(t, "012024", "012024"),
		Filter: domain.NewFilterSpec("nothing-matches", "#robotics"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"In 1", "In 2"}, titles(report.Records))
	assert.Equal(t, "full text #AI", report.Records[0].Description)
	assert.Equal(t, "Chan B", report.Records[1].ChannelName)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 2, yt.countCalls("videos:"))
	assert.Equal(t, 2, yt.countCalls("search:#AI"))
}

func TestRun_HashtagSearch_LargeRangeWarning(t *testing.T) {
	yt := newFakeYoutube()
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:   domain.ModeHashtagSearch,
		Query:  "#go",
		Window: mustWindow(t, "012024", "032024"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNoData, report.Status)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningLargeRange, report.Warnings[0].Kind)
}

func TestRun_HashtagSearch_FailureDropsContribution(t *testing.T) {
	yt := newFakeYoutube()
	yt.search["#go"] = pagesOf(
		[]domain.SearchHit{{VideoID: "v1", PublishedAt: at(2024, time.January, 3)}},
		[]domain.SearchHit{{VideoID: "v2", PublishedAt: at(2024, time.January, 4)}},
	)
	yt.videos["v1"] = domain.VideoDetail{ID: "v1", Title: "V1"}
	yt.fail["search:#go:p1"] = domain.ErrUpstream
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:   domain.ModeHashtagSearch,
		Query:  "#go",
		Window: mustWindow(t, "012024", "012024"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNoData, report.Status)
	assert.Empty(t, report.Records)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningFetchFailed, report.Warnings[0].Kind)
}

func TestRun_InvalidRequests(t *testing.T) {
	uc := newTestUseCase(newFakeYoutube())
	window := mustWindow(t, "012024", "012024")

	tests := []struct {
		name string
		req  domain.ExtractRequest
		want error
	}{
		{"no channels", domain.ExtractRequest{Mode: domain.ModeChannelUploads, ChannelIDs: []string{" "}, Window: window}, domain.ErrInvalidRequest},
		{"no query", domain.ExtractRequest{Mode: domain.ModeHashtagSearch, Query: "  ", Window: window}, domain.ErrInvalidRequest},
		{"unknown mode", domain.ExtractRequest{Mode: domain.Mode(9), Window: window}, domain.ErrInvalidRequest},
		{"zero window", domain.ExtractRequest{Mode: domain.ModeHashtagSearch, Query: "#go"}, domain.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	uc := newTestUseCase(threeChannels())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Run(ctx, domain.ExtractRequest{
		Mode:       domain.ModeChannelUploads,
		ChannelIDs: []string{"UC1"},
		Window:     mustWindow(t, "032024", "032024"),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_HashtagSearch_MissingVideoWarns(t *testing.T) {
	yt := newFakeYoutube()
	yt.search["#go"] = pagesOf(
		[]domain.SearchHit{
			{VideoID: "v1", PublishedAt: at(2024, time.January, 3)},
			{VideoID: "gone", PublishedAt: at(2024, time.January, 4)},
		},
	)
	yt.videos["v1"] = domain.VideoDetail{ID: "v1", Title: "V1"}
	uc := newTestUseCase(yt)

	report, err := uc.Run(context.Background(), domain.ExtractRequest{
		Mode:   domain.ModeHashtagSearch,
		Query:  "#go",
		Window: mustWindow(t, "012024", "012024"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"V1"}, titles(report.Records))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, domain.WarningVideoMissing, report.Warnings[0].Kind)
	assert.Contains(t, report.Warnings[0].Message, "gone")
}
