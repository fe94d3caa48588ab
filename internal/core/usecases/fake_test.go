package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"yt_view_extractor/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Error(string, error) {}
func (nopLogger) Warning(string)      {}
func (nopLogger) Close()              {}

// fakeYoutube serves canned pages. Page tokens are "p1", "p2", ... indexes into
// the page slices.
type fakeYoutube struct {
	mu       sync.Mutex
	channels map[string]domain.Channel
	uploads  map[string][]domain.Page[domain.UploadItem]
	search   map[string][]domain.Page[domain.SearchHit]
	videos   map[string]domain.VideoDetail
	fail     map[string]error
	calls    []string
}

func newFakeYoutube() *fakeYoutube {
	return &fakeYoutube{
		channels: map[string]domain.Channel{},
		uploads:  map[string][]domain.Page[domain.UploadItem]{},
		search:   map[string][]domain.Page[domain.SearchHit]{},
		videos:   map[string]domain.VideoDetail{},
		fail:     map[string]error{},
	}
}

func (f *fakeYoutube) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeYoutube) countCalls(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func pageIndex(token string) int {
	if token == "" {
		return 0
	}
	i, _ := strconv.Atoi(strings.TrimPrefix(token, "p"))
	return i
}

func pagesOf[T any](chunks ...[]T) []domain.Page[T] {
	pages := make([]domain.Page[T], len(chunks))
	for i, c := range chunks {
		pages[i].Items = c
		if i < len(chunks)-1 {
			pages[i].NextPageToken = fmt.Sprintf("p%d", i+1)
		}
	}
	return pages
}

func (f *fakeYoutube) GetChannel(_ context.Context, channelID string) (domain.Channel, error) {
	if err := f.record("channel:" + channelID); err != nil {
		return domain.Channel{}, err
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return domain.Channel{}, fmt.Errorf("no items for %s: %w", channelID, domain.ErrChannelNotFound)
	}
	return ch, nil
}

func (f *fakeYoutube) ListUploads(_ context.Context, playlistID, pageToken string) (domain.Page[domain.UploadItem], error) {
	if err := f.record("uploads:" + playlistID + ":" + pageToken); err != nil {
		return domain.Page[domain.UploadItem]{}, err
	}
	pages := f.uploads[playlistID]
	i := pageIndex(pageToken)
	if i >= len(pages) {
		return domain.Page[domain.UploadItem]{}, nil
	}
	return pages[i], nil
}

func (f *fakeYoutube) SearchVideos(_ context.Context, query, pageToken string) (domain.Page[domain.SearchHit], error) {
	if err := f.record("search:" + query + ":" + pageToken); err != nil {
		return domain.Page[domain.SearchHit]{}, err
	}
	pages := f.search[query]
	i := pageIndex(pageToken)
	if i >= len(pages) {
		return domain.Page[domain.SearchHit]{}, nil
	}
	return pages[i], nil
}

func (f *fakeYoutube) GetVideoDetails(_ context.Context, videoIDs []string) ([]domain.VideoDetail, error) {
	if err := f.record("videos:" + strings.Join(videoIDs, ",")); err != nil {
		return nil, err
	}
	var out []domain.VideoDetail
	for _, id := range videoIDs {
		if d, ok := f.videos[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
