package domain

import "time"

// VideoRecord is one row of the exported table.
type VideoRecord struct {
	VideoID       string
	ChannelName   string
	Title         string
	Description   string
	PublishedDate time.Time
	ViewCount     uint64
	Duration      time.Duration
}

// VideoDetail is what the videos endpoint returns for a single id.
type VideoDetail struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	ViewCount    uint64
	PublishedAt  time.Time
	Duration     time.Duration
}

// UploadItem is an entry of a channel's uploads playlist.
type UploadItem struct {
	VideoID     string
	PublishedAt time.Time
}

// SearchHit is an entry of a search result page.
type SearchHit struct {
	VideoID     string
	PublishedAt time.Time
}

// Channel is the resolved form of a channel identifier.
type Channel struct {
	ID                string
	Title             string
	UploadsPlaylistID string
}

// Page is one page of a cursor-based listing. An empty NextPageToken ends the listing.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
