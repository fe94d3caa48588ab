package domain

import "fmt"

// Mode selects how candidate videos are found.
type Mode int

const (
	ModeChannelUploads Mode = iota
	ModeHashtagSearch
)

func (m Mode) String() string {
	switch m {
	case ModeChannelUploads:
		return "Channel Uploads"
	case ModeHashtagSearch:
		return "Hashtag Search"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ExtractRequest carries every parameter of a run.
type ExtractRequest struct {
	Credential   Credential
	Mode         Mode
	ChannelIDs   []string
	Query        string
	Window       DateWindow
	Filter       FilterSpec
	UploadPolicy DatePolicy
}

type Status int

const (
	StatusOK Status = iota
	StatusNoData
)

func (s Status) String() string {
	if s == StatusNoData {
		return "no data"
	}
	return "ok"
}

type WarningKind string

const (
	WarningChannelNotFound WarningKind = "channel_not_found"
	WarningFetchFailed     WarningKind = "fetch_failed"
	WarningQuotaExceeded   WarningKind = "quota_exceeded"
	WarningVideoMissing    WarningKind = "video_missing"
	WarningLargeRange      WarningKind = "large_range"
)

// Warning is a non-fatal problem reported back to the caller.
type Warning struct {
	Source  string
	Kind    WarningKind
	Message string
	Err     error
}

func (w Warning) String() string {
	if w.Source == "" {
		return w.Message
	}
	return w.Source + ": " + w.Message
}

// SourceSummary describes what a single channel or query contributed.
type SourceSummary struct {
	Source  string
	Name    string
	Pages   int
	Matched int
	Rows    int
	Failed  bool
}

// Report is the outcome of a run.
type Report struct {
	RunID    string
	Request  ExtractRequest
	Records  []VideoRecord
	Warnings []Warning
	Sources  []SourceSummary
	Status   Status
}

func (r Report) HasData() bool {
	return r.Status == StatusOK && len(r.Records) > 0
}
