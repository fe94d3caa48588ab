package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected MMYYYY")
	ErrInvalidDateRange  = errors.New("start month is after end month")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrQuotaExceeded     = errors.New("youtube api quota exceeded")
	ErrUpstream          = errors.New("youtube api error")
	ErrMissingCredential = errors.New("no api key or token available")
	ErrInvalidRequest    = errors.New("invalid request")
)

// FetchError records which source and which call failed.
type FetchError struct {
	Source string
	Op     string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
