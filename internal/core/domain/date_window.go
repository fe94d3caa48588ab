package domain

import (
	"fmt"
	"time"
)

// DateWindow is an inclusive month-granularity range.
type DateWindow struct {
	StartMonth int
	StartYear  int
	EndMonth   int
	EndYear    int
}

// DatePolicy selects how a timestamp is compared against a DateWindow.
type DatePolicy int

const (
	// PolicyMonthIndependent checks year and month separately against their own
	// bounds. A window 12/2023..02/2024 therefore only accepts month 12 if it is
	// also <= 2, i.e. nothing across the year boundary.
	PolicyMonthIndependent DatePolicy = iota
	// PolicyChronological28 accepts timestamps between the first day of the start
	// month and the 28th of the end month at 00:00 UTC, both inclusive.
	PolicyChronological28
)

func (p DatePolicy) String() string {
	switch p {
	case PolicyMonthIndependent:
		return "month-independent"
	case PolicyChronological28:
		return "chronological"
	default:
		return fmt.Sprintf("DatePolicy(%d)", int(p))
	}
}

// ParseDatePolicy accepts the names returned by DatePolicy.String.
func ParseDatePolicy(name string) (DatePolicy, error) {
	switch name {
	case "", "month-independent":
		return PolicyMonthIndependent, nil
	case "chronological":
		return PolicyChronological28, nil
	}
	return 0, fmt.Errorf("unknown date policy %q", name)
}

// ParseMonthYear parses a six character MMYYYY token.
func ParseMonthYear(token string) (month, year int, err error) {
	if len(token) != 6 {
		return 0, 0, fmt.Errorf("%q: %w", token, ErrInvalidDateFormat)
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, 0, fmt.Errorf("%q: %w", token, ErrInvalidDateFormat)
		}
	}

	month = int(token[0]-'0')*10 + int(token[1]-'0')
	for i := 2; i < 6; i++ {
		year = year*10 + int(token[i]-'0')
	}

	if month < 1 || month > 12 || year < 1 {
		return 0, 0, fmt.Errorf("%q: %w", token, ErrInvalidDateFormat)
	}

	return month, year, nil
}

// ParseDateWindow builds a window from two MMYYYY tokens.
func ParseDateWindow(start, end string) (DateWindow, error) {
	startMonth, startYear, err := ParseMonthYear(start)
	if err != nil {
		return DateWindow{}, fmt.Errorf("start: %w", err)
	}

	endMonth, endYear, err := ParseMonthYear(end)
	if err != nil {
		return DateWindow{}, fmt.Errorf("end: %w", err)
	}

	w := DateWindow{StartMonth: startMonth, StartYear: startYear, EndMonth: endMonth, EndYear: endYear}
	if w.MonthSpan() < 0 {
		return DateWindow{}, fmt.Errorf("%s > %s: %w", start, end, ErrInvalidDateRange)
	}

	return w, nil
}

func (w DateWindow) StartToken() string {
	return fmt.Sprintf("%02d%04d", w.StartMonth, w.StartYear)
}

func (w DateWindow) EndToken() string {
	return fmt.Sprintf("%02d%04d", w.EndMonth, w.EndYear)
}

// MonthSpan is the number of months from the start month to the end month.
func (w DateWindow) MonthSpan() int {
	return (w.EndYear-w.StartYear)*12 + (w.EndMonth - w.StartMonth)
}

// Start is 00:00 UTC on the first day of the start month.
func (w DateWindow) Start() time.Time {
	return time.Date(w.StartYear, time.Month(w.StartMonth), 1, 0, 0, 0, 0, time.UTC)
}

// End is 00:00 UTC on the 28th of the end month.
func (w DateWindow) End() time.Time {
	return time.Date(w.EndYear, time.Month(w.EndMonth), 28, 0, 0, 0, 0, time.UTC)
}

// Matches reports whether t falls in the window under the given policy.
func (w DateWindow) Matches(policy DatePolicy, t time.Time) bool {
	switch policy {
	case PolicyChronological28:
		return w.matchesChronological(t)
	default:
		return w.matchesMonthIndependent(t)
	}
}

func (w DateWindow) matchesMonthIndependent(t time.Time) bool {
	u := t.UTC()
	year, month := u.Year(), int(u.Month())
	return w.StartYear <= year && year <= w.EndYear &&
		w.StartMonth <= month && month <= w.EndMonth
}

func (w DateWindow) matchesChronological(t time.Time) bool {
	u := t.UTC()
	return !u.Before(w.Start()) && !u.After(w.End())
}

func (w DateWindow) String() string {
	return w.StartToken() + "-" + w.EndToken()
}
