package models

import (
	"strings"
	"time"

	dErrors "astrotrack/pkg/domain-errors"
)

// DateLayout is the wire and storage format for whole-day dates.
const DateLayout = "2006-01-02"

// NormalizeDate converts t to UTC and truncates it to midnight. Every stored or
// compared duty date goes through here.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBefore returns the normalized day preceding t.
func DayBefore(t time.Time) time.Time {
	return NormalizeDate(t).AddDate(0, 0, -1)
}

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date. Bare dates
// are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "date is required")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, dErrors.Wrap(err, dErrors.CodeValidation, "date must be RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}

// FormatDate renders a normalized date, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
