package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// DayWindow returns the local [00:00:00.000, 23:59:59.999] window containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	to := from.Add(24*time.Hour - time.Millisecond)
	return from, to
}

// MonthWindow returns the local window covering the whole calendar month.
func MonthWindow(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)
	return from, to
}
