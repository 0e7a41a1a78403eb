package ui

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count in binary units ("1.5 GiB").
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

// FormatTime renders a timestamp for tables, "-" when unknown.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// FormatAge renders a timestamp relative to now ("3 weeks ago").
func FormatAge(t time.Time) string {
	return humanize.Time(t)
}
