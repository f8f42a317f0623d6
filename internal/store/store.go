package store

import (
	"fmt"
	"time"
)

// Date and timestamp columns are stored as ISO-formatted TEXT so that SQL
// range comparisons stay lexicographic and aggregates (MIN/MAX) round-trip
// without driver-dependent type conversion.
const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
