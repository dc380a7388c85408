package handlers

import (
	"time"
)

// parseDate accepts the YYYY-MM-DD wire format used by all endpoints.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// today is midnight UTC of the current day, the reference point for all
// derived payment states and alerts.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
