package utils

import (
	"time"
)

// FormatRFC3339 renders a timestamp in UTC RFC3339, the wire format for
// all segment and trip times.
func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
