// Package temporal holds the pure time/location predicates shared by the
// validation rules and the reschedule logic. No state, no I/O.
package temporal

import (
	"errors"
	"strings"
	"time"
)

// OvernightGapThreshold is the gap beyond which two segments are no
// longer considered back-to-back; transfer warnings are waived past it.
const OvernightGapThreshold = 4 * time.Hour

var ErrNegativeDuration = errors.New("end is before start")

// Overlaps reports whether two half-open spans [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DatesOverlap is the date-only analogue for check-in/check-out ranges.
// Instants are truncated to their UTC calendar day before comparison, so
// checking out on the day another stay checks in does not overlap.
func DatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	a1, a2 := dateOf(aIn), dateOf(aOut)
	b1, b2 := dateOf(bIn), dateOf(bOut)
	return a1.Before(b2) && b1.Before(a2)
}

// DurationMinutes returns end-start in whole minutes, erroring on
// negative spans.
func DurationMinutes(start, end time.Time) (int64, error) {
	d := end.Sub(start)
	if d < 0 {
		return 0, ErrNegativeDuration
	}
	return int64(d / time.Minute), nil
}

// HasOvernightGap reports whether the gap between one segment's end and
// the next segment's start exceeds the overnight threshold.
func HasOvernightGap(end, nextStart time.Time) bool {
	return nextStart.Sub(end) > OvernightGapThreshold
}

// SameLocation compares normalized location identity. Codes win when both
// sides have one; otherwise names are compared case-insensitively. A side
// with neither code nor name never matches anything.
func SameLocation(aCode, aName, bCode, bName string) bool {
	aCode, bCode = strings.TrimSpace(aCode), strings.TrimSpace(bCode)
	if aCode != "" && bCode != "" {
		return strings.EqualFold(aCode, bCode)
	}
	aName, bName = strings.TrimSpace(aName), strings.TrimSpace(bName)
	if aName == "" || bName == "" {
		return false
	}
	return strings.EqualFold(aName, bName)
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
