package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 15, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"partial overlap", at(10, 0), at(14, 0), at(12, 0), at(16, 0), true},
		{"contained", at(10, 0), at(18, 0), at(12, 0), at(14, 0), true},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"touching endpoints do not overlap", at(8, 0), at(10, 0), at(10, 0), at(12, 0), false},
		{"identical spans", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "must be symmetric")
		})
	}
}

func TestDatesOverlap(t *testing.T) {
	tests := []struct {
		name                 string
		aIn, aOut, bIn, bOut time.Time
		want                 bool
	}{
		{"overlapping stays", day(15), day(17), day(16), day(18), true},
		{"back to back stays", day(15), day(17), day(17), day(19), false},
		{"disjoint stays", day(10), day(12), day(14), day(16), false},
		{"nested stay", day(10), day(20), day(12), day(14), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DatesOverlap(tt.aIn, tt.aOut, tt.bIn, tt.bOut))
		})
	}
}

func TestDatesOverlapIgnoresTimeOfDay(t *testing.T) {
	// Checkout at 23:00 vs check-in at 01:00 on the same calendar day.
	aOut := time.Date(2025, 6, 17, 23, 0, 0, 0, time.UTC)
	bIn := time.Date(2025, 6, 17, 1, 0, 0, 0, time.UTC)
	assert.False(t, DatesOverlap(day(15), aOut, bIn, day(19)))
}

func TestDurationMinutes(t *testing.T) {
	minutes, err := DurationMinutes(at(10, 0), at(12, 30))
	require.NoError(t, err)
	assert.Equal(t, int64(150), minutes)

	_, err = DurationMinutes(at(12, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrNegativeDuration)

	minutes, err = DurationMinutes(at(10, 0), at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), minutes)
}

func TestHasOvernightGap(t *testing.T) {
	assert.False(t, HasOvernightGap(at(10, 0), at(13, 0)))
	assert.False(t, HasOvernightGap(at(10, 0), at(14, 0)), "exactly the threshold is not overnight")
	assert.True(t, HasOvernightGap(at(10, 0), at(14, 1)))
}

func TestSameLocation(t *testing.T) {
	tests := []struct {
		name                       string
		aCode, aName, bCode, bName string
		want                       bool
	}{
		{"codes match", "SFO", "San Francisco", "sfo", "whatever", true},
		{"codes differ despite same name", "SFO", "Bay Area", "OAK", "Bay Area", false},
		{"names match when one side lacks a code", "", "Tokyo", "HND", "tokyo", true},
		{"empty sides never match", "", "", "", "", false},
		{"one empty side never matches", "", "", "SFO", "San Francisco", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameLocation(tt.aCode, tt.aName, tt.bCode, tt.bName))
		})
	}
}
