package rules

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayfare/internal/models/db_models"
)

func ts(day, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, time.UTC)
}

func flightSegment(number string, start, end time.Time) db_models.Segment {
	s := db_models.Segment{
		Kind:      db_models.SegmentKindFlight,
		StartTime: start,
		EndTime:   end,
		Flight:    &db_models.FlightDetails{Airline: "UA", FlightNumber: number, Origin: "SFO", Destination: "JFK"},
	}
	s.ID = uuid.New()
	return s
}

func hotelSegment(property string, checkIn, checkOut time.Time) db_models.Segment {
	s := db_models.Segment{
		Kind:      db_models.SegmentKindHotel,
		StartTime: checkIn,
		EndTime:   checkOut,
		Hotel:     &db_models.HotelDetails{Property: property, CheckIn: &checkIn, CheckOut: &checkOut},
	}
	s.ID = uuid.New()
	return s
}

func activitySegment(name, locName string, start, end time.Time) db_models.Segment {
	s := db_models.Segment{
		Kind:      db_models.SegmentKindActivity,
		StartTime: start,
		EndTime:   end,
		Activity:  &db_models.ActivityDetails{Name: name, Location: db_models.Location{Name: locName}},
	}
	s.ID = uuid.New()
	return s
}

func transferSegment(start, end time.Time) db_models.Segment {
	s := db_models.Segment{
		Kind:      db_models.SegmentKindTransfer,
		StartTime: start,
		EndTime:   end,
		Transfer:  &db_models.TransferDetails{TransferType: "taxi"},
	}
	s.ID = uuid.New()
	return s
}

func itineraryWith(segments ...db_models.Segment) *db_models.Itinerary {
	it := &db_models.Itinerary{Segments: segments}
	it.ID = uuid.New()
	return it
}

func TestNoFlightOverlap(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	existing := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	it := itineraryWith(existing)

	incoming := flightSegment("200", ts(10, 12, 0), ts(10, 16, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	issue := result.Errors[0]
	assert.Equal(t, RuleNoFlightOverlap, issue.RuleID)
	assert.Contains(t, issue.RelatedSegmentIDs, existing.ID.String())
	assert.Contains(t, issue.RelatedSegmentIDs, incoming.ID.String())
	assert.NotEmpty(t, issue.Suggestion)
}

func TestNoFlightOverlapTouchingEndpoints(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	existing := flightSegment("100", ts(10, 8, 0), ts(10, 10, 0))
	it := itineraryWith(existing)

	incoming := flightSegment("200", ts(10, 10, 0), ts(10, 12, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestNoFlightOverlapAgainstHotel(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	stay := hotelSegment("Grand Hotel", ts(10, 15, 0), ts(12, 11, 0))
	it := itineraryWith(stay)

	incoming := flightSegment("300", ts(11, 9, 0), ts(11, 12, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, RuleNoFlightOverlap, result.Errors[0].RuleID)
}

func TestNoHotelOverlap(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	existing := hotelSegment("Hotel A", ts(15, 15, 0), ts(17, 11, 0))
	it := itineraryWith(existing)

	incoming := hotelSegment("Hotel B", ts(16, 15, 0), ts(18, 11, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, RuleNoHotelOverlap, result.Errors[0].RuleID)
}

func TestNoHotelOverlapBackToBackStays(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Check out the morning of the 17th, next stay checks in that evening.
	existing := hotelSegment("Hotel A", ts(15, 15, 0), ts(17, 11, 0))
	it := itineraryWith(existing)

	incoming := hotelSegment("Hotel B", ts(17, 15, 0), ts(19, 11, 0))
	result := engine.ValidateAdd(it, &incoming)

	assert.True(t, result.Valid)
}

func TestSegmentWithinTripDates(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	start, end := ts(10, 0, 0), ts(20, 0, 0)
	it := itineraryWith()
	it.StartDate = &start
	it.EndDate = &end

	inside := activitySegment("Museum", "Paris", ts(12, 10, 0), ts(12, 12, 0))
	assert.True(t, engine.ValidateAdd(it, &inside).Valid)

	outside := activitySegment("Museum", "Paris", ts(22, 10, 0), ts(22, 12, 0))
	result := engine.ValidateAdd(it, &outside)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, RuleSegmentWithinTripDates, result.Errors[0].RuleID)
	assert.Contains(t, result.Errors[0].Message, "falls outside the trip date range")
}

func TestSegmentWithinTripDatesSkippedWithoutBounds(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	it := itineraryWith()
	far := activitySegment("Museum", "Paris", ts(28, 10, 0), ts(28, 12, 0))
	assert.True(t, engine.ValidateAdd(it, &far).Valid)
}

func TestChronologicalOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	it := itineraryWith()

	inverted := activitySegment("Dinner", "Rome", ts(10, 20, 0), ts(10, 19, 0))
	result := engine.ValidateAdd(it, &inverted)
	assert.False(t, result.Valid)

	var ids []string
	for _, issue := range result.Errors {
		ids = append(ids, issue.RuleID)
	}
	assert.Contains(t, ids, RuleChronologicalOrder)

	zeroLength := activitySegment("Dinner", "Rome", ts(10, 20, 0), ts(10, 20, 0))
	result = engine.ValidateAdd(it, &zeroLength)
	assert.False(t, result.Valid, "zero-length spans are rejected")
}

func TestActivityRequiresTransferWarns(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	museum := activitySegment("Museum", "Louvre", ts(10, 10, 0), ts(10, 12, 0))
	it := itineraryWith(museum)

	lunch := activitySegment("Lunch", "Montmartre", ts(10, 12, 30), ts(10, 13, 30))
	result := engine.ValidateAdd(it, &lunch)

	assert.True(t, result.Valid, "warnings never block")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, RuleActivityRequiresTransfer, result.Warnings[0].RuleID)
}

func TestActivityRequiresTransferWaivedByTransfer(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	museum := activitySegment("Museum", "Louvre", ts(10, 10, 0), ts(10, 12, 0))
	ride := transferSegment(ts(10, 12, 0), ts(10, 12, 30))
	it := itineraryWith(museum, ride)

	lunch := activitySegment("Lunch", "Montmartre", ts(10, 12, 30), ts(10, 13, 30))
	result := engine.ValidateAdd(it, &lunch)
	assert.Empty(t, result.Warnings)
}

func TestActivityRequiresTransferWaivedOvernight(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	museum := activitySegment("Museum", "Louvre", ts(10, 10, 0), ts(10, 12, 0))
	it := itineraryWith(museum)

	// Next morning, well past the overnight threshold.
	breakfast := activitySegment("Breakfast", "Montmartre", ts(11, 9, 0), ts(11, 10, 0))
	result := engine.ValidateAdd(it, &breakfast)
	assert.Empty(t, result.Warnings)
}

func TestReasonableDuration(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	it := itineraryWith()

	tests := []struct {
		name    string
		segment db_models.Segment
		warned  bool
	}{
		{"plausible flight", flightSegment("1", ts(10, 10, 0), ts(10, 14, 0)), false},
		{"ten minute flight", flightSegment("2", ts(10, 10, 0), ts(10, 10, 10)), true},
		{"twenty-two hour flight", flightSegment("3", ts(10, 1, 0), ts(10, 23, 0)), true},
		{"plausible activity", activitySegment("Hike", "Trailhead", ts(10, 9, 0), ts(10, 15, 0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.ValidateAdd(it, &tt.segment)
			warned := false
			for _, w := range result.Warnings {
				if w.RuleID == RuleReasonableDuration {
					warned = true
				}
			}
			assert.Equal(t, tt.warned, warned)
		})
	}
}

func TestReasonableDurationMealCap(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	it := itineraryWith()

	dinner := activitySegment("Dinner", "Rome", ts(10, 18, 0), ts(10, 23, 0))
	dinner.Activity.Category = "dinner"
	result := engine.ValidateAdd(it, &dinner)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, RuleReasonableDuration, result.Warnings[0].RuleID)

	// The same five hours pass as a generic activity.
	hike := activitySegment("Hike", "Alps", ts(10, 18, 0), ts(10, 23, 0))
	result = engine.ValidateAdd(it, &hike)
	assert.Empty(t, result.Warnings)
}

func TestGeographicContinuityInfo(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	morning := activitySegment("Morning walk", "Kyoto", ts(10, 9, 0), ts(10, 10, 0))
	it := itineraryWith(morning)

	// Hours later in a different city with nothing covering the move.
	evening := activitySegment("Dinner", "Osaka", ts(10, 19, 0), ts(10, 21, 0))
	result := engine.ValidateAdd(it, &evening)

	assert.True(t, result.Valid)
	var found bool
	for _, issue := range result.Info {
		if issue.RuleID == RuleGeographicContinuity {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHotelActivityOverlapAllowed(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	stay := hotelSegment("Grand Hotel", ts(10, 15, 0), ts(13, 11, 0))
	it := itineraryWith(stay)

	tour := activitySegment("City tour", "Downtown", ts(11, 10, 0), ts(11, 13, 0))
	result := engine.ValidateAdd(it, &tour)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	var found bool
	for _, issue := range result.Info {
		if issue.RuleID == RuleHotelActivityOverlapAllowed {
			found = true
		}
	}
	assert.True(t, found, "the overlap is confirmed as informational")
}

func TestDanglingDependencyOnDelete(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	flight := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	ride := transferSegment(ts(10, 14, 15), ts(10, 15, 0))
	ride.DependsOnID = &flight.ID
	it := itineraryWith(flight, ride)

	result := engine.ValidateDelete(it, flight.ID)

	assert.True(t, result.Valid, "the delete is allowed")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, RuleDanglingDependency, result.Warnings[0].RuleID)
	assert.Equal(t, []string{ride.ID.String()}, result.Warnings[0].RelatedSegmentIDs)
}

func TestDeleteAllowedForConflictingSegment(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	first := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	second := flightSegment("200", ts(10, 12, 0), ts(10, 16, 0))
	it := itineraryWith(first, second)

	// Removing either of two overlapping flights resolves the conflict,
	// so the overlap must not block the removal itself.
	result := engine.ValidateDelete(it, first.ID)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestDeleteAllowedOutsideTripDates(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	stray := activitySegment("Museum", "Paris", ts(20, 10, 0), ts(20, 12, 0))
	it := itineraryWith(stray)
	start, end := ts(10, 0, 0), ts(12, 0, 0)
	it.StartDate, it.EndDate = &start, &end

	result := engine.ValidateDelete(it, stray.ID)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestDanglingDependencyIgnoredOutsideDelete(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	flight := flightSegment("100", ts(10, 10, 0), ts(10, 14, 0))
	ride := transferSegment(ts(10, 14, 15), ts(10, 15, 0))
	ride.DependsOnID = &flight.ID
	it := itineraryWith(ride)

	result := engine.ValidateAdd(it, &flight)
	for _, w := range result.Warnings {
		assert.NotEqual(t, RuleDanglingDependency, w.RuleID)
	}
}
