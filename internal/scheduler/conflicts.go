package scheduler

import (
	"fmt"

	"wayfare/internal/models/db_models"
	"wayfare/internal/temporal"
)

// ConflictError describes the first overlap found after a shift. Callers
// surface it as a warning; a move is never rejected for creating one.
type ConflictError struct {
	RuleID     string
	SegmentIDs []string
	Detail     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.RuleID, e.Detail)
}

// ValidateNoConflicts rescans a full segment set for flight/hotel
// overlaps using the same predicates as the validation rules. Returns a
// *ConflictError for the first conflict in set order, nil when clean.
func ValidateNoConflicts(segments []db_models.Segment) error {
	for i := range segments {
		a := &segments[i]
		for j := i + 1; j < len(segments); j++ {
			b := &segments[j]

			if a.Kind == db_models.SegmentKindHotel && b.Kind == db_models.SegmentKindHotel {
				aIn, aOut := a.StayRange()
				bIn, bOut := b.StayRange()
				if temporal.DatesOverlap(aIn, aOut, bIn, bOut) {
					return &ConflictError{
						RuleID:     "NO_HOTEL_OVERLAP",
						SegmentIDs: []string{a.ID.String(), b.ID.String()},
						Detail: fmt.Sprintf("hotel stays %s and %s overlap after the shift",
							a.DisplayName(), b.DisplayName()),
					}
				}
				continue
			}

			if !flightPair(a.Kind, b.Kind) {
				continue
			}
			if temporal.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				return &ConflictError{
					RuleID:     "NO_FLIGHT_OVERLAP",
					SegmentIDs: []string{a.ID.String(), b.ID.String()},
					Detail: fmt.Sprintf("segments %s and %s overlap after the shift",
						a.DisplayName(), b.DisplayName()),
				}
			}
		}
	}
	return nil
}

// flightPair reports whether the pair is covered by the flight overlap
// conflict: flight vs flight, or flight vs hotel.
func flightPair(a, b db_models.SegmentKind) bool {
	if a == db_models.SegmentKindFlight {
		return b == db_models.SegmentKindFlight || b == db_models.SegmentKindHotel
	}
	return a == db_models.SegmentKindHotel && b == db_models.SegmentKindFlight
}
