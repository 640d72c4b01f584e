package rules

import (
	"fmt"
	"sort"
	"time"

	"wayfare/internal/models/db_models"
	"wayfare/internal/temporal"
)

// Stable rule ids. Callers disable rules by these ids.
const (
	RuleNoFlightOverlap             = "NO_FLIGHT_OVERLAP"
	RuleNoHotelOverlap              = "NO_HOTEL_OVERLAP"
	RuleSegmentWithinTripDates      = "SEGMENT_WITHIN_TRIP_DATES"
	RuleChronologicalOrder          = "CHRONOLOGICAL_ORDER"
	RuleActivityRequiresTransfer    = "ACTIVITY_REQUIRES_TRANSFER"
	RuleReasonableDuration          = "REASONABLE_DURATION"
	RuleGeographicContinuity        = "GEOGRAPHIC_CONTINUITY"
	RuleHotelActivityOverlapAllowed = "HOTEL_ACTIVITY_OVERLAP_ALLOWED"
	RuleDanglingDependency          = "DANGLING_DEPENDENCY"
)

// placementOperations scope a rule to operations that place a segment.
// Removal never re-checks where the removed segment sat.
var placementOperations = []Operation{OperationAdd, OperationUpdate}

// DefaultCatalog returns the built-in rule set. Every engine starts from
// this catalog; RegisterRule can override entries by id afterwards.
func DefaultCatalog() []Rule {
	return []Rule{
		{
			ID:         RuleNoFlightOverlap,
			Severity:   SeverityError,
			AppliesTo:  []db_models.SegmentKind{db_models.SegmentKindFlight},
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateNoFlightOverlap,
		},
		{
			ID:         RuleNoHotelOverlap,
			Severity:   SeverityError,
			AppliesTo:  []db_models.SegmentKind{db_models.SegmentKindHotel},
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateNoHotelOverlap,
		},
		{
			ID:         RuleSegmentWithinTripDates,
			Severity:   SeverityError,
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateSegmentWithinTripDates,
		},
		{
			ID:         RuleChronologicalOrder,
			Severity:   SeverityError,
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateChronologicalOrder,
		},
		{
			ID:         RuleActivityRequiresTransfer,
			Severity:   SeverityWarning,
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateActivityRequiresTransfer,
		},
		{
			ID:         RuleReasonableDuration,
			Severity:   SeverityWarning,
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateReasonableDuration,
		},
		{
			ID:         RuleGeographicContinuity,
			Severity:   SeverityInfo,
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateGeographicContinuity,
		},
		{
			ID:       RuleHotelActivityOverlapAllowed,
			Severity: SeverityInfo,
			AppliesTo: []db_models.SegmentKind{
				db_models.SegmentKindHotel,
				db_models.SegmentKindActivity,
			},
			Operations: placementOperations,
			Enabled:    true,
			Evaluate:   evaluateHotelActivityOverlapAllowed,
		},
		{
			ID:         RuleDanglingDependency,
			Severity:   SeverityWarning,
			Operations: []Operation{OperationDelete},
			Enabled:    true,
			Evaluate:   evaluateDanglingDependency,
		},
	}
}

// evaluateNoFlightOverlap fails when a flight's span overlaps another
// flight or hotel segment. The message names the first conflict in
// candidate order; RelatedSegmentIDs carries the evaluated segment plus
// every conflicting id.
func evaluateNoFlightOverlap(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil || s.Kind != db_models.SegmentKindFlight {
		return pass()
	}

	var first *db_models.Segment
	var conflicts []string
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.ID == s.ID {
			continue
		}
		if c.Kind != db_models.SegmentKindFlight && c.Kind != db_models.SegmentKindHotel {
			continue
		}
		if temporal.Overlaps(s.StartTime, s.EndTime, c.StartTime, c.EndTime) {
			if first == nil {
				first = c
			}
			conflicts = append(conflicts, c.ID.String())
		}
	}
	if first == nil {
		return pass()
	}
	return RuleResult{
		Message: fmt.Sprintf("flight %s overlaps %s (%s - %s)",
			s.DisplayName(), first.DisplayName(),
			first.StartTime.Format(time.RFC3339), first.EndTime.Format(time.RFC3339)),
		Suggestion:        "move one of the segments so their time spans no longer overlap",
		RelatedSegmentIDs: append([]string{s.ID.String()}, conflicts...),
	}
}

// evaluateNoHotelOverlap fails when two hotel stays have overlapping
// check-in/check-out date ranges. Hotel vs activity overlap is allowed
// and not checked here.
func evaluateNoHotelOverlap(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil || s.Kind != db_models.SegmentKindHotel {
		return pass()
	}
	sIn, sOut := s.StayRange()

	var first *db_models.Segment
	var conflicts []string
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.ID == s.ID || c.Kind != db_models.SegmentKindHotel {
			continue
		}
		cIn, cOut := c.StayRange()
		if temporal.DatesOverlap(sIn, sOut, cIn, cOut) {
			if first == nil {
				first = c
			}
			conflicts = append(conflicts, c.ID.String())
		}
	}
	if first == nil {
		return pass()
	}
	return RuleResult{
		Message: fmt.Sprintf("hotel stay %s overlaps the stay at %s",
			s.DisplayName(), first.DisplayName()),
		Suggestion:        "adjust the check-in/check-out dates so the stays do not overlap",
		RelatedSegmentIDs: append([]string{s.ID.String()}, conflicts...),
	}
}

// evaluateSegmentWithinTripDates only acts when the itinerary has both
// trip bounds set.
func evaluateSegmentWithinTripDates(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil || ctx.Itinerary == nil || !ctx.Itinerary.HasTripDates() {
		return pass()
	}
	tripStart := dateOnly(*ctx.Itinerary.StartDate)
	tripEnd := dateOnly(*ctx.Itinerary.EndDate)
	segStart := dateOnly(s.StartTime)
	segEnd := dateOnly(s.EndTime)

	if segStart.Before(tripStart) || segEnd.After(tripEnd) {
		return RuleResult{
			Message: fmt.Sprintf("%s falls outside the trip date range (%s to %s)",
				s.DisplayName(),
				tripStart.Format("2006-01-02"), tripEnd.Format("2006-01-02")),
			Suggestion:        "change the segment dates or widen the trip dates",
			RelatedSegmentIDs: []string{s.ID.String()},
		}
	}
	return pass()
}

func evaluateChronologicalOrder(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil {
		return pass()
	}
	if s.EndTime.After(s.StartTime) {
		return pass()
	}
	return RuleResult{
		Message:           fmt.Sprintf("%s ends at or before it starts", s.DisplayName()),
		Suggestion:        "set an end time strictly after the start time",
		RelatedSegmentIDs: []string{s.ID.String()},
	}
}

// evaluateActivityRequiresTransfer warns when the segment is adjacent to
// another segment at a different location with no transfer in between.
// Waived when the gap is overnight or either side lacks a location.
func evaluateActivityRequiresTransfer(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil || s.Kind == db_models.SegmentKindTransfer {
		return pass()
	}
	sLoc := s.EffectiveLocation()
	if sLoc.IsZero() {
		return pass()
	}

	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.ID == s.ID || c.Kind == db_models.SegmentKindTransfer {
			continue
		}
		cLoc := c.EffectiveLocation()
		if cLoc.IsZero() {
			continue
		}
		if temporal.SameLocation(sLoc.Code, sLoc.Name, cLoc.Code, cLoc.Name) {
			continue
		}

		// Adjacency in either direction.
		prev, next := c, s
		if c.StartTime.After(s.StartTime) {
			prev, next = s, c
		}
		gap := next.StartTime.Sub(prev.EndTime)
		if gap < 0 || temporal.HasOvernightGap(prev.EndTime, next.StartTime) {
			continue
		}
		if hasTransferBetween(ctx.Candidates, prev.EndTime, next.StartTime) {
			continue
		}
		return RuleResult{
			Message: fmt.Sprintf("%s and %s are back to back at different locations with no transfer between them",
				prev.DisplayName(), next.DisplayName()),
			Suggestion:        "add a transfer segment between them or allow more time",
			RelatedSegmentIDs: []string{prev.ID.String(), next.ID.String()},
		}
	}
	return pass()
}

func hasTransferBetween(candidates []db_models.Segment, from, to time.Time) bool {
	for i := range candidates {
		t := &candidates[i]
		if t.Kind != db_models.SegmentKindTransfer {
			continue
		}
		if !t.StartTime.Before(from) && !t.EndTime.After(to) {
			return true
		}
	}
	return false
}

type durationBounds struct {
	min, max int64 // minutes
}

var plausibleDurations = map[db_models.SegmentKind]durationBounds{
	db_models.SegmentKindFlight:   {min: 30, max: 20 * 60},
	db_models.SegmentKindHotel:    {min: 8 * 60, max: 30 * 24 * 60},
	db_models.SegmentKindMeeting:  {min: 15, max: 8 * 60},
	db_models.SegmentKindActivity: {min: 15, max: 12 * 60},
	db_models.SegmentKindTransfer: {min: 5, max: 6 * 60},
}

// mealCategories mark activities with a tighter plausible duration.
var mealCategories = map[string]bool{
	"meal": true, "food": true, "dining": true, "restaurant": true,
	"breakfast": true, "lunch": true, "dinner": true,
}

func evaluateReasonableDuration(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil {
		return pass()
	}
	bounds, ok := plausibleDurations[s.Kind]
	if !ok {
		return pass()
	}
	minutes, err := temporal.DurationMinutes(s.StartTime, s.EndTime)
	if err != nil {
		// CHRONOLOGICAL_ORDER reports inverted spans.
		return pass()
	}
	if s.Kind == db_models.SegmentKindActivity && s.Activity != nil && mealCategories[s.Activity.Category] {
		bounds.max = 3 * 60
	}
	if minutes < bounds.min {
		return RuleResult{
			Message:           fmt.Sprintf("%s lasts only %d minutes, implausibly short for a %s", s.DisplayName(), minutes, s.Kind),
			Suggestion:        "check the start and end times",
			RelatedSegmentIDs: []string{s.ID.String()},
		}
	}
	if minutes > bounds.max {
		return RuleResult{
			Message:           fmt.Sprintf("%s lasts %d minutes, implausibly long for a %s", s.DisplayName(), minutes, s.Kind),
			Suggestion:        "check the start and end times",
			RelatedSegmentIDs: []string{s.ID.String()},
		}
	}
	return pass()
}

// evaluateGeographicContinuity flags unexplained location jumps across
// the day of the evaluated segment. Advisory only.
func evaluateGeographicContinuity(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil {
		return pass()
	}
	day := dateOnly(s.StartTime)

	var sameDay []*db_models.Segment
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if dateOnly(c.StartTime).Equal(day) {
			sameDay = append(sameDay, c)
		}
	}
	sortByStart(sameDay)

	for i := 0; i+1 < len(sameDay); i++ {
		a, b := sameDay[i], sameDay[i+1]
		if a.Kind == db_models.SegmentKindFlight || a.Kind == db_models.SegmentKindTransfer ||
			b.Kind == db_models.SegmentKindFlight || b.Kind == db_models.SegmentKindTransfer {
			continue
		}
		aLoc, bLoc := a.EffectiveLocation(), b.EffectiveLocation()
		if aLoc.IsZero() || bLoc.IsZero() {
			continue
		}
		if temporal.SameLocation(aLoc.Code, aLoc.Name, bLoc.Code, bLoc.Name) {
			continue
		}
		if hasTransferBetween(ctx.Candidates, a.EndTime, b.StartTime) {
			continue
		}
		return RuleResult{
			Message: fmt.Sprintf("the day jumps from %s to %s with nothing scheduled to cover the move",
				locationLabel(aLoc), locationLabel(bLoc)),
			RelatedSegmentIDs: []string{a.ID.String(), b.ID.String()},
		}
	}
	return pass()
}

// evaluateHotelActivityOverlapAllowed emits an informational confirmation
// when a hotel stay and an activity overlap. Never blocks.
func evaluateHotelActivityOverlapAllowed(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil {
		return pass()
	}
	var other db_models.SegmentKind
	switch s.Kind {
	case db_models.SegmentKindHotel:
		other = db_models.SegmentKindActivity
	case db_models.SegmentKindActivity:
		other = db_models.SegmentKindHotel
	default:
		return pass()
	}
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.ID == s.ID || c.Kind != other {
			continue
		}
		if temporal.Overlaps(s.StartTime, s.EndTime, c.StartTime, c.EndTime) {
			return RuleResult{
				Message: fmt.Sprintf("%s overlaps %s; hotel stays may overlap activities",
					s.DisplayName(), c.DisplayName()),
				RelatedSegmentIDs: []string{s.ID.String(), c.ID.String()},
			}
		}
	}
	return pass()
}

// evaluateDanglingDependency only acts on delete: it warns when remaining
// segments still point at the segment being removed.
func evaluateDanglingDependency(ctx RuleContext) RuleResult {
	s := ctx.Segment
	if s == nil || ctx.Operation != OperationDelete {
		return pass()
	}
	var dependents []string
	for i := range ctx.Candidates {
		c := &ctx.Candidates[i]
		if c.DependsOnID != nil && *c.DependsOnID == s.ID {
			dependents = append(dependents, c.ID.String())
		}
	}
	if len(dependents) == 0 {
		return pass()
	}
	return RuleResult{
		Message:           fmt.Sprintf("%d segment(s) depend on %s and will be left without their anchor", len(dependents), s.DisplayName()),
		Suggestion:        "clear or repoint the depends-on links before deleting",
		RelatedSegmentIDs: dependents,
	}
}

func locationLabel(l db_models.Location) string {
	if l.Code != "" {
		return l.Code
	}
	return l.Name
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func sortByStart(segments []*db_models.Segment) {
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].StartTime.Before(segments[j].StartTime)
	})
}
