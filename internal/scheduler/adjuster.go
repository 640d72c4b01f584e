// Package scheduler propagates time shifts through an itinerary's
// dependency structure and rescans the result for conflicts.
package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
	"wayfare/internal/temporal"
	"wayfare/pkg/utils"
)

// InferredChainWindow is how soon after another segment's end a
// same-location segment must start to be treated as logistically chained.
const InferredChainWindow = 30 * time.Minute

// AdjustDependentSegments shifts the segment with movedID by delta, along
// with every segment in its dependency closure: explicit depends-on links
// followed transitively, plus inferred same-location adjacency chains.
// Segments outside the closure are returned unchanged, in original order.
// The input slice is not mutated. Explicit dependency cycles terminate
// because each segment joins the closure at most once.
func AdjustDependentSegments(segments []db_models.Segment, movedID uuid.UUID, delta time.Duration) ([]db_models.Segment, error) {
	found := false
	for i := range segments {
		if segments[i].ID == movedID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", utils.ErrSegmentNotFound, movedID)
	}

	closure := map[uuid.UUID]struct{}{movedID: {}}
	for changed := true; changed; {
		changed = false
		for i := range segments {
			s := &segments[i]
			if _, in := closure[s.ID]; in {
				continue
			}
			if inClosure(closure, s, segments) {
				closure[s.ID] = struct{}{}
				changed = true
			}
		}
	}

	shifted := make([]db_models.Segment, len(segments))
	for i := range segments {
		shifted[i] = segments[i]
		if _, in := closure[segments[i].ID]; in {
			applyShift(&shifted[i], delta)
		}
	}
	return shifted, nil
}

// inClosure reports whether s must join the closure: either it explicitly
// depends on a member, or it starts at the same location within the chain
// window of a member's end.
func inClosure(closure map[uuid.UUID]struct{}, s *db_models.Segment, segments []db_models.Segment) bool {
	if s.DependsOnID != nil {
		if _, in := closure[*s.DependsOnID]; in {
			return true
		}
	}
	sLoc := s.EffectiveLocation()
	if sLoc.IsZero() {
		return false
	}
	for i := range segments {
		m := &segments[i]
		if _, in := closure[m.ID]; !in {
			continue
		}
		gap := s.StartTime.Sub(m.EndTime)
		if gap < 0 || gap > InferredChainWindow {
			continue
		}
		mLoc := m.EffectiveLocation()
		if mLoc.IsZero() {
			continue
		}
		if temporal.SameLocation(sLoc.Code, sLoc.Name, mLoc.Code, mLoc.Name) {
			return true
		}
	}
	return false
}

func applyShift(s *db_models.Segment, delta time.Duration) {
	s.StartTime = s.StartTime.Add(delta)
	s.EndTime = s.EndTime.Add(delta)
	if s.Hotel != nil && (s.Hotel.CheckIn != nil || s.Hotel.CheckOut != nil) {
		// Copy the payload so callers holding the original are untouched.
		h := *s.Hotel
		if h.CheckIn != nil {
			in := h.CheckIn.Add(delta)
			h.CheckIn = &in
		}
		if h.CheckOut != nil {
			out := h.CheckOut.Add(delta)
			h.CheckOut = &out
		}
		s.Hotel = &h
	}
}
