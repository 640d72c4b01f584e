package request_models

import (
	"time"

	"github.com/google/uuid"

	"wayfare/internal/models/db_models"
	"wayfare/pkg/utils"
)

// SegmentPayload is the wire shape of a segment for API requests, LLM
// extraction candidates, and designer proposals. Exactly one variant
// object should accompany the kind.
type SegmentPayload struct {
	ID          string            `json:"id,omitempty"`
	Kind        string            `json:"kind" binding:"required"`
	Status      string            `json:"status,omitempty"`
	StartTime   time.Time         `json:"start_time" binding:"required"`
	EndTime     time.Time         `json:"end_time" binding:"required"`
	TravelerIDs []string          `json:"traveler_ids,omitempty"`
	Source      string            `json:"source,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	DependsOnID string            `json:"depends_on_id,omitempty"`

	Location *db_models.Location `json:"location,omitempty"`

	Flight   *db_models.FlightDetails   `json:"flight,omitempty"`
	Hotel    *db_models.HotelDetails    `json:"hotel,omitempty"`
	Meeting  *db_models.MeetingDetails  `json:"meeting,omitempty"`
	Activity *db_models.ActivityDetails `json:"activity,omitempty"`
	Transfer *db_models.TransferDetails `json:"transfer,omitempty"`
	Custom   *db_models.CustomDetails   `json:"custom,omitempty"`
}

var validKinds = map[db_models.SegmentKind]bool{
	db_models.SegmentKindFlight:   true,
	db_models.SegmentKindHotel:    true,
	db_models.SegmentKindMeeting:  true,
	db_models.SegmentKindActivity: true,
	db_models.SegmentKindTransfer: true,
	db_models.SegmentKindCustom:   true,
}

// ToSegment converts the payload to the domain model, resolving ids.
// Malformed ids and unknown kinds are structural faults, not rule
// violations.
func (p *SegmentPayload) ToSegment() (*db_models.Segment, error) {
	kind := db_models.SegmentKind(p.Kind)
	if !validKinds[kind] {
		return nil, utils.ErrInvalidInput
	}

	seg := &db_models.Segment{
		Kind:      kind,
		Status:    db_models.SegmentStatusTentative,
		StartTime: p.StartTime.UTC(),
		EndTime:   p.EndTime.UTC(),
		Source:    p.Source,
		Metadata:  p.Metadata,
		Flight:    p.Flight,
		Hotel:     p.Hotel,
		Meeting:   p.Meeting,
		Activity:  p.Activity,
		Transfer:  p.Transfer,
		Custom:    p.Custom,
	}
	if p.Source == "" {
		seg.Source = db_models.SegmentSourceUser
	}
	if p.Status != "" {
		seg.Status = db_models.SegmentStatus(p.Status)
	}
	if p.Location != nil {
		seg.Location = *p.Location
	}
	if p.ID != "" {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		seg.ID = id
	}
	if p.DependsOnID != "" {
		dep, err := uuid.Parse(p.DependsOnID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		seg.DependsOnID = &dep
	}
	for _, t := range p.TravelerIDs {
		seg.TravelerIDs = append(seg.TravelerIDs, t)
	}
	return seg, nil
}

// MoveSegmentRequest carries the shift in minutes. Zero is a legal
// no-op, so the field carries no required binding.
type MoveSegmentRequest struct {
	DeltaMinutes int64 `json:"delta_minutes"`
}
