package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ItineraryStatus string

const (
	ItineraryStatusDraft      ItineraryStatus = "DRAFT"
	ItineraryStatusPlanned    ItineraryStatus = "PLANNED"
	ItineraryStatusConfirmed  ItineraryStatus = "CONFIRMED"
	ItineraryStatusInProgress ItineraryStatus = "IN_PROGRESS"
	ItineraryStatusCompleted  ItineraryStatus = "COMPLETED"
	ItineraryStatusCancelled  ItineraryStatus = "CANCELLED"
)

// Itinerary is the aggregate root for a trip. Segments are kept in
// insertion order, not temporal order. Every mutation bumps Version;
// the repository uses it as a compare-and-swap guard at save time.
type Itinerary struct {
	BaseModel
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      ItineraryStatus `gorm:"type:varchar(20);default:'DRAFT'"`
	Version     int             `gorm:"default:1"`

	OwnerID   uuid.UUID
	EditorIDs pq.StringArray `gorm:"type:text[]"`
	ViewerIDs pq.StringArray `gorm:"type:text[]"`

	Travelers []Traveler `gorm:"constraint:OnDelete:CASCADE"`
	Segments  []Segment  `gorm:"constraint:OnDelete:CASCADE"`
}

type Traveler struct {
	BaseModel
	ItineraryID uuid.UUID `gorm:"type:uuid;index"`
	FullName    string
	Email       string
}

// HasTripDates reports whether both trip bounds are set. Rules that
// enforce trip-date containment only run when this is true.
func (i *Itinerary) HasTripDates() bool {
	return i != nil && i.StartDate != nil && i.EndDate != nil
}

// FindSegment returns the segment with the given id, or nil.
func (i *Itinerary) FindSegment(segmentID uuid.UUID) *Segment {
	for idx := range i.Segments {
		if i.Segments[idx].ID == segmentID {
			return &i.Segments[idx]
		}
	}
	return nil
}
