package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SegmentKind string

const (
	SegmentKindFlight   SegmentKind = "FLIGHT"
	SegmentKindHotel    SegmentKind = "HOTEL"
	SegmentKindMeeting  SegmentKind = "MEETING"
	SegmentKindActivity SegmentKind = "ACTIVITY"
	SegmentKindTransfer SegmentKind = "TRANSFER"
	SegmentKindCustom   SegmentKind = "CUSTOM"
)

type SegmentStatus string

const (
	SegmentStatusTentative  SegmentStatus = "TENTATIVE"
	SegmentStatusConfirmed  SegmentStatus = "CONFIRMED"
	SegmentStatusWaitlisted SegmentStatus = "WAITLISTED"
	SegmentStatusCancelled  SegmentStatus = "CANCELLED"
	SegmentStatusCompleted  SegmentStatus = "COMPLETED"
)

// SegmentSource records where a segment came from.
const (
	SegmentSourceImport = "import"
	SegmentSourceUser   = "user"
	SegmentSourceAgent  = "agent"
)

type Location struct {
	Name string `json:"name,omitempty"`
	// Code is an airport/venue code when known; preferred for identity checks.
	Code string `json:"code,omitempty"`
}

func (l Location) IsZero() bool { return l.Name == "" && l.Code == "" }

type FlightDetails struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Airline      string `json:"airline,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"`
}

type HotelDetails struct {
	Property  string     `json:"property"`
	Location  Location   `json:"location,omitempty"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`
	RoomCount int        `json:"room_count,omitempty"`
}

type MeetingDetails struct {
	Title     string   `json:"title"`
	Location  Location `json:"location,omitempty"`
	Attendees []string `json:"attendees,omitempty"`
}

type ActivityDetails struct {
	Name     string   `json:"name"`
	Location Location `json:"location,omitempty"`
	Category string   `json:"category,omitempty"`
}

type TransferDetails struct {
	Pickup       Location `json:"pickup,omitempty"`
	Dropoff      Location `json:"dropoff,omitempty"`
	TransferType string   `json:"transfer_type,omitempty"`
}

type CustomDetails struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    Location `json:"location,omitempty"`
}

// Segment is one scheduled unit of a trip. It is a tagged union over
// Kind: exactly one of the variant payloads is expected to be non-nil,
// matching the tag. Segments belong to exactly one itinerary and are
// mutated only through the itinerary service.
type Segment struct {
	BaseModel
	ItineraryID uuid.UUID     `gorm:"type:uuid;index"`
	Kind        SegmentKind   `gorm:"type:varchar(20);index"`
	Status      SegmentStatus `gorm:"type:varchar(20);default:'TENTATIVE'"`
	StartTime   time.Time
	EndTime     time.Time

	TravelerIDs pq.StringArray    `gorm:"type:text[]"`
	Source      string            `gorm:"type:varchar(20);default:'user'"`
	Metadata    map[string]string `gorm:"serializer:json"`

	// DependsOnID links this segment to the one it logistically depends
	// on; moving the target drags this segment along.
	DependsOnID *uuid.UUID `gorm:"type:uuid"`

	Location Location `gorm:"embedded;embeddedPrefix:location_"`

	Flight   *FlightDetails   `gorm:"serializer:json"`
	Hotel    *HotelDetails    `gorm:"serializer:json"`
	Meeting  *MeetingDetails  `gorm:"serializer:json"`
	Activity *ActivityDetails `gorm:"serializer:json"`
	Transfer *TransferDetails `gorm:"serializer:json"`
	Custom   *CustomDetails   `gorm:"serializer:json"`
}

// EffectiveLocation resolves the segment's location for identity
// comparisons, falling back from the shared field to the variant payload.
func (s *Segment) EffectiveLocation() Location {
	if !s.Location.IsZero() {
		return s.Location
	}
	switch s.Kind {
	case SegmentKindFlight:
		if s.Flight != nil {
			return Location{Code: s.Flight.Destination}
		}
	case SegmentKindHotel:
		if s.Hotel != nil {
			return s.Hotel.Location
		}
	case SegmentKindMeeting:
		if s.Meeting != nil {
			return s.Meeting.Location
		}
	case SegmentKindActivity:
		if s.Activity != nil {
			return s.Activity.Location
		}
	case SegmentKindTransfer:
		if s.Transfer != nil {
			return s.Transfer.Dropoff
		}
	case SegmentKindCustom:
		if s.Custom != nil {
			return s.Custom.Location
		}
	}
	return Location{}
}

// StayRange returns the date range used for hotel overlap checks:
// explicit check-in/check-out when present, else the segment instants.
func (s *Segment) StayRange() (time.Time, time.Time) {
	if s.Hotel != nil && s.Hotel.CheckIn != nil && s.Hotel.CheckOut != nil {
		return *s.Hotel.CheckIn, *s.Hotel.CheckOut
	}
	return s.StartTime, s.EndTime
}

// DisplayName is a short human label used in rule messages and CLI output.
func (s *Segment) DisplayName() string {
	switch s.Kind {
	case SegmentKindFlight:
		if s.Flight != nil && s.Flight.FlightNumber != "" {
			return s.Flight.Airline + " " + s.Flight.FlightNumber
		}
	case SegmentKindHotel:
		if s.Hotel != nil && s.Hotel.Property != "" {
			return s.Hotel.Property
		}
	case SegmentKindMeeting:
		if s.Meeting != nil && s.Meeting.Title != "" {
			return s.Meeting.Title
		}
	case SegmentKindActivity:
		if s.Activity != nil && s.Activity.Name != "" {
			return s.Activity.Name
		}
	case SegmentKindTransfer:
		if s.Transfer != nil && s.Transfer.TransferType != "" {
			return s.Transfer.TransferType
		}
	case SegmentKindCustom:
		if s.Custom != nil && s.Custom.Title != "" {
			return s.Custom.Title
		}
	}
	return string(s.Kind) + " " + s.ID.String()
}
