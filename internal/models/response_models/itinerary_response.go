package response_models

import (
	"wayfare/internal/models/db_models"
	"wayfare/pkg/utils"
)

type ItineraryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Status      string `json:"status"`
	Version     int    `json:"version"`
}

type TravelerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

type SegmentResponse struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Status      string            `json:"status"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Name        string            `json:"name"`
	Source      string            `json:"source,omitempty"`
	DependsOnID string            `json:"depends_on_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`

	Location *db_models.Location `json:"location,omitempty"`

	Flight   *db_models.FlightDetails   `json:"flight,omitempty"`
	Hotel    *db_models.HotelDetails    `json:"hotel,omitempty"`
	Meeting  *db_models.MeetingDetails  `json:"meeting,omitempty"`
	Activity *db_models.ActivityDetails `json:"activity,omitempty"`
	Transfer *db_models.TransferDetails `json:"transfer,omitempty"`
	Custom   *db_models.CustomDetails   `json:"custom,omitempty"`
}

type ItineraryDetailResponse struct {
	ItineraryResponse
	Travelers []TravelerResponse `json:"travelers"`
	Segments  []SegmentResponse  `json:"segments"`
}

func BuildItineraryResponse(it *db_models.Itinerary) ItineraryResponse {
	out := ItineraryResponse{
		ID:          it.ID.String(),
		Title:       it.Title,
		Description: it.Description,
		Status:      string(it.Status),
		Version:     it.Version,
	}
	if it.StartDate != nil {
		out.StartDate = utils.FormatRFC3339(*it.StartDate)
	}
	if it.EndDate != nil {
		out.EndDate = utils.FormatRFC3339(*it.EndDate)
	}
	return out
}

func BuildItineraryDetailResponse(it *db_models.Itinerary) *ItineraryDetailResponse {
	out := &ItineraryDetailResponse{
		ItineraryResponse: BuildItineraryResponse(it),
		Travelers:         make([]TravelerResponse, 0, len(it.Travelers)),
		Segments:          make([]SegmentResponse, 0, len(it.Segments)),
	}
	for _, t := range it.Travelers {
		out.Travelers = append(out.Travelers, TravelerResponse{
			ID:       t.ID.String(),
			FullName: t.FullName,
			Email:    t.Email,
		})
	}
	for i := range it.Segments {
		out.Segments = append(out.Segments, BuildSegmentResponse(&it.Segments[i]))
	}
	return out
}

func BuildSegmentResponse(s *db_models.Segment) SegmentResponse {
	out := SegmentResponse{
		ID:        s.ID.String(),
		Kind:      string(s.Kind),
		Status:    string(s.Status),
		StartTime: utils.FormatRFC3339(s.StartTime),
		EndTime:   utils.FormatRFC3339(s.EndTime),
		Name:      s.DisplayName(),
		Source:    s.Source,
		Metadata:  s.Metadata,
		Flight:    s.Flight,
		Hotel:     s.Hotel,
		Meeting:   s.Meeting,
		Activity:  s.Activity,
		Transfer:  s.Transfer,
		Custom:    s.Custom,
	}
	if s.DependsOnID != nil {
		out.DependsOnID = s.DependsOnID.String()
	}
	if loc := s.EffectiveLocation(); !loc.IsZero() {
		out.Location = &loc
	}
	return out
}
