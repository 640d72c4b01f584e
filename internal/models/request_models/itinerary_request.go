package request_models

import "time"

type CreateItineraryRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Travelers   []struct {
		FullName string `json:"full_name"`
		Email    string `json:"email,omitempty"`
	} `json:"travelers,omitempty"`
}

type ImportRequest struct {
	ItineraryID string `json:"itinerary_id" binding:"required"`
	Raw         string `json:"raw" binding:"required"`
	FormatHint  string `json:"format_hint,omitempty"`
}

type DesignerChatRequest struct {
	SessionID   string `json:"session_id,omitempty"`
	ItineraryID string `json:"itinerary_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
}
