package response_models

import "wayfare/internal/models/db_models"

type PlaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
}

func BuildPlaceResponse(p *db_models.PlaceEmbedding) PlaceResponse {
	return PlaceResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Code:        p.Code,
		Country:     p.Country,
		Description: p.Description,
	}
}
