package request_models

type CreatePlaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Country     string `json:"country,omitempty"`
	Description string `json:"description,omitempty"`
}
