package response_models

type LoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
}
