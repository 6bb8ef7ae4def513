package models

type MessageResponse struct {
	Message string `json:"message" example:"Goal deleted successfully"`
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"Goal not found"`
}

type ProtectedResponse struct {
	Message string         `json:"message" example:"Welcome to a protected route!"`
	User    map[string]any `json:"user"`
}
