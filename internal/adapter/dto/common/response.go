package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"SUMMARY_NOT_FOUND"`
	Message string `json:"message" example:"Summary not found"`
	Info    string `json:"info,omitempty"`
}

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message" example:"Email sent successfully"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status      string            `json:"status" example:"ok"`
	Environment string            `json:"environment" example:"development"`
	Checks      map[string]string `json:"checks,omitempty"`
}
