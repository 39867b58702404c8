package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error titles used in API responses
const (
	ErrTitleValidation  = "Validation Error"
	ErrTitleNotFound    = "Not Found"
	ErrTitleUnavailable = "Service Unavailable"
	ErrTitleInternal    = "Error"
)

// Health states reported by the status endpoint
const (
	HealthOK           = "ok"
	HealthConnected    = "connected"
	HealthDisconnected = "disconnected"
	HealthError        = "error"
)

// StatusResponse is the tri-state health summary returned by GET /api/status
type StatusResponse struct {
	Backend  string `json:"backend"`
	Database string `json:"database"`
	Gemini   string `json:"gemini"`
}

// Healthy reports whether every subsystem check passed
func (s StatusResponse) Healthy() bool {
	return s.Backend == HealthOK && s.Database == HealthConnected && s.Gemini == HealthConnected
}
