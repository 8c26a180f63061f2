package dto

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a standard success response with a message
type SuccessResponse struct {
	Message string `json:"message"`
}
