package models

// ErrorDetail provides a structured way to represent an error across
// transports.
type ErrorDetail struct {
	// Code is an application-specific error code.
	Code int `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Data holds additional context about the error, like the file path or
	// the operation that failed.
	Data interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps an ErrorDetail for HTTP responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
