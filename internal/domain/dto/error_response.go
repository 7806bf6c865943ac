package dto

import "time"

// ErrorResponse is the standardized JSON error envelope returned by every
// API failure path.
//
// Fields:
//   - Message: human-readable summary safe to show to clients.
//   - ErrorDetails: underlying error text, when one exists.
//   - Timestamp: when the error response was built.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid year parameter"`
	ErrorDetails string    `json:"error,omitempty" example:"strconv.Atoi: parsing \"x\": invalid syntax"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel as a
// regular error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
