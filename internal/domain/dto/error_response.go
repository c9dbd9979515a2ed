package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Invalid date range"`
	ErrorDetails string    `json:"error,omitempty" example:"end_date: must not be before start_date"`
	RequestID    string    `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements error so the response can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
