package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx API response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid query parameters"`
	ErrorDetails string    `json:"error,omitempty" example:"aggregation must be one of Daily, Weekly, Monthly, Quarterly"`
	Timestamp    time.Time `json:"timestamp" example:"2024-04-02T15:04:05Z"`
}

// Error implements the error interface so an ErrorResponse can travel through gin's c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err is optional; when present its message becomes ErrorDetails.
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
