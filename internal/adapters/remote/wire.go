package remote

import "go.trai.ch/nourish/internal/core/domain"

const (
	pathDaily  = "nutrition/daily"
	pathWeekly = "nutrition/weekly"
	pathFood   = "food"

	headerRequestID   = "X-Request-ID"
	headerIdempotency = "Idempotency-Key"
)

// dailyRequest carries only currentDate; the server derives the day from it.
type dailyRequest struct {
	CurrentDate     string                 `json:"currentDate"`
	UserInformation domain.UserInformation `json:"userInformationDto"`
}

// weeklyRequest carries only startDate; the week end is implied.
type weeklyRequest struct {
	StartDate       string                 `json:"startDate"`
	UserInformation domain.UserInformation `json:"userInformationDto"`
}

type deleteRequest struct {
	ID int `json:"id"`
}
