package submit_booking

import (
	submitBooking "github.com/pawcare/PC-BookingWizard/internal/usecase/submit_booking"
)

// SubmitBookingResponse подтверждение созданной записи
type SubmitBookingResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"` // scheduled | pending_schedule
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
	Step          string  `json:"step"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		AppointmentID: result.AppointmentID,
		Status:        result.Status,
		Date:          result.Date,
		StartTime:     result.StartTime,
		Step:          result.Step,
	}
}
