package scheduleservice

// SlotDTO один временной слот из ответа ScheduleService
type SlotDTO struct {
	Time      string `json:"time"`      // "HH:MM"
	Available bool   `json:"available"` // false — слот показывается, но недоступен
}

// AvailabilityResponse ответ на запрос доступных слотов
type AvailabilityResponse struct {
	ClinicID        int64     `json:"clinicId"`
	Date            string    `json:"date"` // "YYYY-MM-DD"
	DurationMinutes int       `json:"durationMinutes"`
	Slots           []SlotDTO `json:"slots"`
}

// CreateAppointmentRequest запрос на создание записи.
// Передается либо точная пара date+startTime, либо окно предпочтений.
type CreateAppointmentRequest struct {
	ClinicID   int64   `json:"clinicId"`
	CustomerID int64   `json:"customerId"`
	PetID      int64   `json:"petId"`
	ServiceIDs []int64 `json:"serviceIds"`

	Date      *string `json:"date,omitempty"`      // "YYYY-MM-DD"
	StartTime *string `json:"startTime,omitempty"` // "HH:MM"

	PreferredDateStart *string `json:"preferredDateStart,omitempty"`
	PreferredDateEnd   *string `json:"preferredDateEnd,omitempty"`
	PreferredTimeOfDay string  `json:"preferredTimeOfDay,omitempty"`

	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           float64 `json:"totalPrice"`
	Notes                string  `json:"notes,omitempty"`
}

// AppointmentConfirmation подтверждение созданной записи
type AppointmentConfirmation struct {
	ID        int64   `json:"id"`
	Status    string  `json:"status"` // "scheduled" | "pending_schedule"
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
}

// ErrorResponse модель ошибки от ScheduleService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
