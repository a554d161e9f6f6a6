package set_schedule

// SetScheduleRequest запрос на изменение расписания бронирования.
// Все поля опциональны, применяются только присутствующие. Режим
// точного слота (date + timeSlot) и режим окна предпочтений
// (preferredDateStart/End + preferredTimeOfDay) независимы и могут
// сосуществовать в одном выборе.
type SetScheduleRequest struct {
	Date     *string `json:"date,omitempty"`     // "YYYY-MM-DD"
	TimeSlot *string `json:"timeSlot,omitempty"` // "HH:MM"

	PreferredDateStart *string `json:"preferredDateStart,omitempty"` // "YYYY-MM-DD"
	PreferredDateEnd   *string `json:"preferredDateEnd,omitempty"`   // "YYYY-MM-DD"
	PreferredTimeOfDay *string `json:"preferredTimeOfDay,omitempty"` // morning | afternoon | any

	Notes *string `json:"notes,omitempty"`
}
