package get_available_slots

import (
	"github.com/pawcare/PC-BookingWizard/internal/domain"
	queryAvailability "github.com/pawcare/PC-BookingWizard/internal/usecase/query_availability"
)

// SlotResponse один временной слот
type SlotResponse struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse ответ со списком слотов на дату.
// Недоступные слоты присутствуют с available=false.
type AvailableSlotsResponse struct {
	Date            string         `json:"date"` // "YYYY-MM-DD"
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(result *queryAvailability.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:            result.Date.Format(domain.DateFormat),
		DurationMinutes: result.DurationMinutes,
		Slots:           slots,
	}
}
