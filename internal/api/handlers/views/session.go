// Package views содержит общие HTTP модели состояния сессии мастера.
// Используется всеми handlers, возвращающими снимок сессии после мутации.
package views

import (
	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/service/availability"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	DurationMinutes int                `json:"durationMinutes"`
	BasePrice       float64            `json:"basePrice"`
	SizePricing     map[string]float64 `json:"sizePricing,omitempty"`
}

// PetResponse питомец клиента
type PetResponse struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Species  string   `json:"species"`
	Breed    string   `json:"breed"`
	WeightKg *float64 `json:"weightKg,omitempty"`
}

// SelectionResponse текущее состояние выбора
type SelectionResponse struct {
	ServiceIDs         []int64 `json:"serviceIds"`
	PetID              *int64  `json:"petId,omitempty"`
	Date               *string `json:"date,omitempty"`
	TimeSlot           string  `json:"timeSlot,omitempty"`
	PreferredDateStart *string `json:"preferredDateStart,omitempty"`
	PreferredDateEnd   *string `json:"preferredDateEnd,omitempty"`
	PreferredTimeOfDay string  `json:"preferredTimeOfDay"`
	Notes              string  `json:"notes,omitempty"`
}

// SummaryResponse производные агрегаты выбора
type SummaryResponse struct {
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalPrice           float64 `json:"totalPrice"`
	EndTime              string  `json:"endTime,omitempty"`
}

// CartLineResponse зафиксированная строка корзины
type CartLineResponse struct {
	ServiceID   int64   `json:"serviceId"`
	PetID       int64   `json:"petId"`
	VariantName string  `json:"variantName,omitempty"`
	ServiceName string  `json:"serviceName"`
	Price       float64 `json:"price"`
}

// SlotResponse один временной слот
type SlotResponse struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// AvailabilityResponse опубликованное состояние запроса слотов.
// Slots присутствуют только в состоянии ready.
type AvailabilityResponse struct {
	State string         `json:"state"` // idle | pending | ready | failed
	Date  string         `json:"date,omitempty"`
	Slots []SlotResponse `json:"slots,omitempty"`
}

// ConfirmationResponse подтверждение созданной записи
type ConfirmationResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"`
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
}

// SessionResponse полное состояние сессии мастера
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Step      string `json:"step"`
	Furthest  string `json:"furthestStep"`

	Selection SelectionResponse  `json:"selection"`
	Summary   SummaryResponse    `json:"summary"`
	CartLines []CartLineResponse `json:"cartLines"`

	Services []ServiceResponse `json:"services"`
	Pets     []PetResponse     `json:"pets"`

	Availability       AvailabilityResponse  `json:"availability"`
	SubmissionInFlight bool                  `json:"submissionInFlight"`
	Confirmation       *ConfirmationResponse `json:"confirmation,omitempty"`
}

// FromSnapshot конвертирует снимок сессии в HTTP модель
func FromSnapshot(snap session.Snapshot) *SessionResponse {
	services := make([]ServiceResponse, 0, len(snap.Services))
	for _, svc := range snap.Services {
		services = append(services, fromService(svc))
	}

	pets := make([]PetResponse, 0, len(snap.Pets))
	for _, pet := range snap.Pets {
		pets = append(pets, PetResponse{
			ID:       pet.ID,
			Name:     pet.Name,
			Species:  pet.Species,
			Breed:    pet.Breed,
			WeightKg: pet.WeightKg,
		})
	}

	lines := make([]CartLineResponse, 0, len(snap.CartLines))
	for _, line := range snap.CartLines {
		lines = append(lines, CartLineResponse{
			ServiceID:   line.ServiceID,
			PetID:       line.PetID,
			VariantName: line.VariantName,
			ServiceName: line.ServiceName,
			Price:       line.Price,
		})
	}

	resp := &SessionResponse{
		SessionID:          snap.ID,
		Step:               string(snap.Step),
		Furthest:           string(snap.Furthest),
		Selection:          fromSelection(snap.Selection),
		Summary:            FromSummary(snap.Summary),
		CartLines:          lines,
		Services:           services,
		Pets:               pets,
		Availability:       fromAvailability(snap.Availability),
		SubmissionInFlight: snap.SubmissionInFlight,
	}

	if snap.Confirmation != nil {
		resp.Confirmation = &ConfirmationResponse{
			AppointmentID: snap.Confirmation.ID,
			Status:        snap.Confirmation.Status,
			Date:          snap.Confirmation.Date,
			StartTime:     snap.Confirmation.StartTime,
		}
	}

	return resp
}

// FromSummary конвертирует агрегаты в HTTP модель
func FromSummary(summary session.Summary) SummaryResponse {
	return SummaryResponse{
		TotalDurationMinutes: summary.TotalDurationMinutes,
		TotalPrice:           summary.TotalPrice,
		EndTime:              summary.EndTime.String(),
	}
}

func fromService(svc *domain.Service) ServiceResponse {
	resp := ServiceResponse{
		ID:              svc.ID,
		Name:            svc.Name,
		DurationMinutes: svc.DurationMinutes,
		BasePrice:       svc.BasePrice,
	}
	if svc.HasSizePricing() {
		resp.SizePricing = make(map[string]float64, len(svc.SizePricing))
		for size, price := range svc.SizePricing {
			resp.SizePricing[string(size)] = price
		}
	}
	return resp
}

func fromSelection(sel domain.Selection) SelectionResponse {
	resp := SelectionResponse{
		ServiceIDs:         sel.ServiceIDs,
		PetID:              sel.PetID,
		TimeSlot:           sel.TimeSlot.String(),
		PreferredTimeOfDay: string(sel.PreferredTimeOfDay),
		Notes:              sel.Notes,
	}
	if resp.ServiceIDs == nil {
		resp.ServiceIDs = []int64{}
	}
	if sel.Date != nil {
		date := sel.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	if sel.PreferredDateStart != nil {
		start := sel.PreferredDateStart.Format(domain.DateFormat)
		resp.PreferredDateStart = &start
	}
	if sel.PreferredDateEnd != nil {
		end := sel.PreferredDateEnd.Format(domain.DateFormat)
		resp.PreferredDateEnd = &end
	}
	return resp
}

func fromAvailability(snap availability.Snapshot) AvailabilityResponse {
	resp := AvailabilityResponse{State: string(snap.State)}
	if snap.State == availability.StateIdle {
		return resp
	}

	resp.Date = snap.Key.Date
	if snap.State == availability.StateReady {
		resp.Slots = make([]SlotResponse, 0, len(snap.Slots))
		for _, slot := range snap.Slots {
			resp.Slots = append(resp.Slots, SlotResponse{
				Time:      slot.Time.String(),
				Available: slot.Available,
			})
		}
	}
	return resp
}
