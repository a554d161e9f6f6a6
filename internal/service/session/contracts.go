package session

import (
	"context"
	"time"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Service, error)
}

// PetsRepository интерфейс репозитория питомцев
type PetsRepository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Pet, error)
}

// ScheduleClient интерфейс клиента ScheduleService: запрос слотов
// используется координатором доступности, создание записи —
// координатором отправки
type ScheduleClient interface {
	GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*scheduleservice.AvailabilityResponse, error)
	CreateAppointment(ctx context.Context, appointment *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
