package availability

import (
	"context"
	"time"

	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
)

// ScheduleClient интерфейс клиента для ScheduleService
type ScheduleClient interface {
	GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*scheduleservice.AvailabilityResponse, error)
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
