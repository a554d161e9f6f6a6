package query_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/service/availability"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

// UseCase use case запроса доступных слотов для сессии мастера
type UseCase struct {
	sessions SessionManager
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionManager, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		logger:   logger,
	}
}

// Execute выполняет запрос доступных слотов.
// Ключ запроса (клиника, дата, суммарная длительность) вычисляется из
// актуального состояния выбора: мутация, изменившая длительность до
// этого вызова, гарантированно учтена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QueryAvailability: session=%s, customer=%d, date=%s",
		req.SessionID, req.CustomerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QueryAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сессию
	sess, err := uc.sessions.Get(req.SessionID, req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			uc.logger.Warn("QueryAvailability: session %s not found", req.SessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, session.ErrAccessDenied):
			return nil, ErrAccessDenied
		default:
			uc.logger.Error("QueryAvailability: failed to get session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}
	}

	// 3. Запускаем запрос слотов и ждем результат
	slots, err := sess.QuerySlots(ctx, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrIncompleteSelection):
			uc.logger.Warn("QueryAvailability: session %s has no services selected", req.SessionID)
			return nil, ErrNoServicesSelected
		case errors.Is(err, availability.ErrSuperseded):
			uc.logger.Info("QueryAvailability: query for session %s superseded", req.SessionID)
			return nil, ErrSuperseded
		case errors.Is(err, availability.ErrQueryFailed):
			uc.logger.Warn("QueryAvailability: query failed for session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			uc.logger.Error("QueryAvailability: unexpected error for session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{Time: s.Time, Available: s.Available})
	}

	duration := sess.Summary().TotalDurationMinutes
	uc.logger.Info("QueryAvailability: session=%s date=%s duration=%d slots=%d",
		req.SessionID, req.Date.Format(domain.DateFormat), duration, len(result))

	return &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           result,
	}, nil
}
