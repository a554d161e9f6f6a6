package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawcare/PC-BookingWizard/internal/service/session"
	"github.com/pawcare/PC-BookingWizard/internal/service/submission"
)

// UseCase use case отправки собранного бронирования
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

// Execute сериализует текущий выбор в один запрос и отправляет его.
// Не более одной отправки в полете на сессию; при ошибке выбор
// сохраняется без изменений и пользователь может повторить отправку,
// при успехе мастер переходит в терминальный success.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: session=%s, customer=%d", req.SessionID, req.CustomerID)

	// 1. Валидация входных данных
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// 2. Получаем сессию
	sess, err := uc.sessions.Get(req.SessionID, req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			uc.logger.Warn("SubmitBooking: session %s not found", req.SessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, session.ErrAccessDenied):
			return nil, ErrAccessDenied
		default:
			uc.logger.Error("SubmitBooking: failed to get session %s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to get session: %v", ErrUnknown, err)
		}
	}

	// 3. Собираем запрос из текущего выбора
	appointmentReq, err := sess.BuildSubmissionRequest()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionCompleted):
			uc.logger.Warn("SubmitBooking: session %s already completed", req.SessionID)
			return nil, ErrAlreadyCompleted
		case errors.Is(err, session.ErrIncompleteSelection):
			uc.logger.Warn("SubmitBooking: session %s selection incomplete", req.SessionID)
			return nil, ErrIncompleteSelection
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
		}
	}

	// 4. Отправляем через координатор (не более одной отправки в полете)
	confirmation, err := sess.Submission().Submit(ctx, appointmentReq)
	if err != nil {
		switch {
		case errors.Is(err, submission.ErrInProgress):
			uc.logger.Warn("SubmitBooking: session %s submission already in progress", req.SessionID)
			return nil, ErrSubmissionInProgress
		case errors.Is(err, submission.ErrCancelled):
			uc.logger.Info("SubmitBooking: session %s submission cancelled", req.SessionID)
			return nil, ErrCancelled
		case errors.Is(err, submission.ErrValidationRejected):
			uc.logger.Warn("SubmitBooking: session %s rejected by validation: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrValidationRejected, err)
		case errors.Is(err, submission.ErrNetwork):
			uc.logger.Error("SubmitBooking: session %s network error: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		default:
			uc.logger.Error("SubmitBooking: session %s failed: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: %v", ErrUnknown, err)
		}
	}

	// 5. Переводим мастер в терминальный success
	sess.CompleteSuccess(confirmation)

	uc.logger.Info("SubmitBooking: session %s succeeded, appointment id=%d status=%s",
		req.SessionID, confirmation.ID, confirmation.Status)

	return &Response{
		AppointmentID: confirmation.ID,
		Status:        confirmation.Status,
		Date:          confirmation.Date,
		StartTime:     confirmation.StartTime,
		Step:          string(sess.Snapshot().Step),
	}, nil
}
