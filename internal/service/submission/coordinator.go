package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
)

// AppointmentClient интерфейс клиента для создания записи
type AppointmentClient interface {
	CreateAppointment(ctx context.Context, appointment *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Coordinator координатор отправки бронирования одной сессии.
// Гарантирует не более одной отправки в полете и отменяемость:
// отмена видна синхронно, а ответ отмененной попытки отбрасывается.
type Coordinator struct {
	client AppointmentClient
	log    Logger

	mu        sync.Mutex
	inFlight  bool
	attemptID string
	cancelFn  context.CancelFunc
}

// NewCoordinator создает координатор для одной сессии
func NewCoordinator(client AppointmentClient, log Logger) *Coordinator {
	return &Coordinator{client: client, log: log}
}

// InFlight возвращает true, если отправка сейчас в полете
func (c *Coordinator) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Submit отправляет запрос на создание записи.
// Вторая отправка при незавершенной первой немедленно завершается
// ErrInProgress без сетевого вызова. Каждый успешный вызов создает
// ровно одну запись на сервере; защита от повтора после успеха —
// терминальный шаг мастера у вызывающей стороны.
func (c *Coordinator) Submit(ctx context.Context, req *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.log.Warn("Submit: rejected, another submission is in flight")
		return nil, ErrInProgress
	}

	attemptID := uuid.NewString()
	submitCtx, cancel := context.WithCancel(ctx)
	c.inFlight = true
	c.attemptID = attemptID
	c.cancelFn = cancel
	c.mu.Unlock()

	c.log.Info("Submit: attempt %s started (customer=%d, pet=%d, services=%d)",
		attemptID, req.CustomerID, req.PetID, len(req.ServiceIDs))

	confirmation, err := c.client.CreateAppointment(submitCtx, req)

	c.mu.Lock()
	current := c.attemptID == attemptID
	if current {
		c.inFlight = false
		c.attemptID = ""
		c.cancelFn = nil
	}
	c.mu.Unlock()
	cancel()

	// Ответ попытки, отмененной во время полета, отбрасывается —
	// даже если транспорт успел вернуть успех
	if !current {
		c.log.Info("Submit: attempt %s resolved after cancellation, result dropped", attemptID)
		return nil, ErrCancelled
	}

	if err != nil {
		return nil, c.classify(attemptID, err)
	}

	c.log.Info("Submit: attempt %s succeeded, appointment id=%d", attemptID, confirmation.ID)
	return confirmation, nil
}

// Cancel отменяет отправку в полете. Флаг inFlight сбрасывается
// синхронно, сетевой запрос прерывается через контекст; ожидающий
// Submit завершится ErrCancelled. Возвращает false, если отменять нечего.
func (c *Coordinator) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.inFlight {
		return false
	}

	c.log.Info("Submit: attempt %s cancelled", c.attemptID)
	c.inFlight = false
	c.attemptID = ""
	if c.cancelFn != nil {
		c.cancelFn()
		c.cancelFn = nil
	}
	return true
}

// classify переводит ошибку транспорта в таксономию отправки
func (c *Coordinator) classify(attemptID string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		c.log.Info("Submit: attempt %s cancelled", attemptID)
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	case errors.Is(err, scheduleservice.ErrValidationRejected):
		c.log.Warn("Submit: attempt %s rejected by validation: %v", attemptID, err)
		return fmt.Errorf("%w: %v", ErrValidationRejected, err)
	case errors.Is(err, scheduleservice.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		c.log.Error("Submit: attempt %s failed with network error: %v", attemptID, err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	default:
		c.log.Error("Submit: attempt %s failed: %v", attemptID, err)
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}
}
