package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeAppointmentClient управляемый клиент создания записи
type fakeAppointmentClient struct {
	mu           sync.Mutex
	calls        int
	release      chan struct{}
	obeyContext  bool
	confirmation *scheduleservice.AppointmentConfirmation
	err          error
}

func (f *fakeAppointmentClient) CreateAppointment(ctx context.Context, req *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	obey := f.obeyContext
	conf, err := f.confirmation, f.err
	f.mu.Unlock()

	if release != nil {
		if obey {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		} else {
			<-release
		}
	}
	return conf, err
}

func (f *fakeAppointmentClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testRequest() *scheduleservice.CreateAppointmentRequest {
	return &scheduleservice.CreateAppointmentRequest{
		ClinicID:   1,
		CustomerID: 7,
		PetID:      3,
		ServiceIDs: []int64{1, 2},
	}
}

func TestCoordinator_Submit(t *testing.T) {
	client := &fakeAppointmentClient{
		confirmation: &scheduleservice.AppointmentConfirmation{ID: 42, Status: "scheduled"},
	}
	c := NewCoordinator(client, nopLogger{})

	conf, err := c.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), conf.ID)
	assert.False(t, c.InFlight())
}

func TestCoordinator_AtMostOneInFlight(t *testing.T) {
	release := make(chan struct{})
	client := &fakeAppointmentClient{
		release:      release,
		obeyContext:  true,
		confirmation: &scheduleservice.AppointmentConfirmation{ID: 42, Status: "scheduled"},
	}
	c := NewCoordinator(client, nopLogger{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), testRequest())
		firstDone <- err
	}()

	// Дожидаемся, пока первая отправка займет слот
	require.Eventually(t, c.InFlight, time.Second, 5*time.Millisecond)

	// Вторая отправка отклоняется без сетевого вызова
	_, err := c.Submit(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInProgress)
	assert.Equal(t, 1, client.callCount())

	close(release)
	require.NoError(t, <-firstDone)
}

func TestCoordinator_CancelInFlight(t *testing.T) {
	release := make(chan struct{})
	client := &fakeAppointmentClient{
		release:     release,
		obeyContext: true,
	}
	c := NewCoordinator(client, nopLogger{})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), testRequest())
		done <- err
	}()
	require.Eventually(t, c.InFlight, time.Second, 5*time.Millisecond)

	// Отмена видна синхронно, до завершения сетевого запроса
	assert.True(t, c.Cancel())
	assert.False(t, c.InFlight())

	err := <-done
	assert.ErrorIs(t, err, ErrCancelled)

	// Повторная отправка после отмены возможна
	client.mu.Lock()
	client.release = nil
	client.confirmation = &scheduleservice.AppointmentConfirmation{ID: 43, Status: "scheduled"}
	client.mu.Unlock()

	conf, err := c.Submit(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(43), conf.ID)
}

func TestCoordinator_CancelledResultDropped(t *testing.T) {
	release := make(chan struct{})
	// Клиент игнорирует контекст и возвращает успех после отмены
	client := &fakeAppointmentClient{
		release:      release,
		confirmation: &scheduleservice.AppointmentConfirmation{ID: 42, Status: "scheduled"},
	}
	c := NewCoordinator(client, nopLogger{})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), testRequest())
		done <- err
	}()
	require.Eventually(t, c.InFlight, time.Second, 5*time.Millisecond)

	require.True(t, c.Cancel())

	// Транспорт вернул успех, но попытка уже отменена — результат
	// отброшен, бронирование не считается созданным
	close(release)
	err := <-done
	assert.ErrorIs(t, err, ErrCancelled)
	assert.False(t, c.InFlight())
}

func TestCoordinator_CancelWithoutSubmission(t *testing.T) {
	c := NewCoordinator(&fakeAppointmentClient{}, nopLogger{})
	assert.False(t, c.Cancel())
}

func TestCoordinator_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		want      error
	}{
		{"validation rejected", scheduleservice.ErrValidationRejected, ErrValidationRejected},
		{"service unavailable", scheduleservice.ErrUnavailable, ErrNetwork},
		{"deadline exceeded", context.DeadlineExceeded, ErrNetwork},
		{"unknown error", errors.New("boom"), ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeAppointmentClient{err: tt.clientErr}
			c := NewCoordinator(client, nopLogger{})

			_, err := c.Submit(context.Background(), testRequest())
			assert.ErrorIs(t, err, tt.want)

			// Ошибка освобождает слот для повторной отправки
			assert.False(t, c.InFlight())
		})
	}
}
