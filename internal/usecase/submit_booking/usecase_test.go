package submit_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
	"github.com/pawcare/PC-BookingWizard/internal/service/pricing"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
	"github.com/pawcare/PC-BookingWizard/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeCatalog struct{ services []*domain.Service }

func (f *fakeCatalog) ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Service, error) {
	return f.services, nil
}

type fakePets struct{ pets []*domain.Pet }

func (f *fakePets) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Pet, error) {
	return f.pets, nil
}

type fakeSchedule struct {
	confirmation *scheduleservice.AppointmentConfirmation
	createErr    error
	createCalls  int
}

func (f *fakeSchedule) GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*scheduleservice.AvailabilityResponse, error) {
	return &scheduleservice.AvailabilityResponse{}, nil
}

func (f *fakeSchedule) CreateAppointment(ctx context.Context, req *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error) {
	f.createCalls++
	return f.confirmation, f.createErr
}

func newManager(schedule *fakeSchedule) *session.Manager {
	return session.NewManager(
		&fakeCatalog{services: []*domain.Service{
			{ID: 1, ClinicID: 1, Name: "Checkup", DurationMinutes: 30, BasePrice: 45},
		}},
		&fakePets{pets: []*domain.Pet{{ID: 10, CustomerID: 7, Name: "Рекс", Species: "dog"}}},
		schedule,
		pricing.NewResolver(domain.SizeMedium),
		1,
		30*time.Minute,
		nopLogger{},
	)
}

// readySession сессия, заполненная до готовности к отправке
func readySession(t *testing.T, manager *session.Manager) *session.Session {
	t.Helper()

	sess, err := manager.Create(context.Background(), 7, nil)
	require.NoError(t, err)

	sess.ToggleService(1)
	sess.SetPet(10)
	sess.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	sess.SetTimeSlot("14:00")
	return sess
}

func TestUseCase_Execute(t *testing.T) {
	schedule := &fakeSchedule{
		confirmation: &scheduleservice.AppointmentConfirmation{
			ID:        42,
			Status:    "scheduled",
			Date:      ptr.Ptr("2026-09-10"),
			StartTime: ptr.Ptr("14:00"),
		},
	}
	manager := newManager(schedule)
	uc := NewUseCase(manager, nopLogger{})
	sess := readySession(t, manager)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: sess.ID(), CustomerID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.AppointmentID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "2026-09-10", *resp.Date)
	assert.Equal(t, string(domain.StepSuccess), resp.Step)

	// Мастер в терминальном success: повторная отправка отклоняется
	_, err = uc.Execute(context.Background(), &Request{SessionID: sess.ID(), CustomerID: 7})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1, schedule.createCalls)
}

func TestUseCase_Execute_IncompleteSelection(t *testing.T) {
	manager := newManager(&fakeSchedule{})
	uc := NewUseCase(manager, nopLogger{})

	sess, err := manager.Create(context.Background(), 7, nil)
	require.NoError(t, err)
	sess.ToggleService(1)

	_, err = uc.Execute(context.Background(), &Request{SessionID: sess.ID(), CustomerID: 7})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestUseCase_Execute_SessionErrors(t *testing.T) {
	manager := newManager(&fakeSchedule{})
	uc := NewUseCase(manager, nopLogger{})
	sess := readySession(t, manager)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "missing", CustomerID: 7})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = uc.Execute(context.Background(), &Request{SessionID: sess.ID(), CustomerID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = uc.Execute(context.Background(), &Request{CustomerID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_TransportErrors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		want      error
	}{
		{"validation rejected", scheduleservice.ErrValidationRejected, ErrValidationRejected},
		{"service unavailable", scheduleservice.ErrUnavailable, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newManager(&fakeSchedule{createErr: tt.clientErr})
			uc := NewUseCase(manager, nopLogger{})
			sess := readySession(t, manager)

			_, err := uc.Execute(context.Background(), &Request{SessionID: sess.ID(), CustomerID: 7})
			assert.ErrorIs(t, err, tt.want)

			// Выбор сохранен, сессия не завершена: повтор возможен
			snap := sess.Snapshot()
			assert.Equal(t, domain.StepService, snap.Step)
			assert.Equal(t, []int64{1}, snap.Selection.ServiceIDs)
		})
	}
}
