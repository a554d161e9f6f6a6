package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
	"github.com/pawcare/PC-BookingWizard/internal/service/availability"
	"github.com/pawcare/PC-BookingWizard/internal/service/pricing"
	"github.com/pawcare/PC-BookingWizard/internal/service/submission"
	"github.com/pawcare/PC-BookingWizard/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeCatalog struct {
	services []*domain.Service
	err      error
}

func (f *fakeCatalog) ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Service, error) {
	return f.services, f.err
}

type fakePets struct {
	pets []*domain.Pet
	err  error
}

func (f *fakePets) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Pet, error) {
	return f.pets, f.err
}

// fakeSchedule управляемый клиент: ненулевые release-каналы блокируют
// ответ до закрытия, чтобы тест успел вмешаться в запрос в полете
type fakeSchedule struct {
	mu            sync.Mutex
	slots         *scheduleservice.AvailabilityResponse
	slotsErr      error
	slotsRelease  chan struct{}
	confirmation  *scheduleservice.AppointmentConfirmation
	createErr     error
	createRelease chan struct{}
	lastCreate    *scheduleservice.CreateAppointmentRequest
}

func (f *fakeSchedule) GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*scheduleservice.AvailabilityResponse, error) {
	f.mu.Lock()
	release := f.slotsRelease
	resp, err := f.slots, f.slotsErr
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp, err
}

func (f *fakeSchedule) CreateAppointment(ctx context.Context, req *scheduleservice.CreateAppointmentRequest) (*scheduleservice.AppointmentConfirmation, error) {
	f.mu.Lock()
	f.lastCreate = req
	release := f.createRelease
	conf, err := f.confirmation, f.createErr
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return conf, err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func testCatalog() []*domain.Service {
	return []*domain.Service{
		{ID: 1, ClinicID: 1, Name: "Checkup", DurationMinutes: 30, BasePrice: 45},
		{ID: 2, ClinicID: 1, Name: "Nail trim", DurationMinutes: 15, BasePrice: 20},
		{
			ID: 3, ClinicID: 1, Name: "Grooming", DurationMinutes: 60, BasePrice: 50,
			SizePricing: map[domain.SizeCategory]float64{
				domain.SizeSmall: 40,
				domain.SizeLarge: 80,
			},
		},
	}
}

func testPets() []*domain.Pet {
	return []*domain.Pet{
		{ID: 10, CustomerID: 7, Name: "Рекс", Species: "dog", WeightKg: ptr.Ptr(32.0)},
		{ID: 11, CustomerID: 7, Name: "Муся", Species: "cat", WeightKg: ptr.Ptr(4.0)},
	}
}

func newTestManager(t *testing.T, schedule *fakeSchedule) (*Manager, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(
		&fakeCatalog{services: testCatalog()},
		&fakePets{pets: testPets()},
		schedule,
		pricing.NewResolver(domain.SizeMedium),
		1,
		30*time.Minute,
		nopLogger{},
	)
	m.timeProvider = clock
	return m, clock
}

func createSession(t *testing.T, m *Manager) *Session {
	t.Helper()
	sess, err := m.Create(context.Background(), 7, nil)
	require.NoError(t, err)
	return sess
}

func TestManager_Create(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})

	t.Run("empty selection starts at service step", func(t *testing.T) {
		sess := createSession(t, m)
		snap := sess.Snapshot()

		assert.Equal(t, domain.StepService, snap.Step)
		assert.Empty(t, snap.Selection.ServiceIDs)
		assert.Len(t, snap.Services, 3)
		assert.Len(t, snap.Pets, 2)
	})

	t.Run("deep link preselects service and skips to pet step", func(t *testing.T) {
		sess, err := m.Create(context.Background(), 7, ptr.Ptr(int64(3)))
		require.NoError(t, err)

		snap := sess.Snapshot()
		assert.Equal(t, domain.StepPet, snap.Step)
		assert.Equal(t, []int64{3}, snap.Selection.ServiceIDs)
	})

	t.Run("unknown preselected service rejected", func(t *testing.T) {
		_, err := m.Create(context.Background(), 7, ptr.Ptr(int64(999)))
		assert.ErrorIs(t, err, ErrServiceNotInCatalog)
	})
}

func TestManager_GetAccessControl(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	got, err := m.Get(sess.ID(), 7)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = m.Get(sess.ID(), 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = m.Get("missing", 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Destroy(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	require.NoError(t, m.Destroy(sess.ID(), 7))

	_, err := m.Get(sess.ID(), 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, m.Destroy(sess.ID(), 7), ErrSessionNotFound)
}

func TestManager_Sweep(t *testing.T) {
	m, clock := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	clock.advance(31 * time.Minute)
	m.sweep()

	_, err := m.Get(sess.ID(), 7)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSession_Summary(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	// Checkup 30м/$45 + Nail trim 15м/$20
	sess.ToggleService(1)
	sess.ToggleService(2)
	sess.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	sess.SetTimeSlot("14:00")

	summary := sess.Summary()
	assert.Equal(t, 45, summary.TotalDurationMinutes)
	assert.Equal(t, 65.0, summary.TotalPrice)
	assert.Equal(t, "14:45", summary.EndTime.String())
}

func TestSession_SummaryReflectsPetChange(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	// Grooming: $80 для крупного, $40 для мелкого
	sess.ToggleService(3)

	sess.SetPet(10) // лабрадор 32 кг
	assert.Equal(t, 80.0, sess.Summary().TotalPrice)

	sess.SetPet(11) // кошка 4 кг
	assert.Equal(t, 40.0, sess.Summary().TotalPrice)
}

func TestSession_ToggleService(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	// Неизвестная услуга игнорируется
	sess.ToggleService(999)
	assert.Empty(t, sess.Snapshot().Selection.ServiceIDs)

	sess.ToggleService(1)
	assert.Equal(t, []int64{1}, sess.Snapshot().Selection.ServiceIDs)
}

func TestSession_SetPetOwnership(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	// Чужой питомец не попадает в выбор
	sess.SetPet(999)
	assert.Nil(t, sess.Snapshot().Selection.PetID)

	sess.SetPet(10)
	require.NotNil(t, sess.Snapshot().Selection.PetID)
	assert.Equal(t, int64(10), *sess.Snapshot().Selection.PetID)
}

func TestSession_CartLinePriceFrozen(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	sess.ToggleService(3)
	sess.SetPet(10)
	sess.AddCartLine(3, "полный комплекс")

	lines := sess.Snapshot().CartLines
	require.Len(t, lines, 1)
	assert.Equal(t, 80.0, lines[0].Price)
	assert.Equal(t, "Grooming", lines[0].ServiceName)

	// Смена питомца не пересчитывает зафиксированную цену
	sess.SetPet(11)
	assert.Equal(t, 80.0, sess.Snapshot().CartLines[0].Price)

	// Дубликат ключа не задваивает строку
	sess.SetPet(10)
	sess.AddCartLine(3, "полный комплекс")
	assert.Len(t, sess.Snapshot().CartLines, 1)
}

func TestSession_MutationInvalidatesAvailability(t *testing.T) {
	schedule := &fakeSchedule{
		slots: &scheduleservice.AvailabilityResponse{
			Slots: []scheduleservice.SlotDTO{{Time: "10:00", Available: true}},
		},
	}
	m, _ := newTestManager(t, schedule)
	sess := createSession(t, m)

	sess.ToggleService(1)
	sess.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))

	slots, err := sess.QuerySlots(context.Background(), time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, availability.StateReady, sess.Snapshot().Availability.State)

	// Добавление услуги меняет суммарную длительность: готовый
	// результат со старым ключом сбрасывается
	sess.ToggleService(2)
	assert.Equal(t, availability.StateIdle, sess.Snapshot().Availability.State)
}

func TestSession_MutationSupersedesInFlightQuery(t *testing.T) {
	release := make(chan struct{})
	schedule := &fakeSchedule{
		slots: &scheduleservice.AvailabilityResponse{
			Slots: []scheduleservice.SlotDTO{{Time: "10:00", Available: true}},
		},
		slotsRelease: release,
	}
	m, _ := newTestManager(t, schedule)
	sess := createSession(t, m)

	sess.ToggleService(1)
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	sess.SetDate(date)

	done := make(chan error, 1)
	go func() {
		_, err := sess.QuerySlots(context.Background(), date)
		done <- err
	}()

	require.Eventually(t, func() bool {
		return sess.Snapshot().Availability.State == availability.StatePending
	}, time.Second, 5*time.Millisecond)

	// Мутация меняет суммарную длительность, пока ответ еще в полете:
	// запрос со старым ключом вытесняется, его результат не публикуется
	sess.ToggleService(2)

	close(release)
	assert.ErrorIs(t, <-done, availability.ErrSuperseded)
	assert.Equal(t, availability.StateIdle, sess.Snapshot().Availability.State)
}

func TestSession_QuerySlotsWithoutServices(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)

	_, err := sess.QuerySlots(context.Background(), time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestSession_BuildSubmissionRequest(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})

	t.Run("incomplete selection rejected", func(t *testing.T) {
		sess := createSession(t, m)
		sess.ToggleService(1)

		_, err := sess.BuildSubmissionRequest()
		assert.ErrorIs(t, err, ErrIncompleteSelection)
	})

	t.Run("exact slot mode", func(t *testing.T) {
		sess := createSession(t, m)
		sess.ToggleService(1)
		sess.ToggleService(2)
		sess.SetPet(10)
		sess.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
		sess.SetTimeSlot("14:00")
		sess.SetNotes("боится громких звуков")

		req, err := sess.BuildSubmissionRequest()
		require.NoError(t, err)

		assert.Equal(t, int64(1), req.ClinicID)
		assert.Equal(t, int64(7), req.CustomerID)
		assert.Equal(t, int64(10), req.PetID)
		assert.Equal(t, []int64{1, 2}, req.ServiceIDs)
		require.NotNil(t, req.Date)
		assert.Equal(t, "2026-09-10", *req.Date)
		require.NotNil(t, req.StartTime)
		assert.Equal(t, "14:00", *req.StartTime)
		assert.Equal(t, 45, req.TotalDurationMinutes)
		assert.Equal(t, 65.0, req.TotalPrice)
		assert.Equal(t, "боится громких звуков", req.Notes)
		assert.Nil(t, req.PreferredDateStart)
	})

	t.Run("preference mode", func(t *testing.T) {
		sess := createSession(t, m)
		sess.ToggleService(1)
		sess.SetPet(10)
		sess.SetPreference(
			time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			domain.TimeOfDayMorning,
		)

		req, err := sess.BuildSubmissionRequest()
		require.NoError(t, err)

		assert.Nil(t, req.Date)
		require.NotNil(t, req.PreferredDateStart)
		assert.Equal(t, "2026-09-05", *req.PreferredDateStart)
		assert.Equal(t, "2026-09-08", *req.PreferredDateEnd)
		assert.Equal(t, "morning", req.PreferredTimeOfDay)
	})
}

func TestSession_CancelMidSubmitKeepsConfirmStep(t *testing.T) {
	release := make(chan struct{})
	schedule := &fakeSchedule{
		confirmation:  &scheduleservice.AppointmentConfirmation{ID: 42, Status: "scheduled"},
		createRelease: release,
	}
	m, _ := newTestManager(t, schedule)
	sess := createSession(t, m)

	sess.ToggleService(1)
	sess.SetPet(10)
	sess.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	sess.SetTimeSlot("14:00")
	sess.Advance()
	sess.Advance()
	sess.Advance()
	require.Equal(t, domain.StepConfirm, sess.Snapshot().Step)

	req, err := sess.BuildSubmissionRequest()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := sess.Submission().Submit(context.Background(), req)
		done <- err
	}()
	require.Eventually(t, sess.Submission().InFlight, time.Second, 5*time.Millisecond)

	require.True(t, sess.Submission().Cancel())
	close(release)
	assert.ErrorIs(t, <-done, submission.ErrCancelled)

	// Отмена не трогает мастер: шаг confirm, выбор цел, отправка свободна
	snap := sess.Snapshot()
	assert.Equal(t, domain.StepConfirm, snap.Step)
	assert.Equal(t, []int64{1}, snap.Selection.ServiceIDs)
	require.NotNil(t, snap.Selection.PetID)
	assert.Equal(t, int64(10), *snap.Selection.PetID)
	assert.False(t, snap.SubmissionInFlight)

	// Повторная отправка после отмены проходит до конца
	req2, err := sess.BuildSubmissionRequest()
	require.NoError(t, err)
	conf, err := sess.Submission().Submit(context.Background(), req2)
	require.NoError(t, err)
	sess.CompleteSuccess(conf)
	assert.Equal(t, domain.StepSuccess, sess.Snapshot().Step)
}

func TestSession_CompleteSuccessFreezesSession(t *testing.T) {
	m, _ := newTestManager(t, &fakeSchedule{})
	sess := createSession(t, m)
	sess.ToggleService(1)
	sess.SetPet(10)

	sess.CompleteSuccess(&scheduleservice.AppointmentConfirmation{ID: 42, Status: "scheduled"})

	snap := sess.Snapshot()
	assert.Equal(t, domain.StepSuccess, snap.Step)
	require.NotNil(t, snap.Confirmation)
	assert.Equal(t, int64(42), snap.Confirmation.ID)

	// Терминальная сессия заморожена: мутации игнорируются
	sess.ToggleService(2)
	sess.SetPet(11)
	sess.SetNotes("late note")

	frozen := sess.Snapshot()
	assert.Equal(t, []int64{1}, frozen.Selection.ServiceIDs)
	assert.Equal(t, int64(10), *frozen.Selection.PetID)
	assert.Empty(t, frozen.Selection.Notes)

	// Повторная отправка завершенной сессии невозможна
	_, err := sess.BuildSubmissionRequest()
	assert.ErrorIs(t, err, ErrSessionCompleted)
}
