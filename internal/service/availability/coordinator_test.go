package availability

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

// fakeScheduleClient управляемый клиент: release блокирует ответ до
// закрытия, чтобы тест успел вытеснить запрос в полете
type fakeScheduleClient struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	resp    *scheduleservice.AvailabilityResponse
	err     error
}

func (f *fakeScheduleClient) GetAvailableSlots(ctx context.Context, clinicID int64, date string, durationMinutes int) (*scheduleservice.AvailabilityResponse, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	resp, err := f.resp, f.err
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

func (f *fakeScheduleClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func slotsResponse(times ...string) *scheduleservice.AvailabilityResponse {
	resp := &scheduleservice.AvailabilityResponse{}
	for _, t := range times {
		resp.Slots = append(resp.Slots, scheduleservice.SlotDTO{Time: t, Available: true})
	}
	return resp
}

func TestCoordinator_Success(t *testing.T) {
	client := &fakeScheduleClient{resp: slotsResponse("10:00", "10:30")}
	c := NewCoordinator(client, nopLogger{})

	key := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 45}
	q := c.Start(key)

	slots, err := c.Wait(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "10:00", slots[0].Time.String())

	snap := c.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, key, snap.Key)
}

func TestCoordinator_StaleResponseDropped(t *testing.T) {
	release := make(chan struct{})
	client := &fakeScheduleClient{resp: slotsResponse("10:00"), release: release}
	c := NewCoordinator(client, nopLogger{})

	oldKey := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30}
	q := c.Start(oldKey)
	assert.Equal(t, StatePending, c.Snapshot().State)

	// Мутация изменила длительность: активный запрос устарел
	newKey := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 60}
	c.Invalidate(&newKey)
	assert.Equal(t, StateIdle, c.Snapshot().State)

	// Медленный ответ приходит после вытеснения — отбрасывается
	close(release)
	_, err := c.Wait(context.Background(), q)
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, StateIdle, c.Snapshot().State)
}

func TestCoordinator_NewKeySupersedesActive(t *testing.T) {
	release := make(chan struct{})
	client := &fakeScheduleClient{resp: slotsResponse("10:00"), release: release}
	c := NewCoordinator(client, nopLogger{})

	first := c.Start(Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30})
	second := c.Start(Key{ClinicID: 1, Date: "2026-09-11", DurationMinutes: 30})

	close(release)

	_, err := c.Wait(context.Background(), first)
	assert.ErrorIs(t, err, ErrSuperseded)

	slots, err := c.Wait(context.Background(), second)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestCoordinator_DedupesInFlightKey(t *testing.T) {
	release := make(chan struct{})
	client := &fakeScheduleClient{resp: slotsResponse("10:00"), release: release}
	c := NewCoordinator(client, nopLogger{})

	key := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30}
	q1 := c.Start(key)
	q2 := c.Start(key)
	assert.Same(t, q1, q2)

	close(release)
	_, err := c.Wait(context.Background(), q1)
	require.NoError(t, err)
	assert.Equal(t, 1, client.callCount())
}

func TestCoordinator_FreshCacheHit(t *testing.T) {
	client := &fakeScheduleClient{resp: slotsResponse("10:00")}
	c := NewCoordinator(client, nopLogger{})

	key := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30}
	q := c.Start(key)
	_, err := c.Wait(context.Background(), q)
	require.NoError(t, err)

	// Повторный запрос того же ключа обслуживается из кэша
	q2 := c.Start(key)
	slots, err := c.Wait(context.Background(), q2)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, 1, client.callCount())
}

func TestCoordinator_QueryFailed(t *testing.T) {
	client := &fakeScheduleClient{err: errors.New("connection refused")}
	c := NewCoordinator(client, nopLogger{})

	q := c.Start(Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30})
	_, err := c.Wait(context.Background(), q)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.Equal(t, StateFailed, c.Snapshot().State)

	// Состояние failed retryable: повторный Start с тем же ключом
	// выполняет новый сетевой запрос
	client.mu.Lock()
	client.err = nil
	client.resp = slotsResponse("11:00")
	client.mu.Unlock()

	q2 := c.Start(Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30})
	slots, err := c.Wait(context.Background(), q2)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestCoordinator_CancelActive(t *testing.T) {
	release := make(chan struct{})
	client := &fakeScheduleClient{resp: slotsResponse("10:00"), release: release}
	c := NewCoordinator(client, nopLogger{})

	q := c.Start(Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30})
	c.CancelActive()

	// Отмена наблюдаема сразу, до завершения сетевого запроса
	assert.Equal(t, StateIdle, c.Snapshot().State)

	_, err := c.Wait(context.Background(), q)
	assert.ErrorIs(t, err, ErrSuperseded)
}

func TestCoordinator_InvalidateMatchingKeyKeepsResult(t *testing.T) {
	client := &fakeScheduleClient{resp: slotsResponse("10:00")}
	c := NewCoordinator(client, nopLogger{})

	key := Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30}
	q := c.Start(key)
	_, err := c.Wait(context.Background(), q)
	require.NoError(t, err)

	// Мутация, не изменившая ключ, не сбрасывает готовый результат
	c.Invalidate(&key)
	assert.Equal(t, StateReady, c.Snapshot().State)
}

func TestCoordinator_WaitContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	client := &fakeScheduleClient{resp: slotsResponse("10:00"), release: release}
	c := NewCoordinator(client, nopLogger{})

	q := c.Start(Key{ClinicID: 1, Date: "2026-09-10", DurationMinutes: 30})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx, q)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
