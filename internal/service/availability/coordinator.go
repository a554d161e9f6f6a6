package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/pkg/types"
)

// Key ключ логического запроса слотов. В каждый момент времени активен
// не более чем один запрос на сессию; новый ключ вытесняет предыдущий.
type Key struct {
	ClinicID        int64
	Date            string // YYYY-MM-DD
	DurationMinutes int
}

// State состояние координатора для отображения в UI
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshot опубликованное состояние координатора.
// Slots заполнены только в состоянии ready; ошибка — только в failed.
type Snapshot struct {
	Key   Key
	State State
	Slots []domain.Slot
}

// cacheTTL время жизни закэшированного результата по ключу
const cacheTTL = 30 * time.Second

// Query один асинхронный запрос слотов. Результат публикуется только
// если поколение запроса все еще актуально.
type Query struct {
	key        Key
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}

	// Заполняются до закрытия done, после — только чтение
	slots []domain.Slot
	err   error
}

type cacheEntry struct {
	slots    []domain.Slot
	storedAt time.Time
}

// Coordinator координатор асинхронных запросов доступности для одной
// сессии мастера. Дедуплицирует запросы по ключу, кэширует недавние
// результаты и отбрасывает устаревшие ответы (stale-response suppression).
type Coordinator struct {
	client       ScheduleClient
	timeProvider TimeProvider
	log          Logger

	// mu защищает все поля ниже: мутации сессии сериализованы снаружи,
	// но goroutine запроса публикует результат сама
	mu         sync.Mutex
	generation uint64
	active     *Query
	published  Snapshot
	cache      map[Key]cacheEntry
}

// NewCoordinator создает координатор для одной сессии
func NewCoordinator(client ScheduleClient, log Logger) *Coordinator {
	return &Coordinator{
		client:       client,
		timeProvider: &RealTimeProvider{},
		log:          log,
		published:    Snapshot{State: StateIdle},
		cache:        make(map[Key]cacheEntry),
	}
}

// Snapshot возвращает опубликованное состояние
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published
}

// Invalidate сверяет активный запрос с ожидаемым ключом и отменяет его,
// если он устарел. Вызывается хранилищем выбора после каждой мутации,
// влияющей на ключ (смена даты, изменение суммарной длительности).
// expected == nil означает, что запрос сейчас невозможен (нет услуг
// или даты) — любой активный запрос отменяется.
func (c *Coordinator) Invalidate(expected *Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if expected != nil && c.published.State != StateIdle && c.published.Key == *expected {
		return
	}

	c.supersedeLocked()
	c.published = Snapshot{State: StateIdle}
}

// CancelActive отменяет активный запрос, если он есть.
// Отмена наблюдаема синхронно: состояние сбрасывается немедленно,
// даже если сетевой запрос прерывается дольше.
func (c *Coordinator) CancelActive() {
	c.Invalidate(nil)
}

// supersedeLocked вытесняет активный запрос: его результат будет
// отброшен, ожидающие получат ErrSuperseded
func (c *Coordinator) supersedeLocked() {
	c.generation++
	if c.active != nil {
		c.active.cancel()
		c.active = nil
	}
}

// Start запускает (или переиспользует) логический запрос слотов по ключу.
// Возвращаемый Query можно ожидать через Wait. Повторный вызов с тем же
// ключом при активном запросе присоединяется к нему; свежий кэш по ключу
// возвращается без сетевого вызова; новый ключ вытесняет предыдущий запрос.
func (c *Coordinator) Start(key Key) *Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Дедупликация: запрос с тем же ключом уже в полете
	if c.active != nil && c.active.key == key {
		return c.active
	}

	// Свежий закэшированный результат
	if entry, ok := c.cache[key]; ok {
		if c.timeProvider.Now().Sub(entry.storedAt) < cacheTTL {
			c.supersedeLocked()
			c.published = Snapshot{Key: key, State: StateReady, Slots: entry.slots}
			return completedQuery(key, entry.slots)
		}
		delete(c.cache, key)
	}

	c.supersedeLocked()

	ctx, cancel := context.WithCancel(context.Background())
	q := &Query{
		key:        key,
		generation: c.generation,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	c.active = q
	c.published = Snapshot{Key: key, State: StatePending}

	go c.run(ctx, q)
	return q
}

// run выполняет сетевой запрос и публикует результат, если запрос
// не был вытеснен за время полета
func (c *Coordinator) run(ctx context.Context, q *Query) {
	resp, err := c.client.GetAvailableSlots(ctx, q.key.ClinicID, q.key.Date, q.key.DurationMinutes)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Устаревший ответ: запрос был вытеснен или отменен — результат
	// отбрасывается и никогда не применяется к состоянию
	if q.generation != c.generation {
		q.err = ErrSuperseded
		close(q.done)
		return
	}

	c.active = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			q.err = ErrSuperseded
			close(q.done)
			return
		}
		c.log.Warn("Availability: query failed for clinic=%d date=%s duration=%d: %v",
			q.key.ClinicID, q.key.Date, q.key.DurationMinutes, err)
		q.err = fmt.Errorf("%w: %v", ErrQueryFailed, err)
		c.published = Snapshot{Key: q.key, State: StateFailed}
		close(q.done)
		return
	}

	slots := make([]domain.Slot, 0, len(resp.Slots))
	for _, dto := range resp.Slots {
		ts, tsErr := types.NewTimeStringFromString(dto.Time)
		if tsErr != nil {
			c.log.Warn("Availability: dropping slot with invalid time %q", dto.Time)
			continue
		}
		slots = append(slots, domain.Slot{Time: ts, Available: dto.Available})
	}

	q.slots = slots
	c.published = Snapshot{Key: q.key, State: StateReady, Slots: slots}
	c.cache[q.key] = cacheEntry{slots: slots, storedAt: c.timeProvider.Now()}
	close(q.done)
}

// Wait ожидает завершения запроса. Возвращает слоты или типизированную
// ошибку; вытесненный запрос завершается ErrSuperseded.
func (c *Coordinator) Wait(ctx context.Context, q *Query) ([]domain.Slot, error) {
	if q == nil {
		return nil, ErrNoActiveQuery
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
	}

	if q.err != nil {
		return nil, q.err
	}
	return q.slots, nil
}

// completedQuery создает уже завершенный запрос из кэша
func completedQuery(key Key, slots []domain.Slot) *Query {
	q := &Query{
		key:    key,
		cancel: func() {},
		done:   make(chan struct{}),
		slots:  slots,
	}
	close(q.done)
	return q
}
