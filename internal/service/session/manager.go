package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/service/availability"
	"github.com/pawcare/PC-BookingWizard/internal/service/pricing"
	"github.com/pawcare/PC-BookingWizard/internal/service/steps"
	"github.com/pawcare/PC-BookingWizard/internal/service/submission"
)

// sweepInterval интервал фоновой очистки истекших сессий
const sweepInterval = time.Minute

// Manager реестр сессий мастера бронирования. Сессия живет в памяти
// процесса: мутации синхронны, а координаторы держат несериализуемые
// ресурсы (cancel-функции контекстов, goroutine запроса). Сессия
// уничтожается по успеху, по явному отказу или по TTL.
type Manager struct {
	catalogRepo    CatalogRepository
	petsRepo       PetsRepository
	scheduleClient ScheduleClient
	pricer         *pricing.Resolver
	timeProvider   TimeProvider
	log            Logger

	clinicID int64
	ttl      time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager создает реестр сессий
func NewManager(
	catalogRepo CatalogRepository,
	petsRepo PetsRepository,
	scheduleClient ScheduleClient,
	pricer *pricing.Resolver,
	clinicID int64,
	ttl time.Duration,
	log Logger,
) *Manager {
	return &Manager{
		catalogRepo:    catalogRepo,
		petsRepo:       petsRepo,
		scheduleClient: scheduleClient,
		pricer:         pricer,
		timeProvider:   &RealTimeProvider{},
		log:            log,
		clinicID:       clinicID,
		ttl:            ttl,
		sessions:       make(map[string]*Session),
	}
}

// StartSweeper запускает фоновую очистку истекших сессий до закрытия stopCh
func (m *Manager) StartSweeper(stopCh <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

// Create создает новую сессию: загружает справочные данные (каталог
// услуг клиники и питомцев клиента) один раз и инициализирует пустой
// выбор. Если preselectedServiceID задан (deep link на услугу), услуга
// сразу добавляется в выбор и мастер начинается с шага pet.
func (m *Manager) Create(ctx context.Context, customerID int64, preselectedServiceID *int64) (*Session, error) {
	services, err := m.catalogRepo.ListByClinic(ctx, m.clinicID)
	if err != nil {
		m.log.Error("Create session: failed to load catalog for clinic=%d: %v", m.clinicID, err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	pets, err := m.petsRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		m.log.Error("Create session: failed to load pets for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: failed to load pets: %v", ErrInternal, err)
	}

	serviceByID := make(map[int64]*domain.Service, len(services))
	for _, svc := range services {
		serviceByID[svc.ID] = svc
	}
	petByID := make(map[int64]*domain.Pet, len(pets))
	for _, pet := range pets {
		petByID[pet.ID] = pet
	}

	selection := domain.NewSelection()
	preselected := false
	if preselectedServiceID != nil {
		if _, ok := serviceByID[*preselectedServiceID]; !ok {
			m.log.Warn("Create session: preselected service id=%d not in catalog", *preselectedServiceID)
			return nil, ErrServiceNotInCatalog
		}
		selection.ToggleService(*preselectedServiceID)
		preselected = true
	}

	sess := &Session{
		id:           uuid.NewString(),
		customerID:   customerID,
		clinicID:     m.clinicID,
		selection:    selection,
		steps:        steps.NewController(preselected),
		lineKeys:     make(map[domain.CartLineKey]struct{}),
		services:     services,
		serviceByID:  serviceByID,
		pets:         pets,
		petByID:      petByID,
		availability: availability.NewCoordinator(m.scheduleClient, m.log),
		submission:   submission.NewCoordinator(m.scheduleClient, m.log),
		pricer:       m.pricer,
		timeProvider: m.timeProvider,
		log:          m.log,
		lastAccess:   m.timeProvider.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()

	m.log.Info("Create session: id=%s customer=%d services=%d pets=%d preselected=%v",
		sess.id, customerID, len(services), len(pets), preselected)
	return sess, nil
}

// Get возвращает сессию по идентификатору с проверкой владельца
func (m *Manager) Get(sessionID string, customerID int64) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.customerID != customerID {
		m.log.Warn("Get session: customer=%d denied access to session %s", customerID, sessionID)
		return nil, ErrAccessDenied
	}

	sess.touch(m.timeProvider.Now())
	return sess, nil
}

// Destroy уничтожает сессию (явный отказ от бронирования или очистка
// после успеха). Активные запросы и отправки отменяются.
func (m *Manager) Destroy(sessionID string, customerID int64) error {
	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if ok && sess.customerID == customerID {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	if sess.customerID != customerID {
		return ErrAccessDenied
	}

	sess.Availability().CancelActive()
	sess.Submission().Cancel()
	m.log.Info("Destroy session: id=%s", sessionID)
	return nil
}

// sweep удаляет истекшие сессии
func (m *Manager) sweep() {
	now := m.timeProvider.Now()

	m.mu.Lock()
	expired := make([]*Session, 0)
	for id, sess := range m.sessions {
		if sess.expired(now, m.ttl) {
			delete(m.sessions, id)
			expired = append(expired, sess)
		}
	}
	m.mu.Unlock()

	for _, sess := range expired {
		sess.Availability().CancelActive()
		sess.Submission().Cancel()
	}

	if len(expired) > 0 {
		m.log.Info("Session sweep: removed %d expired sessions", len(expired))
	}
}
