package session

import (
	"context"
	"sync"
	"time"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/integrations/scheduleservice"
	"github.com/pawcare/PC-BookingWizard/internal/service/availability"
	"github.com/pawcare/PC-BookingWizard/internal/service/pricing"
	"github.com/pawcare/PC-BookingWizard/internal/service/steps"
	"github.com/pawcare/PC-BookingWizard/internal/service/submission"
	"github.com/pawcare/PC-BookingWizard/pkg/types"
)

// Summary производные агрегаты выбора. Вычисляются заново при каждом
// чтении — вызывающая сторона не должна кэшировать их между мутациями.
type Summary struct {
	SelectedServices     []*domain.Service
	TotalDurationMinutes int
	TotalPrice           float64

	// EndTime = timeSlot + totalDuration; пустое значение, когда слот
	// не выбран или блок не помещается в сутки
	EndTime types.TimeString
}

// Snapshot полное состояние сессии для отображения
type Snapshot struct {
	ID         string
	CustomerID int64
	ClinicID   int64

	Step     domain.WizardStep
	Furthest domain.WizardStep

	Selection domain.Selection
	Summary   Summary
	CartLines []domain.CartLine

	Services []*domain.Service
	Pets     []*domain.Pet

	Availability       availability.Snapshot
	SubmissionInFlight bool
	Confirmation       *scheduleservice.AppointmentConfirmation
}

// Session одна сессия мастера бронирования. Владеет агрегатом Selection
// эксклюзивно на все время попытки бронирования; мутации сериализуются
// мьютексом сессии. Справочные данные (каталог, питомцы) загружаются
// один раз при создании и в рамках сессии неизменяемы.
type Session struct {
	id         string
	customerID int64
	clinicID   int64

	mu        sync.Mutex
	selection *domain.Selection
	steps     *steps.Controller
	cartLines []domain.CartLine
	lineKeys  map[domain.CartLineKey]struct{}

	services    []*domain.Service
	serviceByID map[int64]*domain.Service
	pets        []*domain.Pet
	petByID     map[int64]*domain.Pet

	availability *availability.Coordinator
	submission   *submission.Coordinator
	pricer       *pricing.Resolver
	timeProvider TimeProvider
	log          Logger

	lastAccess   time.Time
	confirmation *scheduleservice.AppointmentConfirmation
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string {
	return s.id
}

// CustomerID возвращает владельца сессии
func (s *Session) CustomerID() int64 {
	return s.customerID
}

// Submission возвращает координатор отправки сессии
func (s *Session) Submission() *submission.Coordinator {
	return s.submission
}

// Availability возвращает координатор доступности сессии
func (s *Session) Availability() *availability.Coordinator {
	return s.availability
}

// terminal возвращает true, если сессия завершена (шаг success)
func (s *Session) terminal() bool {
	return s.steps.Current().IsTerminal()
}

// ToggleService добавляет или убирает услугу. Неизвестная услуга и
// добавление сверх лимита — no-op. Мутация, меняющая суммарную
// длительность, немедленно инвалидирует активный запрос слотов.
func (s *Session) ToggleService(serviceID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	if _, ok := s.serviceByID[serviceID]; !ok {
		s.log.Warn("Session %s: toggle of unknown service id=%d ignored", s.id, serviceID)
		return
	}

	if s.selection.ToggleService(serviceID) {
		s.syncAvailabilityLocked()
	}
}

// ClearServices убирает все выбранные услуги и отменяет активный
// запрос слотов
func (s *Session) ClearServices() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	if s.selection.ClearServices() {
		s.syncAvailabilityLocked()
	}
}

// SetPet выбирает питомца. Питомец должен принадлежать владельцу
// сессии, иначе мутация игнорируется. Смена питомца не трогает уже
// зафиксированные строки корзины — их цена заморожена при добавлении.
func (s *Session) SetPet(petID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	if _, ok := s.petByID[petID]; !ok {
		s.log.Warn("Session %s: pet id=%d does not belong to customer %d, ignored", s.id, petID, s.customerID)
		return
	}
	s.selection.SetPet(petID)
}

// SetDate задает дату точного слота. Смена даты сбрасывает выбранный
// слот и инвалидирует активный запрос доступности.
func (s *Session) SetDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	if s.selection.SetDate(date) {
		s.syncAvailabilityLocked()
	}
}

// SetTimeSlot задает точное время начала
func (s *Session) SetTimeSlot(slot types.TimeString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	s.selection.SetTimeSlot(slot)
}

// SetPreference задает окно предпочтений
func (s *Session) SetPreference(start, end time.Time, timeOfDay domain.PreferredTimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	s.selection.SetPreference(start, end, timeOfDay, s.timeProvider.Now())
}

// SetNotes задает заметки
func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	s.selection.SetNotes(notes)
}

// AddCartLine фиксирует строку (услуга, питомец, вариант) с ценой,
// разрешенной на момент добавления. Дубликат ключа, неизвестная услуга
// или отсутствие выбранного питомца — no-op.
func (s *Session) AddCartLine(serviceID int64, variantName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return
	}
	svc, ok := s.serviceByID[serviceID]
	if !ok || s.selection.PetID == nil {
		return
	}

	pet := s.petByID[*s.selection.PetID]
	line := domain.CartLine{
		ServiceID:   serviceID,
		PetID:       *s.selection.PetID,
		VariantName: variantName,
		ServiceName: svc.Name,
		Price:       s.pricer.ResolvePriceForPet(svc, pet),
	}

	if _, exists := s.lineKeys[line.Key()]; exists {
		return
	}
	s.lineKeys[line.Key()] = struct{}{}
	s.cartLines = append(s.cartLines, line)
}

// Advance переводит мастер на следующий шаг (no-op при незаполненном
// текущем шаге), Back — на предыдущий, Jump — на произвольный с
// ограничением до самого дальнего допустимого. Возвращают итоговый шаг.
func (s *Session) Advance() domain.WizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps.Advance(s.selection)
	return s.steps.Current()
}

// Back возвращает мастер на предыдущий шаг
func (s *Session) Back() domain.WizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps.Back(s.selection)
	return s.steps.Current()
}

// Jump переводит мастер на произвольный шаг с ограничением
func (s *Session) Jump(target domain.WizardStep) domain.WizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps.Jump(target, s.selection)
}

// availabilityKeyLocked возвращает ожидаемый ключ запроса слотов или
// nil, когда запрос сейчас невозможен (нет услуг или даты)
func (s *Session) availabilityKeyLocked() *availability.Key {
	if len(s.selection.ServiceIDs) == 0 || s.selection.Date == nil {
		return nil
	}
	return &availability.Key{
		ClinicID:        s.clinicID,
		Date:            s.selection.Date.Format(domain.DateFormat),
		DurationMinutes: s.summaryLocked().TotalDurationMinutes,
	}
}

// syncAvailabilityLocked сверяет активный запрос слотов с текущим
// состоянием выбора. Вызывается после каждой мутации, влияющей на ключ:
// окно, в котором живет запрос со старой длительностью, отсутствует.
func (s *Session) syncAvailabilityLocked() {
	s.availability.Invalidate(s.availabilityKeyLocked())
}

// QuerySlots запускает запрос доступных слотов на дату и ждет результат.
// Суммарная длительность берется из текущего выбора; слоты возвращаются
// без фильтрации недоступных.
func (s *Session) QuerySlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	s.mu.Lock()
	if len(s.selection.ServiceIDs) == 0 {
		s.mu.Unlock()
		return nil, ErrIncompleteSelection
	}
	key := availability.Key{
		ClinicID:        s.clinicID,
		Date:            date.Format(domain.DateFormat),
		DurationMinutes: s.summaryLocked().TotalDurationMinutes,
	}

	// Start под мьютексом сессии: запрос становится активным до того,
	// как любая следующая мутация возьмет мьютекс, поэтому ее Invalidate
	// гарантированно видит запрос со старым ключом. Вне мьютекса только
	// ожидание — мутации не блокируются сетевым запросом.
	q := s.availability.Start(key)
	s.mu.Unlock()

	return s.availability.Wait(ctx, q)
}

// summaryLocked вычисляет производные агрегаты. Всегда считается заново
// от текущего выбора — скрытой мемоизации нет, смена питомца сразу
// отражается на размерных ценах.
func (s *Session) summaryLocked() Summary {
	var pet *domain.Pet
	if s.selection.PetID != nil {
		pet = s.petByID[*s.selection.PetID]
	}

	selected := make([]*domain.Service, 0, len(s.selection.ServiceIDs))
	totalDuration := 0
	totalPrice := 0.0

	for _, id := range s.selection.ServiceIDs {
		svc, ok := s.serviceByID[id]
		if !ok {
			continue
		}
		selected = append(selected, svc)
		totalDuration += svc.DurationMinutes
		totalPrice += s.pricer.ResolvePriceForPet(svc, pet)
	}

	summary := Summary{
		SelectedServices:     selected,
		TotalDurationMinutes: totalDuration,
		TotalPrice:           totalPrice,
	}

	if !s.selection.TimeSlot.IsZero() && totalDuration > 0 {
		if end, err := s.selection.TimeSlot.AddMinutes(totalDuration); err == nil {
			summary.EndTime = end
		}
	}

	return summary
}

// Summary возвращает производные агрегаты текущего выбора
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Snapshot возвращает полное состояние сессии
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.CartLine, len(s.cartLines))
	copy(lines, s.cartLines)

	return Snapshot{
		ID:                 s.id,
		CustomerID:         s.customerID,
		ClinicID:           s.clinicID,
		Step:               s.steps.Current(),
		Furthest:           s.steps.Furthest(),
		Selection:          *s.selection,
		Summary:            s.summaryLocked(),
		CartLines:          lines,
		Services:           s.services,
		Pets:               s.pets,
		Availability:       s.availability.Snapshot(),
		SubmissionInFlight: s.submission.InFlight(),
		Confirmation:       s.confirmation,
	}
}

// BuildSubmissionRequest собирает запрос на создание записи из текущего
// выбора. Выбор должен содержать услуги, питомца и либо точный слот,
// либо окно предпочтений.
func (s *Session) BuildSubmissionRequest() (*scheduleservice.CreateAppointmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminal() {
		return nil, ErrSessionCompleted
	}
	sel := s.selection
	if len(sel.ServiceIDs) == 0 || sel.PetID == nil || !sel.HasSchedule() {
		return nil, ErrIncompleteSelection
	}

	summary := s.summaryLocked()
	req := &scheduleservice.CreateAppointmentRequest{
		ClinicID:             s.clinicID,
		CustomerID:           s.customerID,
		PetID:                *sel.PetID,
		ServiceIDs:           append([]int64(nil), sel.ServiceIDs...),
		TotalDurationMinutes: summary.TotalDurationMinutes,
		TotalPrice:           summary.TotalPrice,
		Notes:                sel.Notes,
	}

	if sel.HasExactSlot() {
		date := sel.Date.Format(domain.DateFormat)
		slot := sel.TimeSlot.String()
		req.Date = &date
		req.StartTime = &slot
	}
	if sel.HasPreference() {
		start := sel.PreferredDateStart.Format(domain.DateFormat)
		end := sel.PreferredDateEnd.Format(domain.DateFormat)
		req.PreferredDateStart = &start
		req.PreferredDateEnd = &end
		req.PreferredTimeOfDay = string(sel.PreferredTimeOfDay)
	}

	return req, nil
}

// CompleteSuccess переводит сессию в терминальный success после
// подтверждения записи. Выбор замораживается, активный запрос слотов
// отменяется; для нового бронирования создается новая сессия.
func (s *Session) CompleteSuccess(confirmation *scheduleservice.AppointmentConfirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirmation = confirmation
	s.steps.MarkSuccess()
	s.availability.CancelActive()
}

// touch обновляет время последнего обращения
func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = now
}

// expired возвращает true, если сессия не использовалась дольше ttl
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastAccess) > ttl
}
