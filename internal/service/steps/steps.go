package steps

import "github.com/pawcare/PC-BookingWizard/internal/domain"

// Controller конечный автомат шагов мастера бронирования.
// Хранит текущий и максимально достигнутый шаг; все переходы
// проверяются по состоянию Selection. Недопустимый переход — no-op.
type Controller struct {
	current  domain.WizardStep
	furthest domain.WizardStep
}

// NewController создает контроллер шагов.
// Если услуга предвыбрана через deep link, мастер начинается с шага pet.
func NewController(servicePreselected bool) *Controller {
	start := domain.StepService
	if servicePreselected {
		start = domain.StepPet
	}
	return &Controller{current: start, furthest: start}
}

// Current возвращает текущий шаг
func (c *Controller) Current() domain.WizardStep {
	return c.current
}

// Furthest возвращает максимально достигнутый шаг
func (c *Controller) Furthest() domain.WizardStep {
	return c.furthest
}

// CanLeave проверяет, заполнены ли обязательные поля шага step
func CanLeave(step domain.WizardStep, sel *domain.Selection) bool {
	switch step {
	case domain.StepService:
		return len(sel.ServiceIDs) > 0
	case domain.StepPet:
		return sel.PetID != nil
	case domain.StepDatetime:
		return sel.HasExactSlot()
	case domain.StepConfirm:
		// Выход из confirm — только через успешную отправку (MarkSuccess)
		return false
	default:
		return false
	}
}

// nextStep возвращает следующий шаг после current.
// Шаг datetime проходится только в режиме точного слота: если окно
// предпочтений уже задано и точная дата не выбрана, pet ведет сразу
// в confirm.
func nextStep(current domain.WizardStep, sel *domain.Selection) domain.WizardStep {
	switch current {
	case domain.StepService:
		return domain.StepPet
	case domain.StepPet:
		if sel.HasPreference() && sel.Date == nil {
			return domain.StepConfirm
		}
		return domain.StepDatetime
	case domain.StepDatetime:
		return domain.StepConfirm
	default:
		return current
	}
}

// Advance переводит мастер на следующий шаг, если обязательные поля
// текущего шага заполнены. Возвращает true при смене шага.
func (c *Controller) Advance(sel *domain.Selection) bool {
	if c.current.IsTerminal() {
		return false
	}
	if !CanLeave(c.current, sel) {
		return false
	}

	next := nextStep(c.current, sel)
	if next == c.current {
		return false
	}

	c.current = next
	if c.furthest.IsBefore(next) {
		c.furthest = next
	}
	return true
}

// Back возвращает мастер на предыдущий шаг. Назад можно всегда,
// кроме терминального success; введенные данные не очищаются.
func (c *Controller) Back(sel *domain.Selection) bool {
	if c.current.IsTerminal() || c.current == domain.StepService {
		return false
	}

	switch c.current {
	case domain.StepPet:
		c.current = domain.StepService
	case domain.StepDatetime:
		c.current = domain.StepPet
	case domain.StepConfirm:
		// В режиме окна предпочтений шаг datetime не проходился
		if sel.HasPreference() && sel.Date == nil {
			c.current = domain.StepPet
		} else {
			c.current = domain.StepDatetime
		}
	}
	return true
}

// FurthestReachable вычисляет самый дальний шаг, достижимый при текущем
// состоянии Selection (все предыдущие шаги должны быть заполнены)
func FurthestReachable(sel *domain.Selection) domain.WizardStep {
	step := domain.StepService
	for !step.IsTerminal() {
		if !CanLeave(step, sel) {
			return step
		}
		next := nextStep(step, sel)
		if next == step {
			return step
		}
		step = next
	}
	return step
}

// Jump переводит мастер на произвольный шаг (например, по клику на
// индикатор прогресса). Переход вперед разрешен только если все шаги
// между текущим и целевым уже заполнены; иначе шаг ограничивается
// самым дальним допустимым. Терминальный success недостижим через Jump
// и из него нельзя выйти. Возвращает шаг, на котором оказался мастер.
func (c *Controller) Jump(target domain.WizardStep, sel *domain.Selection) domain.WizardStep {
	if c.current.IsTerminal() {
		return c.current
	}
	if !target.IsValid() || target.IsTerminal() {
		return c.current
	}

	// Назад — всегда можно, данные не теряются
	if target.Order() <= c.current.Order() {
		c.current = target
		return c.current
	}

	reachable := FurthestReachable(sel)
	if reachable.IsTerminal() {
		reachable = domain.StepConfirm
	}

	clamped := target
	if reachable.IsBefore(target) {
		clamped = reachable
	}

	c.current = clamped
	if c.furthest.IsBefore(clamped) {
		c.furthest = clamped
	}
	return c.current
}

// MarkSuccess переводит мастер в терминальный success.
// Вызывается только координатором отправки после подтверждения записи.
func (c *Controller) MarkSuccess() {
	c.current = domain.StepSuccess
	c.furthest = domain.StepSuccess
}
