package query_availability

import (
	"time"

	"github.com/pawcare/PC-BookingWizard/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	SessionID  string    // ID сессии мастера
	CustomerID int64     // Владелец сессии
	Date       time.Time // Дата, на которую запрашиваются слоты
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time // Дата запроса
	DurationMinutes int       // Суммарная длительность выбранных услуг
	Slots           []Slot    // Упорядоченный список слотов
}

// Slot один временной слот. Недоступные слоты не фильтруются:
// UI отображает их отключенными, чтобы была видна форма расписания.
type Slot struct {
	Time      types.TimeString
	Available bool
}
