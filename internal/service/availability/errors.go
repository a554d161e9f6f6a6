package availability

import "errors"

var (
	// ErrQueryFailed возвращается, когда запрос слотов завершился ошибкой.
	// Отличается от пустого списка слотов: пустой список — валидный
	// результат (день полностью занят), а не ошибка.
	ErrQueryFailed = errors.New("availability: slot query failed")

	// ErrSuperseded возвращается ожидающим, когда их запрос был вытеснен
	// более новым ключом (смена даты или суммарной длительности).
	// Устаревший результат никогда не применяется к состоянию.
	ErrSuperseded = errors.New("availability: query superseded by a newer one")

	// ErrNoActiveQuery возвращается при ожидании без активного запроса
	ErrNoActiveQuery = errors.New("availability: no active query")
)
