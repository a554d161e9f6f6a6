package query_availability

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("query_availability: session not found")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("query_availability: access denied")

	// ErrNoServicesSelected возвращается, когда запрос слотов невозможен
	// без выбранных услуг (нулевая суммарная длительность)
	ErrNoServicesSelected = errors.New("query_availability: no services selected")

	// ErrQueryFailed возвращается при ошибке запроса слотов.
	// Состояние retryable: вызывающая сторона может повторить запрос
	// с тем же ключом.
	ErrQueryFailed = errors.New("query_availability: slot query failed")

	// ErrSuperseded возвращается, когда запрос был вытеснен более новым
	// (изменилась дата или состав услуг). Результат отброшен.
	ErrSuperseded = errors.New("query_availability: query superseded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("query_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("query_availability: internal error")
)
