package submit_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("submit_booking: session not found")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("submit_booking: access denied")

	// ErrIncompleteSelection возвращается, когда выбор не готов к
	// отправке (нет услуг, питомца или расписания)
	ErrIncompleteSelection = errors.New("submit_booking: selection is incomplete")

	// ErrAlreadyCompleted возвращается для сессии в терминальном success:
	// повторная отправка после успеха недоступна
	ErrAlreadyCompleted = errors.New("submit_booking: session already completed")

	// ErrSubmissionInProgress возвращается, когда отправка уже в полете.
	// Повторный сетевой запрос не создается.
	ErrSubmissionInProgress = errors.New("submit_booking: submission already in progress")

	// ErrCancelled возвращается, когда отправка была отменена.
	// Выбор сохранен, повторная отправка возможна.
	ErrCancelled = errors.New("submit_booking: submission cancelled")

	// ErrValidationRejected возвращается, когда сервер отклонил запись.
	// Показывается пользователю, повтор допустим.
	ErrValidationRejected = errors.New("submit_booking: rejected by server validation")

	// ErrNetwork возвращается при транспортной ошибке; повтор допустим
	ErrNetwork = errors.New("submit_booking: network error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrUnknown возвращается при прочих ошибках отправки
	ErrUnknown = errors.New("submit_booking: unknown submission error")
)
