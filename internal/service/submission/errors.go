package submission

import "errors"

var (
	// ErrInProgress возвращается при попытке начать отправку, пока
	// предыдущая еще в полете. Повторный сетевой запрос не создается.
	ErrInProgress = errors.New("submission: another submission is in progress")

	// ErrCancelled возвращается, когда отправка была отменена
	// пользователем или вызывающей стороной. Не показывается как ошибка.
	ErrCancelled = errors.New("submission: cancelled")

	// ErrValidationRejected возвращается, когда сервер отклонил запись
	// по результатам повторной валидации
	ErrValidationRejected = errors.New("submission: rejected by server validation")

	// ErrNetwork возвращается при транспортной ошибке; повтор допустим
	ErrNetwork = errors.New("submission: network error")

	// ErrUnknown возвращается при прочих ошибках; повтор допустим
	// с осторожностью
	ErrUnknown = errors.New("submission: unknown error")
)
