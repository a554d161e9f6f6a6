package scheduleservice

import "errors"

var (
	// ErrValidationRejected возвращается, когда ScheduleService отклонил
	// запрос по результатам серверной валидации (например, окно
	// предпочтений больше не выполнимо)
	ErrValidationRejected = errors.New("scheduleservice client: request rejected by validation")

	// ErrUnavailable возвращается при транспортных ошибках и ошибках 5xx
	ErrUnavailable = errors.New("scheduleservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("scheduleservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("scheduleservice client: internal error")
)
