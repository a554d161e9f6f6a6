package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session: not found or expired")

	// ErrAccessDenied возвращается при обращении к чужой сессии
	ErrAccessDenied = errors.New("session: access denied")

	// ErrServiceNotInCatalog возвращается при создании сессии с
	// предвыбранной услугой, которой нет в каталоге клиники
	ErrServiceNotInCatalog = errors.New("session: preselected service not in catalog")

	// ErrIncompleteSelection возвращается при попытке собрать запрос на
	// отправку из незавершенного выбора
	ErrIncompleteSelection = errors.New("session: selection is incomplete")

	// ErrSessionCompleted возвращается при попытке отправить уже
	// завершенную сессию
	ErrSessionCompleted = errors.New("session: already completed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("session: internal error")
)
