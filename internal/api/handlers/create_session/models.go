package create_session

// CreateSessionRequest запрос на создание сессии мастера.
// ServiceID задается при переходе по deep link со страницы услуги:
// услуга сразу попадает в выбор, мастер начинается с шага pet.
type CreateSessionRequest struct {
	ServiceID *int64 `json:"serviceId,omitempty"`
}
