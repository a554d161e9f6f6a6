package submit_booking

// Request модель запроса на отправку бронирования
type Request struct {
	SessionID  string // ID сессии мастера
	CustomerID int64  // Владелец сессии
}

// Response модель ответа с подтверждением записи
type Response struct {
	AppointmentID int64   // ID созданной записи
	Status        string  // scheduled | pending_schedule
	Date          *string // Назначенная дата (если расписание уже определено)
	StartTime     *string // Назначенное время
	Step          string  // Итоговый шаг мастера (success)
}
