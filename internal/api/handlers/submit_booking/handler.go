package submit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	submitBooking "github.com/pawcare/PC-BookingWizard/internal/usecase/submit_booking"
)

const (
	msgSessionNotFound      = "сессия не найдена или истекла"
	msgAccessDenied         = "доступ к чужой сессии запрещен"
	msgIncompleteSelection  = "бронирование не готово к отправке"
	msgAlreadyCompleted     = "бронирование уже завершено"
	msgSubmissionInProgress = "отправка уже выполняется"
	msgCancelled            = "отправка отменена"
	msgValidationRejected   = "запись отклонена сервисом расписания"
	msgNetworkError         = "сервис расписания недоступен, повторите отправку"
	msgUnauthorized         = "клиент не авторизован"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/submit
// Все ошибки, кроме успеха, оставляют выбор без изменений: клиент
// может исправить данные и отправить повторно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{
		SessionID:  sessionID,
		CustomerID: customerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgIncompleteSelection)

		case errors.Is(err, submitBooking.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, submitBooking.ErrIncompleteSelection):
			h.logger.Warn("POST /wizard/sessions/%s/submit - Selection incomplete", sessionID)
			handlers.RespondBadRequest(w, msgIncompleteSelection)

		case errors.Is(err, submitBooking.ErrAlreadyCompleted):
			handlers.RespondConflict(w, msgAlreadyCompleted)

		case errors.Is(err, submitBooking.ErrSubmissionInProgress):
			h.logger.Warn("POST /wizard/sessions/%s/submit - Submission already in progress", sessionID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		case errors.Is(err, submitBooking.ErrCancelled):
			h.logger.Info("POST /wizard/sessions/%s/submit - Submission cancelled", sessionID)
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, submitBooking.ErrValidationRejected):
			h.logger.Warn("POST /wizard/sessions/%s/submit - Rejected by validation: %v", sessionID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgValidationRejected)

		case errors.Is(err, submitBooking.ErrNetwork):
			h.logger.Warn("POST /wizard/sessions/%s/submit - Network error: %v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgNetworkError)

		default:
			h.logger.Error("POST /wizard/sessions/%s/submit - Failed: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard/sessions/%s/submit - Appointment created: id=%d status=%s",
		sessionID, result.AppointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
