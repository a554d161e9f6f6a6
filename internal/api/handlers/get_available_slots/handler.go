package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/domain"
	queryAvailability "github.com/pawcare/PC-BookingWizard/internal/usecase/query_availability"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNoServicesSelected = "не выбрано ни одной услуги"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgAccessDenied       = "доступ к чужой сессии запрещен"
	msgQuerySuperseded    = "запрос слотов вытеснен более новым"
	msgQueryFailed        = "сервис расписания недоступен, повторите запрос"
	msgUnauthorized       = "клиент не авторизован"
)

type Handler struct {
	useCase QueryAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase QueryAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/wizard/sessions/{sessionId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /wizard/sessions/%s/available-slots - Invalid date: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &queryAvailability.Request{
		SessionID:  sessionID,
		CustomerID: customerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, queryAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, queryAvailability.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, queryAvailability.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, queryAvailability.ErrNoServicesSelected):
			handlers.RespondBadRequest(w, msgNoServicesSelected)

		case errors.Is(err, queryAvailability.ErrSuperseded):
			// Мутация выбора вытеснила этот запрос: результат отброшен,
			// клиент перезапрашивает с актуальным состоянием
			handlers.RespondConflict(w, msgQuerySuperseded)

		case errors.Is(err, queryAvailability.ErrQueryFailed):
			h.logger.Warn("GET /wizard/sessions/%s/available-slots - Query failed: %v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgQueryFailed)

		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Клиент ушел, отвечать некому
			h.logger.Info("GET /wizard/sessions/%s/available-slots - Request cancelled", sessionID)

		default:
			h.logger.Error("GET /wizard/sessions/%s/available-slots - Failed: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
