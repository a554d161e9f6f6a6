package toggle_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/handlers/views"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

const (
	msgInvalidServiceID = "некорректный идентификатор услуги"
	msgSessionNotFound  = "сессия не найдена или истекла"
	msgAccessDenied     = "доступ к чужой сессии запрещен"
	msgUnauthorized     = "клиент не авторизован"
)

type Handler struct {
	sessions SessionManager
	logger   Logger
}

func NewHandler(sessions SessionManager, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/services/{serviceId}/toggle
// Добавление сверх лимита услуг и неизвестная услуга — no-op: клиент
// получает неизменившийся снимок, а не ошибку.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /wizard/sessions/%s/services/{id}/toggle - Invalid service id: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	sess, err := h.sessions.Get(sessionID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, session.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("POST /wizard/sessions/%s/services/%d/toggle - Failed to get session: %v", sessionID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	sess.ToggleService(serviceID)

	h.logger.Info("POST /wizard/sessions/%s/services/%d/toggle - Toggled", sessionID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}
