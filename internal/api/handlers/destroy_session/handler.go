package destroy_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

const (
	msgSessionNotFound = "сессия не найдена или истекла"
	msgAccessDenied    = "доступ к чужой сессии запрещен"
	msgUnauthorized    = "клиент не авторизован"
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

// Handle DELETE /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.sessions.Destroy(sessionID, customerID); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("DELETE /wizard/sessions/%s - Session not found", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("DELETE /wizard/sessions/%s - Access denied: customer=%d", sessionID, customerID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("DELETE /wizard/sessions/%s - Failed to destroy session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /wizard/sessions/%s - Session destroyed: customer=%d", sessionID, customerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
