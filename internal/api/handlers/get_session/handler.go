package get_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/handlers/views"
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

// Handle GET /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	sess, err := h.sessions.Get(sessionID, customerID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound):
			h.logger.Warn("GET /wizard/sessions/%s - Session not found", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, session.ErrAccessDenied):
			h.logger.Warn("GET /wizard/sessions/%s - Access denied: customer=%d", sessionID, customerID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /wizard/sessions/%s - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}
