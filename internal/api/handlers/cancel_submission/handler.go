package cancel_submission

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

// Handle POST /api/v1/wizard/sessions/{sessionId}/submit/cancel
// Отмена синхронна: сразу после ответа inFlight=false и повторная
// отправка возможна, даже если сетевой запрос еще завершается в фоне.
// Результат отмененной отправки будет отброшен.
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
			handlers.RespondNotFound(w, msgSessionNotFound)
		case errors.Is(err, session.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("POST /wizard/sessions/%s/submit/cancel - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	cancelled := sess.Submission().Cancel()

	h.logger.Info("POST /wizard/sessions/%s/submit/cancel - Cancelled=%v", sessionID, cancelled)
	handlers.RespondJSON(w, http.StatusOK, CancelSubmissionResponse{
		Cancelled: cancelled,
		Step:      string(sess.Snapshot().Step),
	})
}
