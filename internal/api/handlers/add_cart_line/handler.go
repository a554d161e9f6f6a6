package add_cart_line

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный идентификатор услуги"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgAccessDenied       = "доступ к чужой сессии запрещен"
	msgUnauthorized       = "клиент не авторизован"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/lines
// Дубликат ключа (услуга, питомец, вариант) — no-op: строка не
// задваивается, клиент получает актуальный снимок.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req AddCartLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/%s/lines - Invalid request body: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ServiceID <= 0 {
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
			h.logger.Error("POST /wizard/sessions/%s/lines - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	sess.AddCartLine(req.ServiceID, req.VariantName)

	h.logger.Info("POST /wizard/sessions/%s/lines - Cart line added: service=%d variant=%q",
		sessionID, req.ServiceID, req.VariantName)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}
