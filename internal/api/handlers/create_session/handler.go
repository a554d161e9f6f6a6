package create_session

import (
	"errors"
	"io"
	"net/http"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/handlers/views"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена в каталоге клиники"
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

// Handle POST /api/v1/wizard/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	// Тело опционально: мастер без deep link начинается с пустого выбора
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /wizard/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	sess, err := h.sessions.Create(r.Context(), customerID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrServiceNotInCatalog):
			h.logger.Warn("POST /wizard/sessions - Preselected service not found: customer=%d", customerID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("POST /wizard/sessions - Failed to create session: customer=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /wizard/sessions - Session created: session=%s, customer=%d", sess.ID(), customerID)
	handlers.RespondJSON(w, http.StatusCreated, views.FromSnapshot(sess.Snapshot()))
}
