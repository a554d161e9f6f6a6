package set_pet

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
	msgInvalidPetID       = "некорректный идентификатор питомца"
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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/pet
// Питомец, не принадлежащий владельцу сессии, игнорируется сессией —
// клиент получает снимок без изменений.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req SetPetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /wizard/sessions/%s/pet - Invalid request body: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.PetID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidPetID)
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
			h.logger.Error("PUT /wizard/sessions/%s/pet - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	sess.SetPet(req.PetID)

	h.logger.Info("PUT /wizard/sessions/%s/pet - Pet selected: pet=%d", sessionID, req.PetID)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}
