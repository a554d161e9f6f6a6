package goto_step

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/handlers/views"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие, ожидается advance, back или jump"
	msgInvalidTarget      = "некорректный целевой шаг"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/step
// Невозможный переход (advance с незаполненного шага, jump дальше
// допустимого) не ошибка: шаг ограничивается, клиент получает снимок
// с фактическим шагом.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req GotoStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions/%s/step - Invalid request body: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var target domain.WizardStep
	switch req.Action {
	case ActionAdvance, ActionBack:
	case ActionJump:
		target = domain.WizardStep(req.Target)
		if !target.IsValid() {
			handlers.RespondBadRequest(w, msgInvalidTarget)
			return
		}
	default:
		handlers.RespondBadRequest(w, msgInvalidAction)
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
			h.logger.Error("POST /wizard/sessions/%s/step - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	var step domain.WizardStep
	switch req.Action {
	case ActionAdvance:
		step = sess.Advance()
	case ActionBack:
		step = sess.Back()
	case ActionJump:
		step = sess.Jump(target)
	}

	h.logger.Info("POST /wizard/sessions/%s/step - Action %s, now at %s", sessionID, req.Action, step)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}
