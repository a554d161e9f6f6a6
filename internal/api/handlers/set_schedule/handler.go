package set_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pawcare/PC-BookingWizard/internal/api/handlers"
	"github.com/pawcare/PC-BookingWizard/internal/api/handlers/views"
	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/internal/service/session"
	"github.com/pawcare/PC-BookingWizard/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgIncompleteWindow   = "окно предпочтений требует обеих границ"
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

// Handle PUT /api/v1/wizard/sessions/{sessionId}/schedule
// Смена даты сбрасывает ранее выбранный слот, поэтому пара date+timeSlot
// в одном запросе применяется в порядке date, затем timeSlot.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	var req SetScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /wizard/sessions/%s/schedule - Invalid request body: %v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Парсим все даты и время до применения: частично примененный
	// запрос с ошибкой парсинга оставил бы выбор в смешанном состоянии
	parsedDate, err := parseOptionalDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var slot types.TimeString
	if req.TimeSlot != nil {
		slot, err = types.NewTimeStringFromString(*req.TimeSlot)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
	}

	if (req.PreferredDateStart == nil) != (req.PreferredDateEnd == nil) {
		handlers.RespondBadRequest(w, msgIncompleteWindow)
		return
	}
	parsedStart, err := parseOptionalDate(req.PreferredDateStart)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	parsedEnd, err := parseOptionalDate(req.PreferredDateEnd)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
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
			h.logger.Error("PUT /wizard/sessions/%s/schedule - Failed to get session: %v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if parsedDate != nil {
		sess.SetDate(*parsedDate)
	}
	if req.TimeSlot != nil {
		sess.SetTimeSlot(slot)
	}
	if parsedStart != nil && parsedEnd != nil {
		timeOfDay := domain.TimeOfDayAny
		if req.PreferredTimeOfDay != nil {
			timeOfDay = domain.PreferredTimeOfDay(*req.PreferredTimeOfDay)
		}
		sess.SetPreference(*parsedStart, *parsedEnd, timeOfDay)
	}
	if req.Notes != nil {
		sess.SetNotes(*req.Notes)
	}

	h.logger.Info("PUT /wizard/sessions/%s/schedule - Schedule updated", sessionID)
	handlers.RespondJSON(w, http.StatusOK, views.FromSnapshot(sess.Snapshot()))
}

// parseOptionalDate парсит опциональную дату формата YYYY-MM-DD
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
