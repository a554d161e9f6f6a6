package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcare/PC-BookingWizard/internal/api/middleware"
	queryAvailability "github.com/pawcare/PC-BookingWizard/internal/usecase/query_availability"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp    *queryAvailability.Response
	err     error
	lastReq *queryAvailability.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *queryAvailability.Request) (*queryAvailability.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func newRouter(uc QueryAvailabilityUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/wizard/sessions/{sessionId}/available-slots", h.Handle).Methods(http.MethodGet)
	return r
}

func doRequest(r *mux.Router, date string, customerHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/wizard/sessions/sess-1/available-slots?date="+date, nil)
	if customerHeader != "" {
		req.Header.Set("X-Customer-ID", customerHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &fakeUseCase{
		resp: &queryAvailability.Response{
			Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			DurationMinutes: 45,
			Slots: []queryAvailability.Slot{
				{Time: "10:00", Available: true},
				{Time: "10:30", Available: false},
			},
		},
	}
	rec := doRequest(newRouter(uc), "2026-09-10", "7")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-10", resp.Date)
	assert.Equal(t, 45, resp.DurationMinutes)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "10:00", resp.Slots[0].Time)
	assert.False(t, resp.Slots[1].Available)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "sess-1", uc.lastReq.SessionID)
	assert.Equal(t, int64(7), uc.lastReq.CustomerID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{"session not found", queryAvailability.ErrSessionNotFound, http.StatusNotFound},
		{"access denied", queryAvailability.ErrAccessDenied, http.StatusForbidden},
		{"no services selected", queryAvailability.ErrNoServicesSelected, http.StatusBadRequest},
		{"superseded", queryAvailability.ErrSuperseded, http.StatusConflict},
		{"query failed", queryAvailability.ErrQueryFailed, http.StatusBadGateway},
		{"internal", queryAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newRouter(&fakeUseCase{err: tt.ucErr}), "2026-09-10", "7")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_InvalidDate(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doRequest(newRouter(uc), "10.09.2026", "7")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.lastReq)
}

func TestHandler_Handle_MissingCustomerHeader(t *testing.T) {
	rec := doRequest(newRouter(&fakeUseCase{}), "2026-09-10", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
