package set_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/FP-ReservationService/internal/service/reservations"
	"github.com/m04kA/FP-ReservationService/internal/service/reservations/models"
)

type fakeService struct {
	resp *models.ReservationResponse
	err  error
}

func (f *fakeService) SetStatus(_ context.Context, _ int64, _ *models.SetStatusRequest) (*models.ReservationResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc ReservationsService, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{reservationId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusCodes(t *testing.T) {
	testCases := []struct {
		name         string
		svc          *fakeService
		id           string
		body         string
		expectedCode int
	}{
		{
			name:         "ok",
			svc:          &fakeService{resp: &models.ReservationResponse{ID: 1, Status: "confirmed"}},
			id:           "1",
			body:         `{"status": "confirmed"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "not found",
			svc:          &fakeService{err: reservations.ErrReservationNotFound},
			id:           "999",
			body:         `{"status": "confirmed"}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "invalid transition",
			svc:          &fakeService{err: reservations.ErrInvalidTransition},
			id:           "1",
			body:         `{"status": "completed"}`,
			expectedCode: http.StatusConflict,
		},
		{
			name:         "conflicted not settable",
			svc:          &fakeService{err: reservations.ErrStatusNotAllowed},
			id:           "1",
			body:         `{"status": "conflicted"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknown status",
			svc:          &fakeService{err: reservations.ErrInvalidInput},
			id:           "1",
			body:         `{"status": "paused"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "internal error",
			svc:          &fakeService{err: reservations.ErrInternal},
			id:           "1",
			body:         `{"status": "confirmed"}`,
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "bad reservation id",
			svc:          &fakeService{},
			id:           "abc",
			body:         `{"status": "confirmed"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad body",
			svc:          &fakeService{},
			id:           "1",
			body:         `{"status": `,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, tc.svc, tc.id, tc.body)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
