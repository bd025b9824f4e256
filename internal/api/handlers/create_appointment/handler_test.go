package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

type stubUseCase struct {
	resp *createAppointment.Response
	err  error

	gotReq *createAppointment.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{
		resp: &createAppointment.Response{
			ID:              42,
			StartTime:       start,
			DurationMinutes: 30,
			Name:            "Ivan Petrov",
			Email:           "ivan@example.com",
			Status:          "active",
			CreatedAt:       start.Add(-24 * time.Hour),
			UpdatedAt:       start.Add(-24 * time.Hour),
		},
	}

	rec := doRequest(t, uc, `{
		"startTime": "2025-06-11T10:00:00Z",
		"name": "Ivan Petrov",
		"email": "ivan@example.com"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-06-11T10:00:00Z", resp.StartTime)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "active", resp.Status)

	require.NotNil(t, uc.gotReq)
	assert.True(t, uc.gotReq.StartTime.Equal(start))
}

func TestHandle_MalformedJSON(t *testing.T) {
	uc := &stubUseCase{}
	rec := doRequest(t, uc, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_BadStartTimeFormat(t *testing.T) {
	uc := &stubUseCase{}
	rec := doRequest(t, uc, `{"startTime": "11.06.2025 10:00", "name": "x", "email": "x@e.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotReq)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := `{"startTime": "2025-06-11T10:00:00Z", "name": "Ivan", "email": "ivan@example.com"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot taken", createAppointment.ErrSlotTaken, http.StatusConflict},
		{"invalid slot", createAppointment.ErrInvalidTimeSlot, http.StatusUnprocessableEntity},
		{"past booking", createAppointment.ErrPastBooking, http.StatusUnprocessableEntity},
		{"invalid input", createAppointment.ErrInvalidInput, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}
