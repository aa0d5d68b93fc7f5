package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/booking"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/catalog"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/medify"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/httputil"
)

type fakeBackend struct {
	response json.RawMessage
	err      error
}

func (f *fakeBackend) CreateAppointment(_ context.Context, _, _ string, _ *medify.CreateAppointmentRequest) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Doctors(_ context.Context, _ string) ([]model.Doctor, error) {
	return []model.Doctor{{ID: 3, Name: "Dr. Rao", Experience: 5}}, nil
}

func (fakeCatalog) Slots(_ context.Context, _ string, _ int64) ([]model.Slot, error) {
	return []model.Slot{{
		ID: 9, DoctorID: 3, SlotDate: "2024-05-01",
		StartTime: "09:00:00", EndTime: "09:30:00",
		Capacity: 2, Booked: 1,
	}}, nil
}

func setupRouter(backend *fakeBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	idem := idempotency.NewManager(idempotency.NewMemoryStore(), time.Hour, nil)
	svc := booking.NewService(backend, catalog.NewService(fakeCatalog{}, time.Minute), idem, nil, nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postBooking(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingSuccess(t *testing.T) {
	r := setupRouter(&fakeBackend{response: json.RawMessage(`{"id": 101}`)})

	w := postBooking(t, r, `{"patient_id": "p1", "doctor_id": 3, "slot_id": 9, "reason": "checkup"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    model.BookingResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "101", resp.Data.Appointment.ID)
	assert.Equal(t, "01/05/2024", resp.Data.Appointment.Date)
	assert.Equal(t, "100", resp.Data.Price)
}

func TestCreateBookingMissingFields(t *testing.T) {
	r := setupRouter(&fakeBackend{})

	w := postBooking(t, r, `{"doctor_id": 3}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "missing or invalid fields")
}

func TestCreateBookingMalformedBody(t *testing.T) {
	r := setupRouter(&fakeBackend{})

	w := postBooking(t, r, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingDuplicateConflict(t *testing.T) {
	r := setupRouter(&fakeBackend{err: apperrors.Rejected("duplicate appointment", nil)})

	w := postBooking(t, r, `{"patient_id": "p1", "doctor_id": 3, "slot_id": 9, "reason": "checkup"}`)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "duplicate_submission", resp.Error.Code)
}

func TestCreateBookingUpstreamDown(t *testing.T) {
	r := setupRouter(&fakeBackend{err: apperrors.Network(assert.AnError)})

	w := postBooking(t, r, `{"patient_id": "p1", "doctor_id": 3, "slot_id": 9, "reason": "checkup"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
