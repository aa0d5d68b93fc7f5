package medify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(Config{BaseURL: srv.URL}), srv
}

func TestDoctorsUnwrapsEnvelope(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/doctors", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"doctors": [{"id": 3, "name": "Dr. Rao", "experience": 5}]}`))
	})
	defer srv.Close()

	doctors, err := client.Doctors(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, int64(3), doctors[0].ID)
	assert.Equal(t, "Dr. Rao", doctors[0].Name)
}

func TestSlotsQueriesByDoctor(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/doctors/slots", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("doctorId"))
		w.Write([]byte(`{"slots": [{"id": 9, "slot_date": "2024-05-01", "capacity": 2, "booked": 1}]}`))
	})
	defer srv.Close()

	slots, err := client.Slots(context.Background(), "tok", 3)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(9), slots[0].ID)
	assert.True(t, slots[0].Bookable())
}

func TestAppointmentsScopedByPatientHeader(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p1", r.Header.Get("patientId"))
		w.Write([]byte(`{"appointments": [{"id": 101, "status": "PENDING"}]}`))
	})
	defer srv.Close()

	appts, err := client.Appointments(context.Background(), "tok", "p1")
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "101", appts[0].ID.String())
}

func TestCreateAppointmentSendsIdempotencyKey(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "idemp-token", r.Header.Get(HeaderIdempotencyKey))

		var req CreateAppointmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(3), req.DoctorID)
		assert.Equal(t, "checkup", req.Reason)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 101}`))
	})
	defer srv.Close()

	raw, err := client.CreateAppointment(context.Background(), "tok", "idemp-token", &CreateAppointmentRequest{
		DoctorID:  3,
		SlotID:    9,
		PatientID: "p1",
		Reason:    "checkup",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 101}`, string(raw))
}

func TestInitiateTransactionSendsAppointmentHeader(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/initiateTransaction", r.URL.Path)
		assert.Equal(t, "42", r.Header.Get("appointment_id"))
		w.Write([]byte(`{"key": "k", "txnid": "t", "amount": "100", "hash": "h"}`))
	})
	defer srv.Close()

	intent, err := client.InitiateTransaction(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.Equal(t, "t", intent.TxnID)
}

func TestNotifyPaymentSuccessForwardsForm(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments/success/app", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "txn-42", r.PostForm.Get("txnid"))
		assert.Equal(t, "success", r.PostForm.Get("status"))
	})
	defer srv.Close()

	err := client.NotifyPaymentSuccess(context.Background(), url.Values{
		"txnid":  {"txn-42"},
		"status": {"success"},
	})
	require.NoError(t, err)
}

func TestNotifyPaymentSuccessRejected(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "unknown transaction"}`))
	})
	defer srv.Close()

	err := client.NotifyPaymentSuccess(context.Background(), url.Values{"txnid": {"bogus"}})
	assert.Equal(t, apperrors.ErrRejected, apperrors.CodeOf(err))
}

func TestRejectionCarriesBackendMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "duplicate appointment"}`))
	})
	defer srv.Close()

	_, err := client.CreateAppointment(context.Background(), "tok", "idemp-token", &CreateAppointmentRequest{})
	assert.Equal(t, apperrors.ErrRejected, apperrors.CodeOf(err))
	assert.Equal(t, "duplicate appointment", apperrors.MessageOf(err))
}

func TestRejectionFallsBackToErrorField(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "slot is required"}`))
	})
	defer srv.Close()

	_, err := client.Doctors(context.Background(), "tok")
	assert.Equal(t, "slot is required", apperrors.MessageOf(err))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refused connection

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Doctors(context.Background(), "tok")
	assert.Equal(t, apperrors.ErrNetwork, apperrors.CodeOf(err))
}

func TestRejectionMessagePlainText(t *testing.T) {
	assert.Equal(t, "backend exploded", rejectionMessage([]byte("backend exploded"), 500))
	assert.Equal(t, "request failed (500)", rejectionMessage(nil, 500))
}
