package medify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/circuitbreaker"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

const defaultTimeout = 20 * time.Second

// HeaderIdempotencyKey carries the client-generated token the backend
// deduplicates appointment creation by.
const HeaderIdempotencyKey = "X-Idempotency-Key"

// headerAppointmentID is how the payment collaborator expects the
// appointment reference: a header value, not a body field.
const headerAppointmentID = "appointment_id"

// Client is a typed HTTP client for the remote Medify backend. All
// business rules live upstream; the client only shapes requests and
// classifies failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	metrics    *metrics.Metrics
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "medify-backend",
			MaxFailures: 5,
			Timeout:     15 * time.Second,
		}),
		metrics: cfg.Metrics,
	}
}

// Doctors fetches the doctor collection.
func (c *Client) Doctors(ctx context.Context, token string) ([]model.Doctor, error) {
	var out doctorsResponse
	if err := c.doJSON(ctx, "doctors", http.MethodGet, "/v1/doctors", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Doctors, nil
}

// Slots fetches all slots for a doctor, unfiltered by date.
func (c *Client) Slots(ctx context.Context, token string, doctorID int64) ([]model.Slot, error) {
	path := fmt.Sprintf("/v1/doctors/slots?doctorId=%d", doctorID)
	var out slotsResponse
	if err := c.doJSON(ctx, "slots", http.MethodGet, path, token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// Patients fetches the caller's patient profiles.
func (c *Client) Patients(ctx context.Context, token string) ([]model.Patient, error) {
	var out patientsResponse
	if err := c.doJSON(ctx, "patients", http.MethodGet, "/v1/patients", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Patients, nil
}

// Appointments lists appointments, optionally scoped to one patient via
// the backend's patientId header convention.
func (c *Client) Appointments(ctx context.Context, token, patientID string) ([]model.Appointment, error) {
	var headers map[string]string
	if patientID != "" {
		headers = map[string]string{"patientId": patientID}
	}
	var out appointmentsResponse
	if err := c.doJSON(ctx, "appointments", http.MethodGet, "/v1/appointments", token, headers, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// CreateAppointment submits an appointment with the idempotency token
// attached. The raw body is returned because the backend's success shape
// varies; the booking reconciler owns its interpretation.
func (c *Client) CreateAppointment(ctx context.Context, token, idempotencyKey string, req *CreateAppointmentRequest) (json.RawMessage, error) {
	headers := map[string]string{HeaderIdempotencyKey: idempotencyKey}
	return c.do(ctx, "create_appointment", http.MethodPost, "/v1/appointments", token, headers, req)
}

// NotifyPaymentSuccess forwards a provider postback verbatim so the
// backend can record the completed payment. The postback is
// form-encoded and carries no session, so the request goes out
// unauthenticated, exactly as the provider sent it.
func (c *Client) NotifyPaymentSuccess(ctx context.Context, params url.Values) error {
	const op = "payment_success"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payments/success/app", strings.NewReader(params.Encode()))
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	var resp *http.Response
	err = c.cb.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if c.metrics != nil {
		c.metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countUpstream(op, "network_error")
		log.Warn().Err(err).Str("operation", op).Msg("upstream request failed")
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countUpstream(op, "network_error")
		return apperrors.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.countUpstream(op, "rejected")
		return apperrors.Rejected(rejectionMessage(raw, resp.StatusCode), nil)
	}

	c.countUpstream(op, "ok")
	return nil
}

// InitiateTransaction asks the backend for hosted-payment redirect
// parameters for an already-created appointment.
func (c *Client) InitiateTransaction(ctx context.Context, token, appointmentID string) (*model.PaymentIntent, error) {
	headers := map[string]string{headerAppointmentID: appointmentID}
	var intent model.PaymentIntent
	if err := c.doJSON(ctx, "initiate_transaction", http.MethodPost, "/v1/payments/initiateTransaction", token, headers, struct{}{}, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path, token string, headers map[string]string, body, out interface{}) error {
	raw, err := c.do(ctx, op, method, path, token, headers, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Rejected("unexpected response from backend", err)
	}
	return nil
}

// do performs one request and classifies the result: transport failures
// map to ErrNetwork, non-2xx to ErrRejected with the backend's message.
func (c *Client) do(ctx context.Context, op, method, path, token string, headers map[string]string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewInternal(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	var resp *http.Response
	err = c.cb.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if c.metrics != nil {
		c.metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countUpstream(op, "network_error")
		log.Warn().Err(err).Str("operation", op).Str("path", path).Msg("upstream request failed")
		return nil, apperrors.Network(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countUpstream(op, "network_error")
		return nil, apperrors.Network(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.countUpstream(op, "rejected")
		return nil, apperrors.Rejected(rejectionMessage(raw, resp.StatusCode), nil)
	}

	c.countUpstream(op, "ok")
	return raw, nil
}

func (c *Client) countUpstream(op, result string) {
	if c.metrics != nil {
		c.metrics.UpstreamRequests.WithLabelValues(op, result).Inc()
	}
}

// rejectionMessage extracts the backend's error message; the body may be
// JSON ({"message": ...} or {"error": ...}) or plain text.
func rejectionMessage(raw []byte, status int) string {
	var errResp errorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil {
		if msg := errResp.text(); msg != "" {
			return msg
		}
	}
	if len(raw) > 0 && len(raw) < 512 {
		return string(raw)
	}
	return fmt.Sprintf("request failed (%d)", status)
}
