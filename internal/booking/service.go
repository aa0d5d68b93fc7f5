package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/catalog"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/medify"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	"github.com/DIVIJ08070/doctor-appointment-app/internal/payment"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

// Backend is the slice of the upstream client the submitter needs.
type Backend interface {
	CreateAppointment(ctx context.Context, token, idempotencyKey string, req *medify.CreateAppointmentRequest) (json.RawMessage, error)
}

// Notifier delivers the post-booking confirmation. Implementations must
// be safe to call from a goroutine; delivery failures are logged, never
// surfaced to the booking flow.
type Notifier interface {
	BookingConfirmed(email string, view model.AppointmentView)
}

// Service owns the booking submission workflow: precondition checks,
// idempotent submission, and outcome classification. No automatic retry
// is performed; the caller re-submits and the stored token is reused
// unless it was cleared.
type Service struct {
	backend  Backend
	catalog  *catalog.Service
	idem     *idempotency.Manager
	notifier Notifier
	metrics  *metrics.Metrics
}

func NewService(backend Backend, cat *catalog.Service, idem *idempotency.Manager, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		backend:  backend,
		catalog:  cat,
		idem:     idem,
		notifier: notifier,
		metrics:  m,
	}
}

// SubmitParams carries the caller identity alongside the booking request.
type SubmitParams struct {
	Token        string
	AccountEmail string
	Request      *model.BookingRequest
}

// Submit runs the full booking workflow. The returned error is always an
// AppError whose code classifies the outcome: ErrValidation, ErrStaleSlot,
// ErrDuplicate, ErrRejected or ErrNetwork.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*model.BookingResult, error) {
	start := time.Now()
	result, err := s.submit(ctx, params)
	if s.metrics != nil {
		s.metrics.BookingLatency.Observe(time.Since(start).Seconds())
		s.metrics.BookingsTotal.WithLabelValues(string(outcomeOf(err))).Inc()
	}
	return result, err
}

func (s *Service) submit(ctx context.Context, params SubmitParams) (*model.BookingResult, error) {
	req := params.Request

	// Preconditions, checked before any network call to the create
	// endpoint.
	if err := validate(req); err != nil {
		return nil, err
	}
	req.Reason = strings.TrimSpace(req.Reason)
	req.Notes = strings.TrimSpace(req.Notes)

	doctor, err := s.findDoctor(ctx, params.Token, req.DoctorID)
	if err != nil {
		return nil, err
	}

	slot, err := s.findSlot(ctx, params.Token, req.DoctorID, req.SlotID)
	if err != nil {
		return nil, err
	}

	// Final availability check against the most recent snapshot. A loss
	// here means the caller must re-fetch slots before another attempt.
	if !slot.Bookable() {
		s.catalog.InvalidateSlots(params.Token, req.DoctorID)
		if s.metrics != nil {
			s.metrics.StaleSlotsDetected.Inc()
		}
		return nil, apperrors.StaleSlot(req.SlotID)
	}

	token, err := s.idem.GetOrCreateKey(ctx, req.PatientID, req.SlotID)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	raw, err := s.backend.CreateAppointment(ctx, params.Token, token, &medify.CreateAppointmentRequest{
		DoctorID:  req.DoctorID,
		SlotID:    req.SlotID,
		PatientID: req.PatientID,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, s.classifyFailure(ctx, req, err)
	}

	// Definitive success: the pair's token must not leak into a future,
	// genuinely new attempt.
	if clearErr := s.idem.ClearKey(ctx, req.PatientID, req.SlotID); clearErr != nil {
		log.Warn().Err(clearErr).Str("patient_id", req.PatientID).Int64("slot_id", req.SlotID).
			Msg("failed to clear idempotency token after successful booking")
	}
	s.catalog.InvalidateSlots(params.Token, req.DoctorID)

	view := Normalize(raw, Selection{
		DoctorID:  req.DoctorID,
		SlotID:    req.SlotID,
		PatientID: req.PatientID,
		SlotDate:  slot.SlotDate,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	})

	if s.notifier != nil && params.AccountEmail != "" {
		go s.notifier.BookingConfirmed(params.AccountEmail, view)
	}

	return &model.BookingResult{
		Appointment: view,
		Price:       payment.Quote(doctor),
	}, nil
}

func validate(req *model.BookingRequest) error {
	switch {
	case req == nil:
		return apperrors.Validation("booking request is required")
	case req.PatientID == "":
		return apperrors.Validation("patient is required")
	case req.DoctorID == 0:
		return apperrors.Validation("doctor is required")
	case req.SlotID == 0:
		return apperrors.Validation("slot is required")
	case strings.TrimSpace(req.Reason) == "":
		return apperrors.Validation("reason is required")
	}
	return nil
}

func (s *Service) findDoctor(ctx context.Context, token string, doctorID int64) (*model.Doctor, error) {
	doctors, err := s.catalog.LoadDoctors(ctx, token)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == doctorID {
			return &doctors[i], nil
		}
	}
	return nil, apperrors.Validation("unknown doctor")
}

func (s *Service) findSlot(ctx context.Context, token string, doctorID, slotID int64) (*model.Slot, error) {
	slots, err := s.catalog.LoadSlots(ctx, token, doctorID)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, apperrors.Validation("unknown slot for this doctor")
}

// classifyFailure decides the token's fate and the outcome kind. The
// token is cleared on any definitive terminal response (explicit
// rejection, including a duplicate signal) and kept on ambiguous or
// network failure so a retry replays the same token.
func (s *Service) classifyFailure(ctx context.Context, req *model.BookingRequest, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return apperrors.NewInternal(err)
	}

	switch appErr.Code {
	case apperrors.ErrNetwork:
		return appErr
	case apperrors.ErrRejected:
		if clearErr := s.idem.ClearKey(ctx, req.PatientID, req.SlotID); clearErr != nil {
			log.Warn().Err(clearErr).Str("patient_id", req.PatientID).Int64("slot_id", req.SlotID).
				Msg("failed to clear idempotency token after rejection")
		}
		if isDuplicateSignal(appErr.Message) {
			return apperrors.Duplicate("this appointment appears to have already been submitted")
		}
		return appErr
	default:
		return appErr
	}
}

// isDuplicateSignal detects idempotency replay by message content. The
// backend has no structured duplicate indicator; message text is the
// only signal it exposes.
func isDuplicateSignal(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "duplicate") || strings.Contains(message, "idempotency")
}

func outcomeOf(err error) model.Outcome {
	if err == nil {
		return model.OutcomeCreated
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrDuplicate:
		return model.OutcomeDuplicate
	case apperrors.ErrStaleSlot:
		return model.OutcomeStaleSlot
	default:
		return model.OutcomeFailed
	}
}
