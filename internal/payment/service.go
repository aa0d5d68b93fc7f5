package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

// Backend is the slice of the upstream client the payment handoff needs.
type Backend interface {
	InitiateTransaction(ctx context.Context, token, appointmentID string) (*model.PaymentIntent, error)
	NotifyPaymentSuccess(ctx context.Context, params url.Values) error
}

type Config struct {
	GatewayURL   string
	SuccessURL   string
	FailureURL   string
	MerchantSalt string
}

// Service turns a booked appointment into a hosted-payment redirect.
// Pay-later is simply the absence of a call here: the appointment keeps
// whatever status the backend set at creation.
type Service struct {
	backend Backend
	cfg     Config
	metrics *metrics.Metrics
}

func NewService(backend Backend, cfg Config, m *metrics.Metrics) *Service {
	return &Service{
		backend: backend,
		cfg:     cfg,
		metrics: m,
	}
}

// Initiate obtains transaction parameters for the appointment and builds
// the redirect form. The response is validated before any redirect is
// offered: key, txnid, amount and hash are mandatory even on a 2xx;
// every other field defaults to empty.
func (s *Service) Initiate(ctx context.Context, token, appointmentID string) (*model.RedirectForm, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("appointment id is required")
	}

	intent, err := s.backend.InitiateTransaction(ctx, token, appointmentID)
	if err != nil {
		s.count("error")
		log.Warn().Err(err).Str("appointment_id", appointmentID).Msg("payment initiation failed")
		return nil, err
	}

	if missing := missingFields(intent); len(missing) > 0 {
		s.count("invalid_response")
		log.Warn().Strs("missing", missing).Str("appointment_id", appointmentID).
			Msg("payment initiation returned incomplete parameters")
		return nil, apperrors.InvalidPayment(strings.Join(missing, "/"))
	}

	if intent.SuccessURL == "" {
		intent.SuccessURL = s.cfg.SuccessURL
	}
	if intent.FailureURL == "" {
		intent.FailureURL = s.cfg.FailureURL
	}

	s.count("ok")
	return &model.RedirectForm{
		Action: s.cfg.GatewayURL,
		Fields: []model.FormField{
			{Name: "key", Value: intent.Key},
			{Name: "txnid", Value: intent.TxnID},
			{Name: "amount", Value: intent.Amount},
			{Name: "productinfo", Value: intent.ProductInfo},
			{Name: "firstname", Value: intent.FirstName},
			{Name: "email", Value: intent.Email},
			{Name: "phone", Value: intent.Phone},
			{Name: "udf1", Value: intent.UDF1},
			{Name: "udf2", Value: intent.UDF2},
			{Name: "udf3", Value: intent.UDF3},
			{Name: "udf4", Value: intent.UDF4},
			{Name: "udf5", Value: intent.UDF5},
			{Name: "hash", Value: intent.Hash},
			{Name: "surl", Value: intent.SuccessURL},
			{Name: "furl", Value: intent.FailureURL},
		},
	}, nil
}

func missingFields(intent *model.PaymentIntent) []string {
	var missing []string
	if intent.Key == "" {
		missing = append(missing, "key")
	}
	if intent.TxnID == "" {
		missing = append(missing, "txnid")
	}
	if intent.Amount == "" {
		missing = append(missing, "amount")
	}
	if intent.Hash == "" {
		missing = append(missing, "hash")
	}
	return missing
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.PaymentInitiations.WithLabelValues(result).Inc()
	}
}

// ReturnParams are the fields the provider posts back to the return
// pages.
type ReturnParams struct {
	Status      string
	Key         string
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Hash        string
	UDF         [5]string
}

// VerifyReturnHash checks the provider's reverse integrity hash:
// sha512(salt|status|||||||udf5|udf4|udf3|udf2|udf1|email|firstname|productinfo|amount|txnid|key).
// Verification is skipped (reported true) when no merchant salt is
// configured, since the gateway then has no shared secret to check with.
func (s *Service) VerifyReturnHash(p ReturnParams) bool {
	if s.cfg.MerchantSalt == "" {
		return true
	}

	seq := strings.Join([]string{
		s.cfg.MerchantSalt, p.Status,
		"", "", "", "", "", "",
		p.UDF[4], p.UDF[3], p.UDF[2], p.UDF[1], p.UDF[0],
		p.Email, p.FirstName, p.ProductInfo, p.Amount, p.TxnID, p.Key,
	}, "|")

	sum := sha512.Sum512([]byte(seq))
	return hex.EncodeToString(sum[:]) == strings.ToLower(p.Hash)
}

// ForwardSuccess relays a verified success postback to the backend so
// it can record the payment against the appointment. Best-effort: the
// provider is already redirecting the user and will not retry, so a
// forwarding failure is logged but never changes the return response.
func (s *Service) ForwardSuccess(ctx context.Context, params url.Values) {
	if err := s.backend.NotifyPaymentSuccess(ctx, params); err != nil {
		log.Warn().Err(err).Str("txnid", params.Get("txnid")).Msg("failed to forward payment postback")
		return
	}
	log.Info().Str("txnid", params.Get("txnid")).Msg("payment postback forwarded")
}

// RecordReturn logs a provider return-page hit.
func (s *Service) RecordReturn(outcome string, p ReturnParams, hashOK bool) {
	if s.metrics != nil {
		s.metrics.PaymentReturns.WithLabelValues(outcome).Inc()
	}
	log.Info().
		Str("outcome", outcome).
		Str("txnid", p.TxnID).
		Str("status", p.Status).
		Bool("hash_verified", hashOK).
		Msg("payment provider return")
}
