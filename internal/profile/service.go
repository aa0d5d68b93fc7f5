package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/idempotency"
	apperrors "github.com/DIVIJ08070/doctor-appointment-app/pkg/errors"
)

// Store is the same key-value abstraction idempotency records use; any
// of its implementations serves here.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, token string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

const flagValue = "complete"

func flagKey(accountID string) string {
	return "profile:complete:" + accountID
}

// Service persists the per-account "profile completed" flag that gates
// entry to the booking flow. The profile-completion screens themselves
// are an external collaborator; the gateway only stores and enforces
// the flag.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// IsComplete reports whether the account has supplied phone and
// date-of-birth.
func (s *Service) IsComplete(ctx context.Context, accountID string) (bool, error) {
	_, err := s.store.Get(ctx, flagKey(accountID))
	if errors.Is(err, idempotency.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkComplete sets the flag once phone and date-of-birth are supplied.
// The flag never expires.
func (s *Service) MarkComplete(ctx context.Context, accountID, phone, dob string) error {
	if strings.TrimSpace(phone) == "" {
		return apperrors.Validation("phone is required")
	}
	dob = strings.TrimSpace(dob)
	if dob == "" {
		return apperrors.Validation("date of birth is required")
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return apperrors.Validation("date of birth must be YYYY-MM-DD")
	}

	if _, err := s.store.Put(ctx, flagKey(accountID), flagValue, 0); err != nil {
		return apperrors.NewInternal(err)
	}
	return nil
}
