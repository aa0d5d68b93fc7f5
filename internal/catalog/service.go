package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/DIVIJ08070/doctor-appointment-app/internal/model"
)

// Backend is the slice of the upstream client the catalog needs.
type Backend interface {
	Doctors(ctx context.Context, token string) ([]model.Doctor, error)
	Slots(ctx context.Context, token string, doctorID int64) ([]model.Slot, error)
}

// Service loads the doctor and slot catalog from the backend. Reads are
// cached for a short TTL; a load failure is always surfaced as an error,
// never as an empty catalog.
type Service struct {
	backend Backend
	cache   *gocache.Cache
	ttl     time.Duration
}

func NewService(backend Backend, ttl time.Duration) *Service {
	return &Service{
		backend: backend,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Cache entries are scoped to the bearer token: the backend may tailor
// the catalog per account, so one caller's snapshot must never serve
// another.

func doctorsCacheKey(token string) string {
	return "doctors:" + token
}

func slotsCacheKey(token string, doctorID int64) string {
	return fmt.Sprintf("slots:%s:%d", token, doctorID)
}

// LoadDoctors fetches the doctor list.
func (s *Service) LoadDoctors(ctx context.Context, token string) ([]model.Doctor, error) {
	key := doctorsCacheKey(token)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Doctor), nil
	}

	doctors, err := s.backend.Doctors(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}

	s.cache.Set(key, doctors, s.ttl)
	return doctors, nil
}

// LoadSlots fetches all slots for a doctor, unfiltered by date; date
// filtering happens client-side via FilterAvailable.
func (s *Service) LoadSlots(ctx context.Context, token string, doctorID int64) ([]model.Slot, error) {
	key := slotsCacheKey(token, doctorID)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]model.Slot), nil
	}

	slots, err := s.backend.Slots(ctx, token, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}

	s.cache.Set(key, slots, s.ttl)
	return slots, nil
}

// InvalidateSlots drops the caller's cached slot snapshot for a doctor.
// Called after a booking changes the slot's booked count upstream.
func (s *Service) InvalidateSlots(token string, doctorID int64) {
	s.cache.Delete(slotsCacheKey(token, doctorID))
}
