package idempotency

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

// Manager derives and persists a stable token per (patient, slot) pair so
// a retried submission does not double-book. Tokens live until a
// definitive terminal response clears them, bounded by ttl.
type Manager struct {
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewManager(store Store, ttl time.Duration, m *metrics.Metrics) *Manager {
	return &Manager{
		store:   store,
		ttl:     ttl,
		metrics: m,
	}
}

// GetOrCreateKey returns the persisted token for the pair, generating and
// persisting a fresh one if absent. The token is persisted before it is
// returned so a crash between generation and submission still replays
// the same token. The store's Put is first-writer-wins, so two racing
// callers converge on whichever token was stored first.
func (m *Manager) GetOrCreateKey(ctx context.Context, patientID string, slotID int64) (string, error) {
	key := RecordKey(patientID, slotID)

	token, err := m.store.Get(ctx, key)
	if err == nil {
		m.count("get", "hit")
		return token, nil
	}
	if !errors.Is(err, ErrNotFound) {
		m.count("get", "error")
		return "", fmt.Errorf("failed to look up idempotency token: %w", err)
	}

	stored, err := m.store.Put(ctx, key, newToken(), m.ttl)
	if err != nil {
		m.count("put", "error")
		return "", fmt.Errorf("failed to persist idempotency token: %w", err)
	}

	m.count("put", "ok")
	return stored, nil
}

// ClearKey removes the persisted token. Called only after a definitive
// terminal response (confirmed success or explicit rejection); ambiguous
// failures keep the token so a retry reuses it.
func (m *Manager) ClearKey(ctx context.Context, patientID string, slotID int64) error {
	if err := m.store.Delete(ctx, RecordKey(patientID, slotID)); err != nil {
		m.count("delete", "error")
		return fmt.Errorf("failed to clear idempotency token: %w", err)
	}
	m.count("delete", "ok")
	return nil
}

func (m *Manager) count(op, result string) {
	if m.metrics != nil {
		m.metrics.IdempotencyOps.WithLabelValues(op, result).Inc()
	}
}

// newToken prefers a crypto-random UUID, falling back to a
// timestamp-plus-random string when UUID generation is unavailable.
func newToken() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("idemp-%d-%06d", time.Now().UnixNano(), rand.Intn(1000000))
	}
	return id.String()
}
