package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no token is persisted for a key.
var ErrNotFound = errors.New("idempotency record not found")

// Store is the small key-value abstraction idempotency records live
// behind. Implementations must honor ttl; zero ttl means no expiry.
//
// Put is first-writer-wins: when a live record already holds the key,
// the stored token is kept and returned, so two concurrent writers end
// up holding the same token. Expired records lose to the new write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, token string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Sweeper is implemented by stores that cannot expire records on their
// own and need the janitor to do it.
type Sweeper interface {
	Sweep(ctx context.Context, before time.Time) (int64, error)
}

// RecordKey derives the stable storage key for a (patient, slot) pair.
func RecordKey(patientID string, slotID int64) string {
	return fmt.Sprintf("appt:%s:slot:%d", patientID, slotID)
}
