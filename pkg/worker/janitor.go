package worker

import (
	"context"
	"time"

	"github.com/DIVIJ08070/doctor-appointment-app/pkg/logger"
	"github.com/DIVIJ08070/doctor-appointment-app/pkg/metrics"
)

// SweepStore removes expired records and reports how many went.
type SweepStore interface {
	Sweep(ctx context.Context, before time.Time) (int64, error)
}

// Janitor periodically removes expired idempotency records from stores
// that cannot expire them on their own.
type Janitor struct {
	store    SweepStore
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewJanitor(store SweepStore, interval time.Duration, m *metrics.Metrics, log *logger.Logger) *Janitor {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Janitor{
		store:    store,
		interval: interval,
		metrics:  m,
		logger:   log,
	}
}

func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	removed, err := j.store.Sweep(ctx, time.Now())
	if err != nil {
		j.logger.Error(err, "idempotency sweep failed")
		return
	}
	if j.metrics != nil {
		j.metrics.IdempotencySweeped.Add(float64(removed))
	}
	if removed > 0 {
		j.logger.Info("idempotency records sweeped", "removed", removed)
	}
}
