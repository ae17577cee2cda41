package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"volunteer-events-api/internal/service"
)

// ReconcileJob periodically recounts active signups and repairs any drift in
// the per-event volunteer counters.
type ReconcileJob struct {
	ledger  service.CapacityLedger
	logger  *zap.Logger
	timeout time.Duration
}

// NewReconcileJob creates a new ReconcileJob instance
func NewReconcileJob(ledger service.CapacityLedger, logger *zap.Logger) *ReconcileJob {
	return &ReconcileJob{
		ledger:  ledger,
		logger:  logger,
		timeout: 2 * time.Minute,
	}
}

// Run executes one reconciliation sweep over all events
func (j *ReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	j.logger.Info("Starting capacity reconciliation sweep")

	start := time.Now()
	if err := j.ledger.ReconcileAll(ctx); err != nil {
		j.logger.Error("Capacity reconciliation sweep failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return
	}

	j.logger.Info("Capacity reconciliation sweep completed",
		zap.Duration("elapsed", time.Since(start)),
	)
}
