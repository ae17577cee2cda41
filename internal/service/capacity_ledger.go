package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/repository"
)

// CapacityLedger maintains the denormalized current_volunteers counter on an
// event. Adjustments go through atomic field-level updates; Reconcile recounts
// active participations and overwrites the counter to correct any drift.
type CapacityLedger interface {
	Adjust(ctx context.Context, eventID uuid.UUID, delta int) error
	Reconcile(ctx context.Context, eventID uuid.UUID) (int, error)
	ReconcileAll(ctx context.Context) error
}

// capacityLedgerImpl is the implementation of CapacityLedger
type capacityLedgerImpl struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	logger            *zap.Logger
}

// NewCapacityLedger creates a new instance of CapacityLedger
func NewCapacityLedger(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	logger *zap.Logger,
) CapacityLedger {
	return &capacityLedgerImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		logger:            logger,
	}
}

// Adjust applies a capacity delta. Delta 0 is a no-op and issues no write.
func (l *capacityLedgerImpl) Adjust(ctx context.Context, eventID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	return l.eventRepo.AdjustCapacity(ctx, eventID, delta)
}

// Reconcile recounts participations in signed_up status and overwrites the
// counter. Returns the corrected count.
func (l *capacityLedgerImpl) Reconcile(ctx context.Context, eventID uuid.UUID) (int, error) {
	count, err := l.participationRepo.CountByEventAndStatus(ctx, eventID, domain.ParticipationSignedUp)
	if err != nil {
		return 0, err
	}

	if err := l.eventRepo.SetCurrentVolunteers(ctx, eventID, int(count)); err != nil {
		return 0, err
	}

	return int(count), nil
}

// ReconcileAll reconciles every live event, logging and skipping failures so
// one bad event does not block the rest.
func (l *capacityLedgerImpl) ReconcileAll(ctx context.Context) error {
	ids, err := l.eventRepo.FindAllIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := l.Reconcile(ctx, id); err != nil {
			l.logger.Warn("Failed to reconcile event capacity",
				zap.String("event_id", id.String()),
				zap.Error(err),
			)
		}
	}

	return nil
}
