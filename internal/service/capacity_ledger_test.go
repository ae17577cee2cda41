package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"volunteer-events-api/internal/domain"
)

func newCapacityLedger(e *testEnv) CapacityLedger {
	return NewCapacityLedger(e.eventRepo, e.participationRepo, zap.NewNop())
}

func TestCapacityLedger_Adjust(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	ledger := newCapacityLedger(e)
	owner := e.createUser(t, "owner@example.org")
	event := e.createEvent(t, owner.ID, 10, 5)

	require.NoError(t, ledger.Adjust(ctx, event.ID, 2))
	assert.Equal(t, 7, e.eventCount(t, event.ID))

	require.NoError(t, ledger.Adjust(ctx, event.ID, -3))
	assert.Equal(t, 4, e.eventCount(t, event.ID))

	// Zero delta issues no write
	require.NoError(t, ledger.Adjust(ctx, event.ID, 0))
	assert.Equal(t, 4, e.eventCount(t, event.ID))

	// Decrements clamp at zero
	require.NoError(t, ledger.Adjust(ctx, event.ID, -100))
	assert.Equal(t, 0, e.eventCount(t, event.ID))
}

func TestCapacityLedger_Reconcile(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	ledger := newCapacityLedger(e)
	owner := e.createUser(t, "owner@example.org")

	// Counter drifted to 9; only signed_up rows count toward it
	event := e.createEvent(t, owner.ID, 10, 9)
	e.createParticipation(t, event.ID, e.createUser(t, "a@example.org").ID, domain.ParticipationSignedUp)
	e.createParticipation(t, event.ID, e.createUser(t, "b@example.org").ID, domain.ParticipationSignedUp)
	e.createParticipation(t, event.ID, e.createUser(t, "c@example.org").ID, domain.ParticipationWithdrawn)
	e.createParticipation(t, event.ID, e.createUser(t, "d@example.org").ID, domain.ParticipationAttended)

	count, err := ledger.Reconcile(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, e.eventCount(t, event.ID))
}

func TestCapacityLedger_ReconcileAll(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	ledger := newCapacityLedger(e)
	owner := e.createUser(t, "owner@example.org")

	drifted := e.createEvent(t, owner.ID, 10, 7)
	e.createParticipation(t, drifted.ID, e.createUser(t, "a@example.org").ID, domain.ParticipationSignedUp)
	accurate := e.createEvent(t, owner.ID, 10, 0)

	require.NoError(t, ledger.ReconcileAll(ctx))
	assert.Equal(t, 1, e.eventCount(t, drifted.ID))
	assert.Equal(t, 0, e.eventCount(t, accurate.ID))
}
