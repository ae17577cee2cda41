package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/response"
)

func newRosterService(e *testEnv) RosterService {
	return NewRosterService(e.eventRepo, e.participationRepo, e.userRepo)
}

func (e *testEnv) setParticipationSignedUpAt(t *testing.T, id uuid.UUID, at time.Time) {
	t.Helper()
	err := e.db.Model(&domain.Participation{}).Where("id = ?", id).Update("created_at", at).Error
	require.NoError(t, err)
}

func TestRosterService_GetRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions by status with profiles", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)
		owner := e.createUser(t, "owner@example.org")
		ana := e.createUser(t, "ana@example.org")
		kim := e.createUser(t, "kim@example.org")
		lee := e.createUser(t, "lee@example.org")
		event := e.createEvent(t, owner.ID, 10, 2)

		e.createParticipation(t, event.ID, ana.ID, domain.ParticipationSignedUp)
		e.createParticipation(t, event.ID, kim.ID, domain.ParticipationWithdrawn)
		e.createParticipation(t, event.ID, lee.ID, domain.ParticipationAttended)

		roster, err := svc.GetRoster(ctx, owner.ID, event.ID)
		require.NoError(t, err)

		assert.Equal(t, event.ID, roster.EventID)
		require.Len(t, roster.Active, 1)
		require.Len(t, roster.Withdrawn, 1)
		require.Len(t, roster.Attended, 1)

		assert.Equal(t, ana.ID, roster.Active[0].UserID)
		assert.Equal(t, ana.Email, roster.Active[0].Email)
		assert.Equal(t, ana.DisplayName, roster.Active[0].DisplayName)
		assert.Equal(t, kim.ID, roster.Withdrawn[0].UserID)
		assert.Equal(t, lee.ID, roster.Attended[0].UserID)
	})

	t.Run("newest signups first", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)
		owner := e.createUser(t, "owner@example.org")
		event := e.createEvent(t, owner.ID, 10, 3)

		base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		var ids []uuid.UUID
		for i, email := range []string{"a@example.org", "b@example.org", "c@example.org"} {
			user := e.createUser(t, email)
			p := e.createParticipation(t, event.ID, user.ID, domain.ParticipationSignedUp)
			e.setParticipationSignedUpAt(t, p.ID, base.Add(time.Duration(i)*time.Hour))
			ids = append(ids, p.ID)
		}

		roster, err := svc.GetRoster(ctx, owner.ID, event.ID)
		require.NoError(t, err)
		require.Len(t, roster.Active, 3)
		assert.Equal(t, ids[2], roster.Active[0].ParticipationID)
		assert.Equal(t, ids[1], roster.Active[1].ParticipationID)
		assert.Equal(t, ids[0], roster.Active[2].ParticipationID)
	})

	t.Run("empty buckets are arrays, not null", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)
		owner := e.createUser(t, "owner@example.org")
		event := e.createEvent(t, owner.ID, 10, 0)

		roster, err := svc.GetRoster(ctx, owner.ID, event.ID)
		require.NoError(t, err)
		assert.NotNil(t, roster.Active)
		assert.NotNil(t, roster.Withdrawn)
		assert.NotNil(t, roster.Attended)
		assert.Empty(t, roster.Active)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)
		owner := e.createUser(t, "owner@example.org")
		stranger := e.createUser(t, "kim@example.org")
		event := e.createEvent(t, owner.ID, 10, 0)

		_, err := svc.GetRoster(ctx, stranger.ID, event.ID)
		assertAppErrCode(t, err, response.ErrCodeForbidden)
	})

	t.Run("unknown event", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)
		owner := e.createUser(t, "owner@example.org")

		_, err := svc.GetRoster(ctx, owner.ID, uuid.New())
		assertAppErrCode(t, err, response.ErrCodeNotFound)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newRosterService(e)

		_, err := svc.GetRoster(ctx, uuid.Nil, uuid.New())
		assertAppErrCode(t, err, response.ErrCodeUnauthorized)
	})
}
