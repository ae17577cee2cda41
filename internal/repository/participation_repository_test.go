package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

func TestParticipationRepository_UniquePerEventAndUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	user := createTestUser(t, db, "ana@example.org")
	event := createTestEvent(t, db, owner.ID, 5, 0)

	first := &domain.Participation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		EventID:   event.ID,
		UserID:    user.ID,
		Status:    domain.ParticipationSignedUp,
	}
	require.NoError(t, repo.Create(ctx, first))

	duplicate := &domain.Participation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		EventID:   event.ID,
		UserID:    user.ID,
		Status:    domain.ParticipationSignedUp,
	}
	assert.Error(t, repo.Create(ctx, duplicate))
}

func TestParticipationRepository_FindByEventAndUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	user := createTestUser(t, db, "ana@example.org")
	event := createTestEvent(t, db, owner.ID, 5, 0)

	created := createTestParticipation(t, db, event.ID, user.ID, domain.ParticipationWithdrawn)

	found, err := repo.FindByEventAndUser(ctx, event.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, domain.ParticipationWithdrawn, found.Status)

	_, err = repo.FindByEventAndUser(ctx, event.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestParticipationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	user := createTestUser(t, db, "ana@example.org")
	event := createTestEvent(t, db, owner.ID, 5, 0)
	p := createTestParticipation(t, db, event.ID, user.ID, domain.ParticipationSignedUp)

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, domain.ParticipationAttended))

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipationAttended, reloaded.Status)
}

func TestParticipationRepository_CountByEventAndStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	event := createTestEvent(t, db, owner.ID, 10, 0)

	for i, status := range []domain.ParticipationStatus{
		domain.ParticipationSignedUp,
		domain.ParticipationSignedUp,
		domain.ParticipationWithdrawn,
		domain.ParticipationAttended,
	} {
		user := createTestUser(t, db, "user"+string(rune('a'+i))+"@example.org")
		createTestParticipation(t, db, event.ID, user.ID, status)
	}

	count, err := repo.CountByEventAndStatus(ctx, event.ID, domain.ParticipationSignedUp)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByEventAndStatus(ctx, event.ID, domain.ParticipationAttended)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestParticipationRepository_FindByUserID_PreloadsEvent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	user := createTestUser(t, db, "ana@example.org")
	event := createTestEvent(t, db, owner.ID, 5, 0)
	createTestParticipation(t, db, event.ID, user.ID, domain.ParticipationSignedUp)

	participations, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, participations, 1)
	assert.Equal(t, event.ID, participations[0].Event.ID)
	assert.Equal(t, event.Title, participations[0].Event.Title)
}

func TestParticipationRepository_DeleteByEventID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewParticipationRepository(db)
	owner := createTestUser(t, db, "owner@example.org")
	user := createTestUser(t, db, "ana@example.org")
	event := createTestEvent(t, db, owner.ID, 5, 0)
	other := createTestEvent(t, db, owner.ID, 5, 0)
	createTestParticipation(t, db, event.ID, user.ID, domain.ParticipationSignedUp)
	kept := createTestParticipation(t, db, other.ID, user.ID, domain.ParticipationSignedUp)

	require.NoError(t, repo.DeleteByEventID(ctx, event.ID))

	remaining, err := repo.FindByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = repo.FindByID(ctx, kept.ID)
	assert.NoError(t, err)
}
