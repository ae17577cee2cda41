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

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "ana@example.org")

	found, err := repo.FindByEmail(ctx, "ana@example.org")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	a := createTestUser(t, db, "a@example.org")
	b := createTestUser(t, db, "b@example.org")
	createTestUser(t, db, "c@example.org")

	t.Run("subset", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("empty input returns empty slice", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestUserRepository_UpdateRole(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := createTestUser(t, db, "ana@example.org")
	require.NoError(t, repo.UpdateRole(ctx, user.ID, domain.RoleOrganiser))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOrganiser, reloaded.Role)
}
