package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/response"
)

func newFavoriteService(e *testEnv) FavoriteService {
	return NewFavoriteService(e.favoriteRepo, e.eventRepo, e.publisher)
}

func TestFavoriteService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("on, off, on again", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newFavoriteService(e)
		user := e.createUser(t, "ana@example.org")
		event := e.createEvent(t, e.createUser(t, "owner@example.org").ID, 10, 0)

		first, err := svc.Toggle(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.True(t, first.Favorited)
		assert.Equal(t, event.ID, first.EventID)

		second, err := svc.Toggle(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.False(t, second.Favorited)

		// The off toggle deletes the row outright, so the pair is free again
		third, err := svc.Toggle(ctx, user.ID, event.ID)
		require.NoError(t, err)
		assert.True(t, third.Favorited)

		favorites, err := e.favoriteRepo.FindByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)

		changes := e.publisher.all()
		require.Len(t, changes, 3)
		for _, c := range changes {
			assert.Equal(t, realtime.ChangeFavorite, c.Kind)
			assert.Equal(t, event.ID, c.EventID)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newFavoriteService(e)
		user := e.createUser(t, "ana@example.org")

		_, err := svc.Toggle(ctx, user.ID, uuid.New())
		assertAppErrCode(t, err, response.ErrCodeNotFound)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		e := newTestEnv(t)
		svc := newFavoriteService(e)

		_, err := svc.Toggle(ctx, uuid.Nil, uuid.New())
		assertAppErrCode(t, err, response.ErrCodeUnauthorized)
	})
}

func TestFavoriteService_GetMyFavorites(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	svc := newFavoriteService(e)
	user := e.createUser(t, "ana@example.org")
	other := e.createUser(t, "kim@example.org")
	owner := e.createUser(t, "owner@example.org")
	eventA := e.createEvent(t, owner.ID, 10, 0)
	eventB := e.createEvent(t, owner.ID, 10, 0)

	_, err := svc.Toggle(ctx, user.ID, eventA.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, user.ID, eventB.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, other.ID, eventA.ID)
	require.NoError(t, err)

	favorites, err := svc.GetMyFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	for _, f := range favorites {
		require.NotNil(t, f.Event)
		assert.Equal(t, f.EventID, f.Event.ID)
	}
}
