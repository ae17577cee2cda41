package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/response"
)

// FavoriteService maintains the bookmark presence-set: at most one favorite
// per (user, event), independent of capacity and participation.
type FavoriteService interface {
	Toggle(ctx context.Context, userID, eventID uuid.UUID) (*dto.ToggleFavoriteResponse, error)
	GetMyFavorites(ctx context.Context, userID uuid.UUID) ([]*dto.FavoriteResponse, error)
}

// favoriteServiceImpl is the implementation of FavoriteService
type favoriteServiceImpl struct {
	favoriteRepo repository.FavoriteRepository
	eventRepo    repository.EventRepository
	publisher    realtime.Publisher
}

// NewFavoriteService creates a new instance of FavoriteService
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	eventRepo repository.EventRepository,
	publisher realtime.Publisher,
) FavoriteService {
	return &favoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		eventRepo:    eventRepo,
		publisher:    publisher,
	}
}

// Toggle deletes the favorite if one exists for the pair, creates it
// otherwise. The unique (event, user) index backs the existence check, so a
// concurrent double toggle-on collapses into one row.
func (s *favoriteServiceImpl) Toggle(ctx context.Context, userID, eventID uuid.UUID) (*dto.ToggleFavoriteResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Favorites require an authenticated user", "")
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	existing, err := s.favoriteRepo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check favorite", err.Error())
	}

	favorited := false
	if existing != nil {
		if err := s.favoriteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to remove favorite", err.Error())
		}
	} else {
		favorite := &domain.Favorite{
			EventID: eventID,
			UserID:  userID,
		}
		if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
			if isDuplicateKeyError(err) {
				// Lost a toggle-on race with another session; the pair is
				// favorited either way
				favorited = true
				return &dto.ToggleFavoriteResponse{EventID: eventID, Favorited: favorited}, nil
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create favorite", err.Error())
		}
		favorited = true
	}

	_ = s.publisher.Publish(ctx, realtime.Change{
		EventID:           event.ID,
		Kind:              realtime.ChangeFavorite,
		CurrentVolunteers: event.CurrentVolunteers,
		MaxVolunteers:     event.MaxVolunteers,
		At:                time.Now().UTC(),
	})

	return &dto.ToggleFavoriteResponse{EventID: eventID, Favorited: favorited}, nil
}

// GetMyFavorites returns the caller's bookmarks with their events
func (s *favoriteServiceImpl) GetMyFavorites(ctx context.Context, userID uuid.UUID) ([]*dto.FavoriteResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Favorites require an authenticated user", "")
	}

	favorites, err := s.favoriteRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch favorites", err.Error())
	}

	responses := make([]*dto.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		item := &dto.FavoriteResponse{
			ID:        f.ID,
			EventID:   f.EventID,
			CreatedAt: f.CreatedAt,
		}
		if f.Event.ID != uuid.Nil {
			item.Event = dto.NewEventResponse(&f.Event)
		}
		responses = append(responses, item)
	}
	return responses, nil
}
