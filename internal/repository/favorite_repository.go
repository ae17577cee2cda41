package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *domain.Favorite) error
	FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Favorite, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) error
}

// favoriteRepositoryImpl is the GORM implementation of FavoriteRepository
type favoriteRepositoryImpl struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new instance of FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepositoryImpl{db: db}
}

// Create creates a new favorite
func (r *favoriteRepositoryImpl) Create(ctx context.Context, favorite *domain.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// FindByEventAndUser finds the favorite for one (event, user) pair
func (r *favoriteRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindByUserID finds a user's favorites with their events preloaded
func (r *favoriteRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	var favorites []*domain.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// Delete hard deletes a favorite; a toggle-off must not leave history behind
func (r *favoriteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Delete(&domain.Favorite{}, "id = ?", id).
		Error
}

// DeleteByEventID removes all favorites of an event (event deletion cascade)
func (r *favoriteRepositoryImpl) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("event_id = ?", eventID).
		Delete(&domain.Favorite{}).
		Error
}
