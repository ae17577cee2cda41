package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

// ParticipationRepository defines the interface for participation data access
type ParticipationRepository interface {
	WithTx(tx *gorm.DB) ParticipationRepository
	Create(ctx context.Context, participation *domain.Participation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ParticipationStatus) error
	CountByEventAndStatus(ctx context.Context, eventID uuid.UUID, status domain.ParticipationStatus) (int64, error)
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) error
}

// participationRepositoryImpl is the GORM implementation of ParticipationRepository
type participationRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new instance of ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *participationRepositoryImpl) WithTx(tx *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: tx}
}

// Create creates a new participation record
func (r *participationRepositoryImpl) Create(ctx context.Context, participation *domain.Participation) error {
	return r.db.WithContext(ctx).Create(participation).Error
}

// FindByID finds a participation by its ID
func (r *participationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.db.WithContext(ctx).First(&participation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// FindByEventAndUser finds the participation record for one (event, user) pair
func (r *participationRepositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// FindByEventID finds all participations for an event, most recent first
func (r *participationRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// FindByUserID finds a user's participations with their events preloaded
func (r *participationRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Participation, error) {
	var participations []*domain.Participation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&participations).Error; err != nil {
		return nil, err
	}
	return participations, nil
}

// UpdateStatus writes the new lifecycle status for a participation
func (r *participationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ParticipationStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// CountByEventAndStatus counts participations for an event in a given status
func (r *participationRepositoryImpl) CountByEventAndStatus(ctx context.Context, eventID uuid.UUID, status domain.ParticipationStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByEventID removes all participations of an event (event deletion cascade)
func (r *participationRepositoryImpl) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&domain.Participation{}).
		Error
}
