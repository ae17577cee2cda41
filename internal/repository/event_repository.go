package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

// EventFilters narrows event listings
type EventFilters struct {
	Category     string
	UpcomingOnly bool
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	WithTx(tx *gorm.DB) EventRepository
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	FindAll(ctx context.Context, filters EventFilters) ([]*domain.Event, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementIfBelowCapacity atomically bumps current_volunteers by one only
	// while it is still below max_volunteers. Returns false when the event is
	// full (or gone), in which case no write happened.
	IncrementIfBelowCapacity(ctx context.Context, id uuid.UUID) (bool, error)
	// AdjustCapacity applies an atomic delta to current_volunteers, clamped at
	// zero. A zero delta issues no write.
	AdjustCapacity(ctx context.Context, id uuid.UUID, delta int) error
	// SetCurrentVolunteers overwrites the denormalized counter (reconciliation)
	SetCurrentVolunteers(ctx context.Context, id uuid.UUID, count int) error
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// eventRepositoryImpl is the GORM implementation of EventRepository
type eventRepositoryImpl struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *eventRepositoryImpl) WithTx(tx *gorm.DB) EventRepository {
	return &eventRepositoryImpl{db: tx}
}

// Create creates a new event
func (r *eventRepositoryImpl) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by its ID
func (r *eventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll finds events matching the filters, soonest first
func (r *eventRepositoryImpl) FindAll(ctx context.Context, filters EventFilters) ([]*domain.Event, error) {
	query := r.db.WithContext(ctx).Model(&domain.Event{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.UpcomingOnly {
		query = query.Where("starts_at >= ?", time.Now().UTC())
	}

	var events []*domain.Event
	if err := query.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByOwner finds all events owned by the given organiser
func (r *eventRepositoryImpl) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Update saves the full event record
func (r *eventRepositoryImpl) Update(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event by ID
func (r *eventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Event{}, "id = ?", id).Error
}

// IncrementIfBelowCapacity performs the commit-time capacity check and the
// increment as one conditional update.
func (r *eventRepositoryImpl) IncrementIfBelowCapacity(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ? AND current_volunteers < max_volunteers", id).
		UpdateColumn("current_volunteers", gorm.Expr("current_volunteers + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AdjustCapacity applies delta via a field-level expression, never a
// read-modify-write of the row.
func (r *eventRepositoryImpl) AdjustCapacity(ctx context.Context, id uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		UpdateColumn("current_volunteers",
			gorm.Expr("CASE WHEN current_volunteers + ? < 0 THEN 0 ELSE current_volunteers + ? END", delta, delta)).
		Error
}

// SetCurrentVolunteers overwrites the counter with a recounted value
func (r *eventRepositoryImpl) SetCurrentVolunteers(ctx context.Context, id uuid.UUID, count int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		UpdateColumn("current_volunteers", count).
		Error
}

// FindAllIDs returns the IDs of all live events
func (r *eventRepositoryImpl) FindAllIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Event{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
