package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.AppUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AppUser, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.AppUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AppUser, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error
}

// userRepositoryImpl is the GORM implementation of UserRepository
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create creates a new user
func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by their ID
func (r *userRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.AppUser, error) {
	var user domain.AppUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs finds users by their IDs; missing IDs are simply absent from the result
func (r *userRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.AppUser, error) {
	if len(ids) == 0 {
		return []*domain.AppUser{}, nil
	}

	var users []*domain.AppUser
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail finds a user by email
func (r *userRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	var user domain.AppUser
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole switches a user between the volunteer and organiser roles
func (r *userRepositoryImpl) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&domain.AppUser{}).
		Where("id = ?", id).
		Update("role", role).
		Error
}
