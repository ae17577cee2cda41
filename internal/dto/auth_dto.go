package dto

import (
	"github.com/google/uuid"

	"volunteer-events-api/internal/domain"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"ana@example.org"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=255" example:"Ana"`
	Password    string `json:"password" binding:"required,min=8" example:"correct horse battery"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SwitchRoleRequest represents the request to switch between volunteer and organiser
type SwitchRoleRequest struct {
	Role domain.UserRole `json:"role" binding:"required" example:"organiser"`
}

// UserResponse represents a user profile
type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role"`
}

// AuthResponse carries a signed token plus the authenticated profile
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a domain.AppUser to a UserResponse
func NewUserResponse(user *domain.AppUser) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
}
