package handler

import (
	"context"

	"github.com/google/uuid"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/service"
)

// MockParticipationService is a mock implementation of service.ParticipationService
type MockParticipationService struct {
	SignUpFunc       func(ctx context.Context, userID, eventID uuid.UUID) (*dto.SignUpResponse, error)
	WithdrawFunc     func(ctx context.Context, userID, eventID, participationID uuid.UUID) (*dto.ParticipationResponse, error)
	SetStatusFunc    func(ctx context.Context, callerID, participationID uuid.UUID, next domain.ParticipationStatus) (*dto.ParticipationResponse, error)
	GetMySignupsFunc func(ctx context.Context, userID uuid.UUID) ([]*dto.MySignupResponse, error)
}

func (m *MockParticipationService) SignUp(ctx context.Context, userID, eventID uuid.UUID) (*dto.SignUpResponse, error) {
	return m.SignUpFunc(ctx, userID, eventID)
}

func (m *MockParticipationService) Withdraw(ctx context.Context, userID, eventID, participationID uuid.UUID) (*dto.ParticipationResponse, error) {
	return m.WithdrawFunc(ctx, userID, eventID, participationID)
}

func (m *MockParticipationService) SetStatus(ctx context.Context, callerID, participationID uuid.UUID, next domain.ParticipationStatus) (*dto.ParticipationResponse, error) {
	return m.SetStatusFunc(ctx, callerID, participationID, next)
}

func (m *MockParticipationService) GetMySignups(ctx context.Context, userID uuid.UUID) ([]*dto.MySignupResponse, error) {
	return m.GetMySignupsFunc(ctx, userID)
}

var _ service.ParticipationService = (*MockParticipationService)(nil)

// MockEventService is a mock implementation of service.EventService
type MockEventService struct {
	CreateEventFunc        func(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEventFunc           func(ctx context.Context, viewerID, eventID uuid.UUID) (*dto.EventDetailResponse, error)
	ListEventsFunc         func(ctx context.Context, filters repository.EventFilters) ([]*dto.EventResponse, error)
	GetMyEventsFunc        func(ctx context.Context, ownerID uuid.UUID) ([]*dto.EventResponse, error)
	UpdateEventFunc        func(ctx context.Context, callerID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEventFunc        func(ctx context.Context, callerID, eventID uuid.UUID) error
	PresignImageUploadFunc func(ctx context.Context, callerID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
}

func (m *MockEventService) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return m.CreateEventFunc(ctx, ownerID, req)
}

func (m *MockEventService) GetEvent(ctx context.Context, viewerID, eventID uuid.UUID) (*dto.EventDetailResponse, error) {
	return m.GetEventFunc(ctx, viewerID, eventID)
}

func (m *MockEventService) ListEvents(ctx context.Context, filters repository.EventFilters) ([]*dto.EventResponse, error) {
	return m.ListEventsFunc(ctx, filters)
}

func (m *MockEventService) GetMyEvents(ctx context.Context, ownerID uuid.UUID) ([]*dto.EventResponse, error) {
	return m.GetMyEventsFunc(ctx, ownerID)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, callerID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return m.UpdateEventFunc(ctx, callerID, eventID, req)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, callerID, eventID uuid.UUID) error {
	return m.DeleteEventFunc(ctx, callerID, eventID)
}

func (m *MockEventService) PresignImageUpload(ctx context.Context, callerID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	return m.PresignImageUploadFunc(ctx, callerID, req)
}

var _ service.EventService = (*MockEventService)(nil)

// MockRosterService is a mock implementation of service.RosterService
type MockRosterService struct {
	GetRosterFunc func(ctx context.Context, callerID, eventID uuid.UUID) (*dto.RosterResponse, error)
}

func (m *MockRosterService) GetRoster(ctx context.Context, callerID, eventID uuid.UUID) (*dto.RosterResponse, error) {
	return m.GetRosterFunc(ctx, callerID, eventID)
}

var _ service.RosterService = (*MockRosterService)(nil)
