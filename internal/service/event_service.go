package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/metrics"
	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/response"
)

// ImageStore generates upload URLs for event images. Implemented by the S3
// client; nil-able when object storage is not configured.
type ImageStore interface {
	GenerateImageKey(eventCategory, fileExt string) (string, error)
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
}

// EventService defines the interface for event business logic
type EventService interface {
	CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, viewerID, eventID uuid.UUID) (*dto.EventDetailResponse, error)
	ListEvents(ctx context.Context, filters repository.EventFilters) ([]*dto.EventResponse, error)
	GetMyEvents(ctx context.Context, ownerID uuid.UUID) ([]*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, callerID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, callerID, eventID uuid.UUID) error
	PresignImageUpload(ctx context.Context, callerID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
}

// eventServiceImpl is the implementation of EventService
type eventServiceImpl struct {
	tx                repository.Transactor
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	favoriteRepo      repository.FavoriteRepository
	commentRepo       repository.CommentRepository
	userRepo          repository.UserRepository
	imageStore        ImageStore
	publisher         realtime.Publisher
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewEventService creates a new instance of EventService
func NewEventService(
	tx repository.Transactor,
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	favoriteRepo repository.FavoriteRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	imageStore ImageStore,
	publisher realtime.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) EventService {
	return &eventServiceImpl{
		tx:                tx,
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		favoriteRepo:      favoriteRepo,
		commentRepo:       commentRepo,
		userRepo:          userRepo,
		imageStore:        imageStore,
		publisher:         publisher,
		metrics:           m,
		logger:            logger,
	}
}

// CreateEvent creates a new event owned by the caller. Creation is the one
// capability gated by role rather than ownership: the caller must hold the
// organiser role, so volunteers switch roles before organising.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, ownerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if ownerID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Creating an event requires an authenticated user", "")
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Unknown user", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}
	if owner.Role != domain.RoleOrganiser {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Creating events requires the organiser role", "")
	}

	imageKeys, err := marshalImageKeys(req.ImageKeys)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode image keys", err.Error())
	}

	event := &domain.Event{
		OwnerID:       ownerID,
		Title:         req.Title,
		Description:   req.Description,
		Task:          req.Task,
		Category:      req.Category,
		Location:      req.Location,
		StartsAt:      req.StartsAt,
		MaxVolunteers: req.MaxVolunteers,
		ImageKeys:     imageKeys,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create event", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementEventsCreated()
	}

	return dto.NewEventResponse(event), nil
}

// GetEvent returns one event plus the viewer's own relationship to it
func (s *eventServiceImpl) GetEvent(ctx context.Context, viewerID, eventID uuid.UUID) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	detail := &dto.EventDetailResponse{EventResponse: *dto.NewEventResponse(event)}

	if viewerID != uuid.Nil {
		participation, err := s.participationRepo.FindByEventAndUser(ctx, eventID, viewerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load participation", err.Error())
		}
		if participation != nil {
			id := participation.ID
			detail.ParticipationID = &id
			detail.IsSignedUp = participation.Status == domain.ParticipationSignedUp
		}

		favorite, err := s.favoriteRepo.FindByEventAndUser(ctx, eventID, viewerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load favorite", err.Error())
		}
		detail.IsFavorite = favorite != nil
	}

	return detail, nil
}

// ListEvents returns events matching the filters
func (s *eventServiceImpl) ListEvents(ctx context.Context, filters repository.EventFilters) ([]*dto.EventResponse, error) {
	events, err := s.eventRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch events", err.Error())
	}
	return toEventResponses(events), nil
}

// GetMyEvents returns the events the caller organises
func (s *eventServiceImpl) GetMyEvents(ctx context.Context, ownerID uuid.UUID) ([]*dto.EventResponse, error) {
	if ownerID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Listing own events requires an authenticated user", "")
	}

	events, err := s.eventRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch events", err.Error())
	}
	return toEventResponses(events), nil
}

// UpdateEvent applies an owner's partial edit. MaxVolunteers may shrink below
// the current headcount; existing signups are never evicted, the event just
// reports full until withdrawals catch up.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, callerID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	if event.OwnerID != callerID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the event owner may edit it", "")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Task != nil {
		event.Task = *req.Task
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.MaxVolunteers != nil {
		event.MaxVolunteers = *req.MaxVolunteers
	}
	if req.ImageKeys != nil {
		imageKeys, err := marshalImageKeys(req.ImageKeys)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode image keys", err.Error())
		}
		event.ImageKeys = imageKeys
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update event", err.Error())
	}

	s.publishEventChange(ctx, event, false)

	return dto.NewEventResponse(event), nil
}

// DeleteEvent removes an event and cascades to its participations, favorites
// and comments in one transaction; the dependent records go first so a failure
// never leaves them orphaned.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, callerID, eventID uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	if event.OwnerID != callerID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the event owner may delete it", "")
	}

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		if err := repository.NewParticipationRepository(tx).DeleteByEventID(ctx, eventID); err != nil {
			return err
		}
		if err := repository.NewFavoriteRepository(tx).DeleteByEventID(ctx, eventID); err != nil {
			return err
		}
		if err := repository.NewCommentRepository(tx).DeleteByEventID(ctx, eventID); err != nil {
			return err
		}
		return s.eventRepo.WithTx(tx).Delete(ctx, eventID)
	})
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete event", err.Error())
	}

	s.publishEventChange(ctx, event, true)

	return nil
}

// PresignImageUpload returns an upload URL and the key to attach to an event
func (s *eventServiceImpl) PresignImageUpload(ctx context.Context, callerID uuid.UUID, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	if callerID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Image upload requires an authenticated user", "")
	}
	if s.imageStore == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Object storage is not configured", "")
	}

	ext := filepath.Ext(req.FileName)
	key, err := s.imageStore.GenerateImageKey("events", ext)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid file name", err.Error())
	}

	url, err := s.imageStore.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to presign upload", err.Error())
	}

	return &dto.PresignUploadResponse{UploadURL: url, Key: key}, nil
}

func (s *eventServiceImpl) publishEventChange(ctx context.Context, event *domain.Event, deleted bool) {
	_ = s.publisher.Publish(ctx, realtime.Change{
		EventID:           event.ID,
		Kind:              realtime.ChangeEvent,
		CurrentVolunteers: event.CurrentVolunteers,
		MaxVolunteers:     event.MaxVolunteers,
		Deleted:           deleted,
		At:                time.Now().UTC(),
	})
}

func toEventResponses(events []*domain.Event) []*dto.EventResponse {
	responses := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		responses[i] = dto.NewEventResponse(event)
	}
	return responses
}

func marshalImageKeys(keys []string) (datatypes.JSON, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
