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

// CommentService maintains the append/delete comment log of an event
type CommentService interface {
	AddComment(ctx context.Context, userID, eventID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, eventID uuid.UUID) ([]*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	eventRepo   repository.EventRepository
	publisher   realtime.Publisher
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	eventRepo repository.EventRepository,
	publisher realtime.Publisher,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
	}
}

// AddComment appends a comment to an event
func (s *commentServiceImpl) AddComment(ctx context.Context, userID, eventID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Commenting requires an authenticated user", "")
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	comment := &domain.Comment{
		EventID: eventID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	_ = s.publisher.Publish(ctx, realtime.Change{
		EventID:           event.ID,
		Kind:              realtime.ChangeComment,
		CurrentVolunteers: event.CurrentVolunteers,
		MaxVolunteers:     event.MaxVolunteers,
		At:                time.Now().UTC(),
	})

	return dto.NewCommentResponse(comment), nil
}

// GetComments lists an event's comments, oldest first
func (s *commentServiceImpl) GetComments(ctx context.Context, eventID uuid.UUID) ([]*dto.CommentResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	comments, err := s.commentRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = dto.NewCommentResponse(comment)
	}
	return responses, nil
}

// DeleteComment removes a comment; only its author may do so
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load comment", err.Error())
	}

	if comment.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the comment author may delete it", "")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}
	return nil
}
