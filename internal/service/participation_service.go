package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/metrics"
	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/response"
)

// ParticipationService drives the signup lifecycle:
// none -> signed_up -> {withdrawn, attended}, withdrawn -> signed_up.
// Every transition across the signed_up boundary and its capacity adjustment
// commit in a single database transaction, with the capacity precondition
// re-checked at commit time by a conditional increment.
type ParticipationService interface {
	SignUp(ctx context.Context, userID, eventID uuid.UUID) (*dto.SignUpResponse, error)
	Withdraw(ctx context.Context, userID, eventID, participationID uuid.UUID) (*dto.ParticipationResponse, error)
	SetStatus(ctx context.Context, callerID, participationID uuid.UUID, next domain.ParticipationStatus) (*dto.ParticipationResponse, error)
	GetMySignups(ctx context.Context, userID uuid.UUID) ([]*dto.MySignupResponse, error)
}

// participationServiceImpl is the implementation of ParticipationService
type participationServiceImpl struct {
	tx                repository.Transactor
	participationRepo repository.ParticipationRepository
	eventRepo         repository.EventRepository
	publisher         realtime.Publisher
	metrics           *metrics.Metrics
	logger            *zap.Logger
}

// NewParticipationService creates a new instance of ParticipationService
func NewParticipationService(
	tx repository.Transactor,
	participationRepo repository.ParticipationRepository,
	eventRepo repository.EventRepository,
	publisher realtime.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) ParticipationService {
	return &participationServiceImpl{
		tx:                tx,
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		publisher:         publisher,
		metrics:           m,
		logger:            logger,
	}
}

// SignUp creates (or reinstates) a signed_up participation for the caller.
// The remaining-capacity check happens inside the transaction as a conditional
// increment, so two concurrent signups for the last spot cannot both commit.
func (s *participationServiceImpl) SignUp(ctx context.Context, userID, eventID uuid.UUID) (*dto.SignUpResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Sign up requires an authenticated user", "")
	}

	var (
		participation *domain.Participation
		event         *domain.Event
	)

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		participationRepo := s.participationRepo.WithTx(tx)

		if _, err := eventRepo.FindByID(ctx, eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
			}
			return err
		}

		existing, err := participationRepo.FindByEventAndUser(ctx, eventID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			switch existing.Status {
			case domain.ParticipationSignedUp:
				return response.NewAppError(response.ErrCodeAlreadyExists, "Already signed up for this event", "")
			case domain.ParticipationAttended:
				return response.NewAppError(response.ErrCodeValidation, "Participation already recorded as attended", "")
			}
		}

		incremented, err := eventRepo.IncrementIfBelowCapacity(ctx, eventID)
		if err != nil {
			return err
		}
		if !incremented {
			return response.NewAppError(response.ErrCodeCapacityExceeded, "Event has no spots left", "")
		}

		if existing != nil {
			// withdrawn -> signed_up reinstatement keeps the history row
			if err := participationRepo.UpdateStatus(ctx, existing.ID, domain.ParticipationSignedUp); err != nil {
				return err
			}
			existing.Status = domain.ParticipationSignedUp
			participation = existing
		} else {
			participation = &domain.Participation{
				EventID: eventID,
				UserID:  userID,
				Status:  domain.ParticipationSignedUp,
			}
			if err := participationRepo.Create(ctx, participation); err != nil {
				// A racing first-time signup can slip past the existence
				// check and hit the (event, user) unique index here.
				if isDuplicateKeyError(err) {
					return response.NewAppError(response.ErrCodeAlreadyExists, "Already signed up for this event", "")
				}
				return err
			}
		}

		// Re-read inside the transaction so the response carries the count
		// this commit produced
		event, err = eventRepo.FindByID(ctx, eventID)
		return err
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) && appErr.Code == response.ErrCodeCapacityExceeded {
			s.recordCapacityExceeded()
		}
		return nil, err
	}

	s.recordSignup()
	s.publishChange(ctx, event, realtime.ChangeParticipation)

	return &dto.SignUpResponse{
		Participation:     dto.NewParticipationResponse(participation),
		CurrentVolunteers: event.CurrentVolunteers,
	}, nil
}

// Withdraw moves the caller's participation from signed_up to withdrawn and
// releases its spot. Withdrawing an already-withdrawn participation is a no-op
// so a retried request can never decrement the counter twice.
func (s *participationServiceImpl) Withdraw(ctx context.Context, userID, eventID, participationID uuid.UUID) (*dto.ParticipationResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Withdrawal requires an authenticated user", "")
	}

	var (
		participation *domain.Participation
		event         *domain.Event
		changed       bool
	)

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		participationRepo := s.participationRepo.WithTx(tx)

		var err error
		participation, err = participationRepo.FindByID(ctx, participationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Participation not found", "")
			}
			return err
		}

		if participation.UserID != userID {
			return response.NewAppError(response.ErrCodeForbidden, "Participation belongs to another user", "")
		}
		if participation.EventID != eventID {
			return response.NewAppError(response.ErrCodeValidation, "Participation does not belong to this event", "")
		}

		if participation.Status != domain.ParticipationSignedUp {
			// Already withdrawn (or attended); nothing to release
			return nil
		}

		if err := participationRepo.UpdateStatus(ctx, participationID, domain.ParticipationWithdrawn); err != nil {
			return err
		}
		participation.Status = domain.ParticipationWithdrawn

		if err := eventRepo.AdjustCapacity(ctx, eventID, -1); err != nil {
			return err
		}
		changed = true

		event, err = eventRepo.FindByID(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.recordWithdrawal()
		s.publishChange(ctx, event, realtime.ChangeParticipation)
	}

	resp := dto.NewParticipationResponse(participation)
	return &resp, nil
}

// SetStatus is the organiser roster action: it writes an arbitrary lifecycle
// transition on one participation and applies the capacity delta it causes.
// Only the event owner may call it; a transition into signed_up re-validates
// remaining capacity at commit time.
func (s *participationServiceImpl) SetStatus(ctx context.Context, callerID, participationID uuid.UUID, next domain.ParticipationStatus) (*dto.ParticipationResponse, error) {
	if callerID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Roster management requires an authenticated user", "")
	}
	if !next.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown participation status", string(next))
	}

	var (
		participation *domain.Participation
		event         *domain.Event
	)

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		participationRepo := s.participationRepo.WithTx(tx)

		var err error
		participation, err = participationRepo.FindByID(ctx, participationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Participation not found", "")
			}
			return err
		}

		event, err = eventRepo.FindByID(ctx, participation.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
			}
			return err
		}

		if event.OwnerID != callerID {
			return response.NewAppError(response.ErrCodeForbidden, "Only the event owner may manage the roster", "")
		}

		if participation.Status == next {
			return response.NewAppError(response.ErrCodeValidation, "Participation is already in the requested status", "")
		}

		delta := participation.CapacityDelta(next)

		if delta > 0 {
			incremented, err := eventRepo.IncrementIfBelowCapacity(ctx, event.ID)
			if err != nil {
				return err
			}
			if !incremented {
				return response.NewAppError(response.ErrCodeCapacityExceeded, "Event has no spots left", "")
			}
		}

		if err := participationRepo.UpdateStatus(ctx, participationID, next); err != nil {
			return err
		}
		participation.Status = next

		if delta < 0 {
			if err := eventRepo.AdjustCapacity(ctx, event.ID, delta); err != nil {
				return err
			}
		}

		event, err = eventRepo.FindByID(ctx, event.ID)
		return err
	})
	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) && appErr.Code == response.ErrCodeCapacityExceeded {
			s.recordCapacityExceeded()
		}
		return nil, err
	}

	s.publishChange(ctx, event, realtime.ChangeParticipation)

	resp := dto.NewParticipationResponse(participation)
	return &resp, nil
}

// GetMySignups returns the caller's participation history joined with events
func (s *participationServiceImpl) GetMySignups(ctx context.Context, userID uuid.UUID) ([]*dto.MySignupResponse, error) {
	if userID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Listing signups requires an authenticated user", "")
	}

	participations, err := s.participationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch signups", err.Error())
	}

	responses := make([]*dto.MySignupResponse, 0, len(participations))
	for _, p := range participations {
		item := &dto.MySignupResponse{
			Participation: dto.NewParticipationResponse(p),
		}
		if p.Event.ID != uuid.Nil {
			item.Event = dto.NewEventResponse(&p.Event)
		}
		responses = append(responses, item)
	}
	return responses, nil
}

// publishChange fans the latest event snapshot out to subscribers, best effort
func (s *participationServiceImpl) publishChange(ctx context.Context, event *domain.Event, kind realtime.ChangeKind) {
	if event == nil {
		return
	}
	_ = s.publisher.Publish(ctx, realtime.Change{
		EventID:           event.ID,
		Kind:              kind,
		CurrentVolunteers: event.CurrentVolunteers,
		MaxVolunteers:     event.MaxVolunteers,
		At:                time.Now().UTC(),
	})
}

func (s *participationServiceImpl) recordSignup() {
	if s.metrics != nil {
		s.metrics.IncrementSignups()
	}
}

func (s *participationServiceImpl) recordWithdrawal() {
	if s.metrics != nil {
		s.metrics.IncrementWithdrawals()
	}
}

func (s *participationServiceImpl) recordCapacityExceeded() {
	if s.metrics != nil {
		s.metrics.IncrementCapacityExceeded()
	}
}
