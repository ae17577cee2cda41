package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/dto"
	"volunteer-events-api/internal/repository"
	"volunteer-events-api/internal/response"
)

// RosterService materializes the organiser-facing participant list for one
// event by joining participation records with user profiles.
type RosterService interface {
	GetRoster(ctx context.Context, callerID, eventID uuid.UUID) (*dto.RosterResponse, error)
}

// rosterServiceImpl is the implementation of RosterService
type rosterServiceImpl struct {
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	userRepo          repository.UserRepository
}

// NewRosterService creates a new instance of RosterService
func NewRosterService(
	eventRepo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	userRepo repository.UserRepository,
) RosterService {
	return &rosterServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
	}
}

// GetRoster returns the event's participations partitioned by status into
// active/withdrawn/attended buckets, each sorted by signup time descending.
// Only the owning organiser may read it.
func (s *rosterServiceImpl) GetRoster(ctx context.Context, callerID, eventID uuid.UUID) (*dto.RosterResponse, error) {
	if callerID == uuid.Nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Roster requires an authenticated user", "")
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Event not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load event", err.Error())
	}

	if event.OwnerID != callerID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the event owner may view the roster", "")
	}

	participations, err := s.participationRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch participations", err.Error())
	}

	profiles, err := s.profileCache(ctx, participations)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch participant profiles", err.Error())
	}

	roster := &dto.RosterResponse{
		EventID:   eventID,
		Active:    []dto.RosterEntry{},
		Withdrawn: []dto.RosterEntry{},
		Attended:  []dto.RosterEntry{},
	}

	for _, p := range participations {
		entry := dto.RosterEntry{
			ParticipationID: p.ID,
			UserID:          p.UserID,
			Status:          p.Status,
			SignedUpAt:      p.CreatedAt,
		}
		if profile, ok := profiles[p.UserID]; ok {
			entry.DisplayName = profile.DisplayName
			entry.Email = profile.Email
		}

		switch p.Status {
		case domain.ParticipationSignedUp:
			roster.Active = append(roster.Active, entry)
		case domain.ParticipationWithdrawn:
			roster.Withdrawn = append(roster.Withdrawn, entry)
		case domain.ParticipationAttended:
			roster.Attended = append(roster.Attended, entry)
		}
	}

	sortRosterEntries(roster.Active)
	sortRosterEntries(roster.Withdrawn)
	sortRosterEntries(roster.Attended)

	return roster, nil
}

// profileCache batches all distinct participant ids into one lookup, so each
// profile is fetched at most once per aggregation regardless of how many
// rows share it.
func (s *rosterServiceImpl) profileCache(ctx context.Context, participations []*domain.Participation) (map[uuid.UUID]*domain.AppUser, error) {
	seen := make(map[uuid.UUID]struct{}, len(participations))
	ids := make([]uuid.UUID, 0, len(participations))
	for _, p := range participations {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cache := make(map[uuid.UUID]*domain.AppUser, len(users))
	for _, u := range users {
		cache[u.ID] = u
	}
	return cache, nil
}

// sortRosterEntries orders entries by signup time descending; zero timestamps
// sort last.
func sortRosterEntries(entries []dto.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SignedUpAt.After(entries[j].SignedUpAt)
	})
}
