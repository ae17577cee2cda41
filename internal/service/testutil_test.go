package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
	"volunteer-events-api/internal/metrics"
	"volunteer-events-api/internal/realtime"
	"volunteer-events-api/internal/repository"
)

// testEnv bundles a sqlite-backed repository stack for service tests
type testEnv struct {
	db                *gorm.DB
	tx                repository.Transactor
	userRepo          repository.UserRepository
	eventRepo         repository.EventRepository
	participationRepo repository.ParticipationRepository
	favoriteRepo      repository.FavoriteRepository
	commentRepo       repository.CommentRepository
	publisher         *capturingPublisher
	metrics           *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create tables by hand for SQLite compatibility (the Postgres schema
	// uses gen_random_uuid defaults)
	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'volunteer'
		)`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			task TEXT,
			category TEXT NOT NULL,
			location TEXT,
			starts_at DATETIME NOT NULL,
			max_volunteers INTEGER NOT NULL,
			current_volunteers INTEGER NOT NULL DEFAULT 0,
			image_keys TEXT
		)`,
		`CREATE TABLE participations (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			event_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'signed_up',
			UNIQUE (event_id, user_id)
		)`,
		`CREATE TABLE favorites (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			event_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			UNIQUE (event_id, user_id)
		)`,
		`CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			event_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}

	return &testEnv{
		db:                db,
		tx:                repository.NewTransactor(db),
		userRepo:          repository.NewUserRepository(db),
		eventRepo:         repository.NewEventRepository(db),
		participationRepo: repository.NewParticipationRepository(db),
		favoriteRepo:      repository.NewFavoriteRepository(db),
		commentRepo:       repository.NewCommentRepository(db),
		publisher:         &capturingPublisher{},
		metrics:           metrics.NewWithRegistry(prometheus.NewRegistry(), nil),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *domain.AppUser {
	t.Helper()
	user := &domain.AppUser{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: "x",
		Role:         domain.RoleVolunteer,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createOrganiser(t *testing.T, email string) *domain.AppUser {
	t.Helper()
	user := e.createUser(t, email)
	if err := e.db.Model(user).Update("role", domain.RoleOrganiser).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	user.Role = domain.RoleOrganiser
	return user
}

func (e *testEnv) createEvent(t *testing.T, ownerID uuid.UUID, maxVolunteers, currentVolunteers int) *domain.Event {
	t.Helper()
	event := &domain.Event{
		BaseModel:         domain.BaseModel{ID: uuid.New()},
		OwnerID:           ownerID,
		Title:             "River cleanup",
		Category:          "environment",
		StartsAt:          time.Now().Add(48 * time.Hour),
		MaxVolunteers:     maxVolunteers,
		CurrentVolunteers: currentVolunteers,
	}
	if err := e.db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func (e *testEnv) createParticipation(t *testing.T, eventID, userID uuid.UUID, status domain.ParticipationStatus) *domain.Participation {
	t.Helper()
	p := &domain.Participation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
	}
	if err := e.db.Create(p).Error; err != nil {
		t.Fatalf("failed to create participation: %v", err)
	}
	return p
}

func (e *testEnv) eventCount(t *testing.T, eventID uuid.UUID) int {
	t.Helper()
	event, err := e.eventRepo.FindByID(context.Background(), eventID)
	if err != nil {
		t.Fatalf("failed to reload event: %v", err)
	}
	return event.CurrentVolunteers
}

// capturingPublisher records published changes for assertions
type capturingPublisher struct {
	mu      sync.Mutex
	changes []realtime.Change
}

func (p *capturingPublisher) Publish(ctx context.Context, change realtime.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, change)
	return nil
}

func (p *capturingPublisher) all() []realtime.Change {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]realtime.Change, len(p.changes))
	copy(out, p.changes)
	return out
}
