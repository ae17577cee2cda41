package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"volunteer-events-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *domain.AppUser {
	t.Helper()
	user := &domain.AppUser{
		BaseModel:    domain.BaseModel{ID: uuid.New()},
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: "x",
		Role:         domain.RoleVolunteer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestEvent(t *testing.T, db *gorm.DB, ownerID uuid.UUID, maxVolunteers, currentVolunteers int) *domain.Event {
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
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

func createTestParticipation(t *testing.T, db *gorm.DB, eventID, userID uuid.UUID, status domain.ParticipationStatus) *domain.Participation {
	t.Helper()
	p := &domain.Participation{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create participation: %v", err)
	}
	return p
}
