package event_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedClub(t *testing.T, repo *repository.MemoryRepository, name string) model.Club {
	t.Helper()
	club := model.Club{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateClub(context.Background(), club))
	return club
}

func seedUser(t *testing.T, repo *repository.MemoryRepository, role model.Role, clubID *uuid.UUID) model.User {
	t.Helper()
	user := model.User{
		ID:        uuid.New(),
		Name:      "Test User",
		Email:     uuid.NewString() + "@example.com",
		Role:      role,
		ClubID:    clubID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// seedEvent writes an event directly to the store so tests can control the
// status and secret without going through the manager.
func seedEvent(t *testing.T, repo *repository.MemoryRepository, clubID uuid.UUID, status model.EventStatus, mutate func(*model.Event)) model.Event {
	t.Helper()
	event := model.Event{
		ID:        uuid.New(),
		ClubID:    clubID,
		Title:     "Test Event",
		Category:  model.CategoryWorkshop,
		Venue:     "Hall A",
		Date:      time.Now().AddDate(0, 0, 7),
		Status:    status,
		Secret:    "11e4919e4c66b33f3ff48c478f0b5acfd12a49be3e26001b6b22bd10d2b8bc2a",
		CreatedBy: uuid.New(),
		CreatedAt: time.Now(),
	}
	if mutate != nil {
		mutate(&event)
	}
	require.NoError(t, repo.CreateEvent(context.Background(), event))
	return event
}

func ptrInt(v int) *int              { return &v }
func ptrTime(v time.Time) *time.Time { return &v }
func ptrString(v string) *string     { return &v }
