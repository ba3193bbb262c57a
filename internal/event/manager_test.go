package event_test

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"clubhub/internal/event"
	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(repo *repository.MemoryRepository) *event.Manager {
	return event.NewManager(testLogger(), repo, validator.New())
}

func validParams(clubID uuid.UUID) event.CreateEventParams {
	return event.CreateEventParams{
		ClubID:   clubID,
		Title:    "Intro to Soldering",
		Category: model.CategoryWorkshop,
		Venue:    "Lab 3",
		Date:     time.Now().AddDate(0, 0, 10),
	}
}

func TestManagerCreate(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	otherClub := seedClub(t, repo, "Chess Club")

	tests := []struct {
		name       string
		actor      model.User
		clubID     uuid.UUID
		wantStatus model.EventStatus
		wantErr    error
	}{
		{
			name:       "super_admin_starts_approved",
			actor:      seedUser(t, repo, model.RoleSuperAdmin, nil),
			clubID:     club.ID,
			wantStatus: model.EventStatusApproved,
		},
		{
			name:       "club_admin_starts_pending",
			actor:      seedUser(t, repo, model.RoleClubAdmin, &club.ID),
			clubID:     club.ID,
			wantStatus: model.EventStatusPending,
		},
		{
			name:    "club_admin_cannot_create_for_other_club",
			actor:   seedUser(t, repo, model.RoleClubAdmin, &club.ID),
			clubID:  otherClub.ID,
			wantErr: event.ErrForbidden,
		},
		{
			name:    "student_cannot_create",
			actor:   seedUser(t, repo, model.RoleStudent, nil),
			clubID:  club.ID,
			wantErr: event.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := manager.Create(context.Background(), tt.actor, validParams(tt.clubID))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, created.Status)
			assert.Equal(t, tt.actor.ID, created.CreatedBy)
		})
	}
}

func TestManagerCreateGeneratesUniqueSecret(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	admin := seedUser(t, repo, model.RoleSuperAdmin, nil)

	first, err := manager.Create(context.Background(), admin, validParams(club.ID))
	require.NoError(t, err)
	second, err := manager.Create(context.Background(), admin, validParams(club.ID))
	require.NoError(t, err)

	assert.Len(t, first.Secret, 64)
	_, err = hex.DecodeString(first.Secret)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestManagerCreateValidation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	admin := seedUser(t, repo, model.RoleSuperAdmin, nil)

	tests := []struct {
		name   string
		mutate func(*event.CreateEventParams)
	}{
		{"missing_title", func(p *event.CreateEventParams) { p.Title = "" }},
		{"unknown_category", func(p *event.CreateEventParams) { p.Category = "concert" }},
		{"zero_seat_limit", func(p *event.CreateEventParams) { p.SeatLimit = ptrInt(0) }},
		{"missing_date", func(p *event.CreateEventParams) { p.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams(club.ID)
			tt.mutate(&params)
			_, err := manager.Create(context.Background(), admin, params)
			assert.True(t, validator.IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestManagerCreateUnknownClub(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	admin := seedUser(t, repo, model.RoleSuperAdmin, nil)

	_, err := manager.Create(context.Background(), admin, validParams(uuid.New()))
	assert.ErrorIs(t, err, repository.ErrClubNotFound)
}

func TestManagerUpdate(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	admin := seedUser(t, repo, model.RoleClubAdmin, &club.ID)
	seeded := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)

	updated, err := manager.Update(context.Background(), admin, seeded.ID, event.UpdateEventParams{
		Title:     ptrString("Renamed Event"),
		Venue:     ptrString("Hall B"),
		SeatLimit: ptrInt(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Event", updated.Title)
	assert.Equal(t, "Hall B", updated.Venue)
	assert.Equal(t, 40, *updated.SeatLimit)

	// The approval status and the secret survive any update.
	assert.Equal(t, seeded.Status, updated.Status)
	assert.Equal(t, seeded.Secret, updated.Secret)
}

func TestManagerUpdateScope(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	otherClub := seedClub(t, repo, "Chess Club")
	outsider := seedUser(t, repo, model.RoleClubAdmin, &otherClub.ID)
	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, nil)

	_, err := manager.Update(context.Background(), outsider, seeded.ID, event.UpdateEventParams{Title: ptrString("Hijacked")})
	assert.ErrorIs(t, err, event.ErrForbidden)

	_, err = manager.Update(context.Background(), outsider, uuid.New(), event.UpdateEventParams{})
	assert.ErrorIs(t, err, repository.ErrEventNotFound)
}

func TestManagerDecide(t *testing.T) {
	repo := repository.NewMemoryRepository()
	manager := newManager(repo)
	club := seedClub(t, repo, "Electronics Club")
	superAdmin := seedUser(t, repo, model.RoleSuperAdmin, nil)
	clubAdmin := seedUser(t, repo, model.RoleClubAdmin, &club.ID)

	t.Run("only_super_admin_decides", func(t *testing.T) {
		pending := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)
		_, err := manager.Decide(context.Background(), clubAdmin, pending.ID, model.EventStatusApproved)
		assert.ErrorIs(t, err, event.ErrForbidden)
	})

	t.Run("rejects_non_decision_status", func(t *testing.T) {
		pending := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)
		_, err := manager.Decide(context.Background(), superAdmin, pending.ID, model.EventStatusPending)
		assert.ErrorIs(t, err, event.ErrInvalidDecision)
	})

	t.Run("approve_then_flip_refused", func(t *testing.T) {
		pending := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)
		decided, err := manager.Decide(context.Background(), superAdmin, pending.ID, model.EventStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, model.EventStatusApproved, decided.Status)

		_, err = manager.Decide(context.Background(), superAdmin, pending.ID, model.EventStatusRejected)
		assert.ErrorIs(t, err, repository.ErrEventDecided)
	})

	t.Run("reject_pending", func(t *testing.T) {
		pending := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)
		decided, err := manager.Decide(context.Background(), superAdmin, pending.ID, model.EventStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, model.EventStatusRejected, decided.Status)
	})

	t.Run("unknown_event", func(t *testing.T) {
		_, err := manager.Decide(context.Background(), superAdmin, uuid.New(), model.EventStatusApproved)
		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})
}
