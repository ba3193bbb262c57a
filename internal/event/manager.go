package event

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/validator"

	"github.com/google/uuid"
)

// Manager owns event records: creation, partial updates, reads and the
// approval workflow over the event status.
type Manager struct {
	logger   *slog.Logger
	repo     repository.Repository
	validate *validator.Validator
}

func NewManager(logger *slog.Logger, repo repository.Repository, validate *validator.Validator) *Manager {
	return &Manager{logger: logger, repo: repo, validate: validate}
}

type CreateEventParams struct {
	ClubID               uuid.UUID           `json:"club_id" validate:"required"`
	Title                string              `json:"title" validate:"required,max=255"`
	Description          string              `json:"description"`
	Category             model.EventCategory `json:"category" validate:"required,event_category"`
	Venue                string              `json:"venue"`
	Date                 time.Time           `json:"event_date" validate:"required"`
	Time                 *string             `json:"event_time"`
	SeatLimit            *int                `json:"seat_limit" validate:"omitempty,gt=0"`
	RegistrationDeadline *time.Time          `json:"registration_deadline"`
	PosterURL            *string             `json:"poster_url"`
}

// Create validates the input, checks the actor's club scope and persists a
// new event. The attendance secret is generated here and never changes; a
// system admin's events start approved, everyone else's start pending.
func (m *Manager) Create(ctx context.Context, actor model.User, params CreateEventParams) (model.Event, error) {
	if err := m.validate.Validate(params); err != nil {
		return model.Event{}, err
	}
	if actor.Role == model.RoleStudent {
		return model.Event{}, ErrForbidden
	}

	if _, err := m.repo.GetClubByID(ctx, params.ClubID); err != nil {
		return model.Event{}, err
	}
	if !actor.ManagesClub(params.ClubID) {
		return model.Event{}, ErrForbidden
	}

	secret, err := newSecret()
	if err != nil {
		return model.Event{}, fmt.Errorf("generate event secret: %w", err)
	}

	status := model.EventStatusPending
	if actor.Role == model.RoleSuperAdmin {
		status = model.EventStatusApproved
	}

	event := model.Event{
		ID:                   uuid.New(),
		ClubID:               params.ClubID,
		Title:                params.Title,
		Description:          params.Description,
		Category:             params.Category,
		Venue:                params.Venue,
		Date:                 params.Date,
		Time:                 params.Time,
		SeatLimit:            params.SeatLimit,
		RegistrationDeadline: params.RegistrationDeadline,
		Status:               status,
		PosterURL:            params.PosterURL,
		Secret:               secret,
		CreatedBy:            actor.ID,
		CreatedAt:            time.Now(),
	}
	if err := m.repo.CreateEvent(ctx, event); err != nil {
		m.logger.Error("Failed to create event", "error", err, "club_id", params.ClubID)
		return model.Event{}, err
	}

	m.logger.Info("Event created", "event_id", event.ID, "club_id", event.ClubID, "status", event.Status)
	return event, nil
}

type UpdateEventParams struct {
	Title                *string              `json:"title" validate:"omitempty,max=255"`
	Description          *string              `json:"description"`
	Category             *model.EventCategory `json:"category" validate:"omitempty,event_category"`
	Venue                *string              `json:"venue"`
	Date                 *time.Time           `json:"event_date"`
	Time                 *string              `json:"event_time"`
	SeatLimit            *int                 `json:"seat_limit" validate:"omitempty,gt=0"`
	RegistrationDeadline *time.Time           `json:"registration_deadline"`
	PosterURL            *string              `json:"poster_url"`
}

// Update applies a partial update to the mutable event fields. Status and
// the secret cannot be changed through this path.
func (m *Manager) Update(ctx context.Context, actor model.User, eventID uuid.UUID, params UpdateEventParams) (model.Event, error) {
	if err := m.validate.Validate(params); err != nil {
		return model.Event{}, err
	}

	event, err := m.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return model.Event{}, err
	}
	if !actor.ManagesClub(event.ClubID) {
		return model.Event{}, ErrForbidden
	}

	updated, err := m.repo.UpdateEvent(ctx, eventID, repository.EventUpdate{
		Title:                params.Title,
		Description:          params.Description,
		Category:             params.Category,
		Venue:                params.Venue,
		Date:                 params.Date,
		Time:                 params.Time,
		SeatLimit:            params.SeatLimit,
		RegistrationDeadline: params.RegistrationDeadline,
		PosterURL:            params.PosterURL,
	})
	if err != nil {
		m.logger.Error("Failed to update event", "error", err, "event_id", eventID)
		return model.Event{}, err
	}
	return updated, nil
}

func (m *Manager) Get(ctx context.Context, eventID uuid.UUID) (model.Event, error) {
	return m.repo.GetEventByID(ctx, eventID)
}

func (m *Manager) List(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	return m.repo.ListEvents(ctx, filter)
}

// Decide moves a pending event to approved or rejected. Only a system admin
// may decide, and a decided event stays decided.
func (m *Manager) Decide(ctx context.Context, actor model.User, eventID uuid.UUID, status model.EventStatus) (model.Event, error) {
	if actor.Role != model.RoleSuperAdmin {
		return model.Event{}, ErrForbidden
	}
	if status != model.EventStatusApproved && status != model.EventStatusRejected {
		return model.Event{}, ErrInvalidDecision
	}

	event, err := m.repo.DecideEvent(ctx, eventID, status)
	if err != nil {
		return model.Event{}, err
	}

	m.logger.Info("Event decided", "event_id", eventID, "status", status, "decided_by", actor.ID)
	return event, nil
}

// newSecret returns 32 random bytes hex-encoded, the per-event bearer value
// embedded into proof tokens.
func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
