package event

import (
	"context"
	"log/slog"

	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/google/uuid"
)

// Ledger owns the set of (event, user) registration facts. Seat limits,
// deadlines and uniqueness are arbitrated by the repository under a single
// serialization point per event; the ledger adds scoping and logging.
type Ledger struct {
	logger *slog.Logger
	repo   repository.Repository
}

func NewLedger(logger *slog.Logger, repo repository.Repository) *Ledger {
	return &Ledger{logger: logger, repo: repo}
}

// Register records userID for eventID. The event must exist, be approved,
// have an open deadline and a free seat, and the pair must not already be
// registered.
func (l *Ledger) Register(ctx context.Context, eventID, userID uuid.UUID) (model.Registration, error) {
	reg, err := l.repo.CreateRegistration(ctx, eventID, userID)
	if err != nil {
		return model.Registration{}, err
	}

	l.logger.Info("Registration created", "event_id", eventID, "user_id", userID)
	return reg, nil
}

// Unregister removes the registration if present. Attendance rows, if any,
// are left alone.
func (l *Ledger) Unregister(ctx context.Context, eventID, userID uuid.UUID) error {
	if err := l.repo.DeleteRegistration(ctx, eventID, userID); err != nil {
		return err
	}

	l.logger.Info("Registration cancelled", "event_id", eventID, "user_id", userID)
	return nil
}

// ListForEvent returns the registrations for an event with attendance flags.
// Restricted to the event's club admin and system admins.
func (l *Ledger) ListForEvent(ctx context.Context, actor model.User, eventID uuid.UUID) ([]model.RegistrationDetail, error) {
	event, err := l.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !actor.ManagesClub(event.ClubID) {
		return nil, ErrForbidden
	}
	return l.repo.ListRegistrationsForEvent(ctx, eventID)
}

// ListForUser returns the caller's own registrations with event and club
// context.
func (l *Ledger) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.UserRegistration, error) {
	return l.repo.ListRegistrationsForUser(ctx, userID)
}
