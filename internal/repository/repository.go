package repository

import (
	"context"
	"errors"
	"time"

	"clubhub/internal/model"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrClubNotFound         = errors.New("club not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrMembershipNotFound   = errors.New("membership not found")

	ErrDuplicateEmail    = errors.New("email already in use")
	ErrDuplicateClubName = errors.New("club name already exists")
	ErrAlreadyMember     = errors.New("user is already a club member")
	ErrAlreadyRegistered = errors.New("user already registered for event")
	ErrAttendanceExists  = errors.New("attendance already marked")

	ErrEventNotApproved = errors.New("event is not open for registration")
	ErrEventDecided     = errors.New("event has already been decided")
	ErrDeadlinePassed   = errors.New("registration deadline passed")
	ErrEventFull        = errors.New("event seat limit reached")
	ErrNotRegistered    = errors.New("user is not registered for event")

	ErrClubHasEvents = errors.New("club still has events")
)

// EventFilter narrows ListEvents. Nil fields are ignored.
type EventFilter struct {
	ClubID   *uuid.UUID
	Status   *model.EventStatus
	Category *model.EventCategory
}

// EventUpdate carries the mutable event fields for a partial update. Nil
// fields are left untouched; status and the secret are never updatable here.
type EventUpdate struct {
	Title                *string
	Description          *string
	Category             *model.EventCategory
	Venue                *string
	Date                 *time.Time
	Time                 *string
	SeatLimit            *int
	RegistrationDeadline *time.Time
	PosterURL            *string
}

// Repository is the persistence boundary shared by every component. The
// registration and attendance writers push their final arbitration (capacity,
// uniqueness, prior registration) into the implementation so that concurrent
// requests can never overcommit or double-write.
type Repository interface {
	// User operations. A nil role lists everyone.
	CreateUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context, role *model.Role) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) error

	// Club operations
	CreateClub(ctx context.Context, club model.Club) error
	GetClubByID(ctx context.Context, id uuid.UUID) (model.Club, error)
	ListClubs(ctx context.Context) ([]model.Club, error)
	UpdateClub(ctx context.Context, club model.Club) error
	DeleteClub(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member model.ClubMember) error
	RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error
	ListMembers(ctx context.Context, clubID uuid.UUID) ([]model.ClubMemberDetail, error)

	// Event operations
	CreateEvent(ctx context.Context, event model.Event) error
	GetEventByID(ctx context.Context, id uuid.UUID) (model.Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (model.Event, error)
	// DecideEvent moves a pending event to approved or rejected. It fails
	// with ErrEventDecided when the event already left pending.
	DecideEvent(ctx context.Context, id uuid.UUID, status model.EventStatus) (model.Event, error)

	// Registration operations. CreateRegistration performs the full guarded
	// insert: event existence, approved status, deadline, seat limit and
	// (event,user) uniqueness are all checked under one serialization point.
	CreateRegistration(ctx context.Context, eventID, userID uuid.UUID) (model.Registration, error)
	DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error
	ListRegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]model.RegistrationDetail, error)
	ListRegistrationsForUser(ctx context.Context, userID uuid.UUID) ([]model.UserRegistration, error)

	// Attendance operations. CreateAttendance fails with ErrNotRegistered
	// when no registration exists and ErrAttendanceExists on a repeat mark.
	CreateAttendance(ctx context.Context, eventID, userID uuid.UUID) (model.Attendance, error)

	// Reporting
	DashboardSummary(ctx context.Context) (model.DashboardSummary, error)
	MostActiveClubs(ctx context.Context, limit int) ([]model.ClubActivity, error)
	EventsByCategory(ctx context.Context) ([]model.CategoryCount, error)
	EventTurnout(ctx context.Context, limit int) ([]model.EventTurnout, error)
	ClubStats(ctx context.Context, clubID uuid.UUID) (model.ClubStats, error)
	ParticipationReport(ctx context.Context) ([]model.ParticipationRow, error)

	// Database operations
	Migrate(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
