package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleClubAdmin  Role = "club_admin"
	RoleStudent    Role = "student"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleClubAdmin, RoleStudent:
		return true
	}
	return false
}

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusPending, EventStatusApproved, EventStatusRejected:
		return true
	}
	return false
}

type EventCategory string

const (
	CategoryWorkshop    EventCategory = "workshop"
	CategorySeminar     EventCategory = "seminar"
	CategoryCompetition EventCategory = "competition"
	CategoryAwareness   EventCategory = "awareness"
)

func ValidCategory(c EventCategory) bool {
	switch c {
	case CategoryWorkshop, CategorySeminar, CategoryCompetition, CategoryAwareness:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	ClubID       *uuid.UUID `json:"club_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ManagesClub reports whether the user administers the given club, either as
// its club admin or with system-wide authority.
func (u User) ManagesClub(clubID uuid.UUID) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	return u.Role == RoleClubAdmin && u.ClubID != nil && *u.ClubID == clubID
}

type Club struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	FacultyAdvisorID *uuid.UUID `json:"faculty_advisor_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ClubMember struct {
	ID       uuid.UUID `json:"id"`
	ClubID   uuid.UUID `json:"club_id"`
	UserID   uuid.UUID `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type ClubMemberDetail struct {
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// Event carries the per-event attendance secret in Secret. It is never
// serialized; the only read path is proof-token issuance.
type Event struct {
	ID                   uuid.UUID     `json:"id"`
	ClubID               uuid.UUID     `json:"club_id"`
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	Category             EventCategory `json:"category"`
	Venue                string        `json:"venue"`
	Date                 time.Time     `json:"event_date"`
	Time                 *string       `json:"event_time,omitempty"`
	SeatLimit            *int          `json:"seat_limit,omitempty"`
	RegistrationDeadline *time.Time    `json:"registration_deadline,omitempty"`
	Status               EventStatus   `json:"status"`
	PosterURL            *string       `json:"poster_url,omitempty"`
	Secret               string        `json:"-"`
	CreatedBy            uuid.UUID     `json:"created_by"`
	CreatedAt            time.Time     `json:"created_at"`
}

type Registration struct {
	ID           uuid.UUID `json:"id"`
	EventID      uuid.UUID `json:"event_id"`
	UserID       uuid.UUID `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

type Attendance struct {
	ID       uuid.UUID `json:"id"`
	EventID  uuid.UUID `json:"event_id"`
	UserID   uuid.UUID `json:"user_id"`
	MarkedAt time.Time `json:"marked_at"`
}

// RegistrationDetail is one row of an organizer-facing registration list,
// annotated with whether the participant has been marked present.
type RegistrationDetail struct {
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
	Attended     bool      `json:"attended"`
}

// UserRegistration is one row of a student's own registration list.
type UserRegistration struct {
	Registration
	EventTitle  string      `json:"event_title"`
	EventDate   time.Time   `json:"event_date"`
	EventTime   *string     `json:"event_time,omitempty"`
	Venue       string      `json:"venue"`
	EventStatus EventStatus `json:"event_status"`
	ClubName    string      `json:"club_name"`
}

type DashboardSummary struct {
	TotalStudents      int `json:"total_students"`
	TotalClubs         int `json:"total_clubs"`
	TotalEvents        int `json:"total_events"`
	TotalRegistrations int `json:"total_registrations"`
	TotalAttendance    int `json:"total_attendance"`
}

type ClubActivity struct {
	ClubID  uuid.UUID `json:"club_id"`
	Name    string    `json:"name"`
	Members int       `json:"members"`
	Events  int       `json:"events"`
}

type CategoryCount struct {
	Category EventCategory `json:"category"`
	Count    int           `json:"count"`
}

type EventTurnout struct {
	EventID    uuid.UUID `json:"event_id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"event_date"`
	Registered int       `json:"registered"`
	Attended   int       `json:"attended"`
}

type ClubStats struct {
	Members       int `json:"members"`
	Events        int `json:"events"`
	Registrations int `json:"registrations"`
	Attendance    int `json:"attendance"`
}

type ParticipationRow struct {
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	EventsRegistered int       `json:"events_registered"`
	EventsAttended   int       `json:"events_attended"`
	ClubsJoined      int       `json:"clubs_joined"`
}
