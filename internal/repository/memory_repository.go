package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"clubhub/internal/model"

	"github.com/google/uuid"
)

// MemoryRepository keeps everything in process behind one mutex, which gives
// the same serialization point the postgres implementation gets from its
// transaction. Used by tests and by the server's -memory mode.
type MemoryRepository struct {
	mu sync.Mutex

	users         map[uuid.UUID]model.User
	clubs         map[uuid.UUID]model.Club
	members       []model.ClubMember
	events        map[uuid.UUID]model.Event
	registrations []model.Registration
	attendance    []model.Attendance
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[uuid.UUID]model.User),
		clubs:  make(map[uuid.UUID]model.Club),
		events: make(map[uuid.UUID]model.Event),
	}
}

func (r *MemoryRepository) Migrate(ctx context.Context) error     { return nil }
func (r *MemoryRepository) HealthCheck(ctx context.Context) error { return nil }

// --- Users ---

func (r *MemoryRepository) CreateUser(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (r *MemoryRepository) ListUsers(ctx context.Context, role *model.Role) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if role != nil && u.Role != *role {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *MemoryRepository) UpdateUser(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

// --- Clubs ---

func (r *MemoryRepository) CreateClub(ctx context.Context, club model.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clubs {
		if strings.EqualFold(c.Name, club.Name) {
			return ErrDuplicateClubName
		}
	}
	r.clubs[club.ID] = club
	return nil
}

func (r *MemoryRepository) GetClubByID(ctx context.Context, id uuid.UUID) (model.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	club, ok := r.clubs[id]
	if !ok {
		return model.Club{}, ErrClubNotFound
	}
	return club, nil
}

func (r *MemoryRepository) ListClubs(ctx context.Context) ([]model.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clubs := make([]model.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		clubs = append(clubs, c)
	}
	sort.Slice(clubs, func(i, j int) bool { return clubs[i].Name < clubs[j].Name })
	return clubs, nil
}

func (r *MemoryRepository) UpdateClub(ctx context.Context, club model.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clubs[club.ID]; !ok {
		return ErrClubNotFound
	}
	for id, c := range r.clubs {
		if id != club.ID && strings.EqualFold(c.Name, club.Name) {
			return ErrDuplicateClubName
		}
	}
	r.clubs[club.ID] = club
	return nil
}

func (r *MemoryRepository) DeleteClub(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clubs[id]; !ok {
		return ErrClubNotFound
	}
	for _, e := range r.events {
		if e.ClubID == id {
			return ErrClubHasEvents
		}
	}
	kept := r.members[:0]
	for _, m := range r.members {
		if m.ClubID != id {
			kept = append(kept, m)
		}
	}
	r.members = kept
	delete(r.clubs, id)
	return nil
}

func (r *MemoryRepository) AddMember(ctx context.Context, member model.ClubMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.ClubID == member.ClubID && m.UserID == member.UserID {
			return ErrAlreadyMember
		}
	}
	r.members = append(r.members, member)
	return nil
}

func (r *MemoryRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.ClubID == clubID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return ErrMembershipNotFound
}

func (r *MemoryRepository) ListMembers(ctx context.Context, clubID uuid.UUID) ([]model.ClubMemberDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var details []model.ClubMemberDetail
	for _, m := range r.members {
		if m.ClubID != clubID {
			continue
		}
		u := r.users[m.UserID]
		details = append(details, model.ClubMemberDetail{
			UserID:   m.UserID,
			Name:     u.Name,
			Email:    u.Email,
			JoinedAt: m.JoinedAt,
		})
	}
	return details, nil
}

// --- Events ---

func (r *MemoryRepository) CreateEvent(ctx context.Context, event model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return nil
}

func (r *MemoryRepository) GetEventByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *MemoryRepository) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []model.Event
	for _, e := range r.events {
		if filter.ClubID != nil && e.ClubID != *filter.ClubID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	return events, nil
}

func (r *MemoryRepository) UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Category != nil {
		event.Category = *update.Category
	}
	if update.Venue != nil {
		event.Venue = *update.Venue
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Time != nil {
		event.Time = update.Time
	}
	if update.SeatLimit != nil {
		event.SeatLimit = update.SeatLimit
	}
	if update.RegistrationDeadline != nil {
		event.RegistrationDeadline = update.RegistrationDeadline
	}
	if update.PosterURL != nil {
		event.PosterURL = update.PosterURL
	}
	r.events[id] = event
	return event, nil
}

func (r *MemoryRepository) DecideEvent(ctx context.Context, id uuid.UUID, status model.EventStatus) (model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	if event.Status != model.EventStatusPending {
		return model.Event{}, ErrEventDecided
	}
	event.Status = status
	r.events[id] = event
	return event, nil
}

// --- Registrations ---

func (r *MemoryRepository) CreateRegistration(ctx context.Context, eventID, userID uuid.UUID) (model.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[eventID]
	if !ok {
		return model.Registration{}, ErrEventNotFound
	}
	if event.Status != model.EventStatusApproved {
		return model.Registration{}, ErrEventNotApproved
	}
	if event.RegistrationDeadline != nil && event.RegistrationDeadline.Before(time.Now()) {
		return model.Registration{}, ErrDeadlinePassed
	}
	if event.SeatLimit != nil {
		count := 0
		for _, reg := range r.registrations {
			if reg.EventID == eventID {
				count++
			}
		}
		if count >= *event.SeatLimit {
			return model.Registration{}, ErrEventFull
		}
	}
	for _, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			return model.Registration{}, ErrAlreadyRegistered
		}
	}

	reg := model.Registration{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	r.registrations = append(r.registrations, reg)
	return reg, nil
}

func (r *MemoryRepository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return nil
		}
	}
	return ErrRegistrationNotFound
}

func (r *MemoryRepository) ListRegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]model.RegistrationDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var details []model.RegistrationDetail
	for _, reg := range r.registrations {
		if reg.EventID != eventID {
			continue
		}
		u := r.users[reg.UserID]
		details = append(details, model.RegistrationDetail{
			UserID:       reg.UserID,
			Name:         u.Name,
			Email:        u.Email,
			RegisteredAt: reg.RegisteredAt,
			Attended:     r.hasAttendanceLocked(eventID, reg.UserID),
		})
	}
	return details, nil
}

func (r *MemoryRepository) ListRegistrationsForUser(ctx context.Context, userID uuid.UUID) ([]model.UserRegistration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var regs []model.UserRegistration
	for _, reg := range r.registrations {
		if reg.UserID != userID {
			continue
		}
		event := r.events[reg.EventID]
		regs = append(regs, model.UserRegistration{
			Registration: reg,
			EventTitle:   event.Title,
			EventDate:    event.Date,
			EventTime:    event.Time,
			Venue:        event.Venue,
			EventStatus:  event.Status,
			ClubName:     r.clubs[event.ClubID].Name,
		})
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].EventDate.After(regs[j].EventDate) })
	return regs, nil
}

// --- Attendance ---

func (r *MemoryRepository) CreateAttendance(ctx context.Context, eventID, userID uuid.UUID) (model.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered := false
	for _, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			registered = true
			break
		}
	}
	if !registered {
		return model.Attendance{}, ErrNotRegistered
	}
	if r.hasAttendanceLocked(eventID, userID) {
		return model.Attendance{}, ErrAttendanceExists
	}

	att := model.Attendance{
		ID:       uuid.New(),
		EventID:  eventID,
		UserID:   userID,
		MarkedAt: time.Now(),
	}
	r.attendance = append(r.attendance, att)
	return att, nil
}

func (r *MemoryRepository) hasAttendanceLocked(eventID, userID uuid.UUID) bool {
	for _, a := range r.attendance {
		if a.EventID == eventID && a.UserID == userID {
			return true
		}
	}
	return false
}

// --- Reporting ---

func (r *MemoryRepository) DashboardSummary(ctx context.Context) (model.DashboardSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s model.DashboardSummary
	for _, u := range r.users {
		if u.Role == model.RoleStudent {
			s.TotalStudents++
		}
	}
	s.TotalClubs = len(r.clubs)
	for _, e := range r.events {
		if e.Status == model.EventStatusApproved {
			s.TotalEvents++
		}
	}
	s.TotalRegistrations = len(r.registrations)
	s.TotalAttendance = len(r.attendance)
	return s, nil
}

func (r *MemoryRepository) MostActiveClubs(ctx context.Context, limit int) ([]model.ClubActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var activities []model.ClubActivity
	for id, c := range r.clubs {
		a := model.ClubActivity{ClubID: id, Name: c.Name}
		for _, m := range r.members {
			if m.ClubID == id {
				a.Members++
			}
		}
		for _, e := range r.events {
			if e.ClubID == id && e.Status == model.EventStatusApproved {
				a.Events++
			}
		}
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].Members > activities[j].Members })
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (r *MemoryRepository) EventsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[model.EventCategory]int)
	for _, e := range r.events {
		if e.Status == model.EventStatusApproved {
			counts[e.Category]++
		}
	}
	var result []model.CategoryCount
	for category, count := range counts {
		result = append(result, model.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

func (r *MemoryRepository) EventTurnout(ctx context.Context, limit int) ([]model.EventTurnout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var turnouts []model.EventTurnout
	for id, e := range r.events {
		if e.Status != model.EventStatusApproved {
			continue
		}
		t := model.EventTurnout{EventID: id, Title: e.Title, Date: e.Date}
		for _, reg := range r.registrations {
			if reg.EventID == id {
				t.Registered++
			}
		}
		for _, a := range r.attendance {
			if a.EventID == id {
				t.Attended++
			}
		}
		turnouts = append(turnouts, t)
	}
	sort.Slice(turnouts, func(i, j int) bool { return turnouts[i].Date.After(turnouts[j].Date) })
	if len(turnouts) > limit {
		turnouts = turnouts[:limit]
	}
	return turnouts, nil
}

func (r *MemoryRepository) ClubStats(ctx context.Context, clubID uuid.UUID) (model.ClubStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s model.ClubStats
	for _, m := range r.members {
		if m.ClubID == clubID {
			s.Members++
		}
	}
	clubEvents := make(map[uuid.UUID]bool)
	for id, e := range r.events {
		if e.ClubID == clubID {
			clubEvents[id] = true
			if e.Status == model.EventStatusApproved {
				s.Events++
			}
		}
	}
	for _, reg := range r.registrations {
		if clubEvents[reg.EventID] {
			s.Registrations++
		}
	}
	for _, a := range r.attendance {
		if clubEvents[a.EventID] {
			s.Attendance++
		}
	}
	return s, nil
}

func (r *MemoryRepository) ParticipationReport(ctx context.Context) ([]model.ParticipationRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var report []model.ParticipationRow
	for id, u := range r.users {
		if u.Role != model.RoleStudent {
			continue
		}
		row := model.ParticipationRow{UserID: id, Name: u.Name, Email: u.Email}
		for _, reg := range r.registrations {
			if reg.UserID == id {
				row.EventsRegistered++
			}
		}
		for _, a := range r.attendance {
			if a.UserID == id {
				row.EventsAttended++
			}
		}
		for _, m := range r.members {
			if m.UserID == id {
				row.ClubsJoined++
			}
		}
		report = append(report, row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].EventsAttended > report[j].EventsAttended })
	return report, nil
}
