package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/database"
	"clubhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *database.PostgresDatabase
}

func NewPostgresRepository(db *database.PostgresDatabase) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tbl_club (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			faculty_advisor_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS tbl_user (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			club_id UUID REFERENCES tbl_club(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS tbl_club_member (
			id UUID PRIMARY KEY,
			club_id UUID NOT NULL REFERENCES tbl_club(id),
			user_id UUID NOT NULL REFERENCES tbl_user(id),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (club_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS tbl_event (
			id UUID PRIMARY KEY,
			club_id UUID NOT NULL REFERENCES tbl_club(id),
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category VARCHAR(32) NOT NULL,
			venue VARCHAR(255) NOT NULL DEFAULT '',
			event_date DATE NOT NULL,
			event_time VARCHAR(16),
			seat_limit INTEGER CHECK (seat_limit > 0),
			registration_deadline TIMESTAMPTZ,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			poster_url TEXT,
			qr_secret VARCHAR(64) NOT NULL,
			created_by UUID NOT NULL REFERENCES tbl_user(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS tbl_registration (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES tbl_event(id),
			user_id UUID NOT NULL REFERENCES tbl_user(id),
			registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (event_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS tbl_attendance (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES tbl_event(id),
			user_id UUID NOT NULL REFERENCES tbl_user(id),
			marked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (event_id, user_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_event_club ON tbl_event(club_id);`,
		`CREATE INDEX IF NOT EXISTS idx_event_status ON tbl_event(status);`,
		`CREATE INDEX IF NOT EXISTS idx_registration_event ON tbl_registration(event_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_event ON tbl_attendance(event_id);`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	slog.Info("Database migration completed")
	return nil
}

func (r *PostgresRepository) HealthCheck(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- Users ---

func (r *PostgresRepository) CreateUser(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tbl_user (id, name, email, password_hash, role, club_id, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.ClubID, user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, role, club_id, created_at FROM tbl_user WHERE id = $1`, id))
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT id, name, email, password_hash, role, club_id, created_at FROM tbl_user WHERE email = $1`, email))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.ClubID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context, role *model.Role) ([]model.User, error) {
	query := `SELECT id, name, email, password_hash, role, club_id, created_at FROM tbl_user`
	args := []any{}
	if role != nil {
		args = append(args, *role)
		query += ` WHERE role = $1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.ClubID, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, user model.User) error {
	tag, err := r.db.Exec(ctx, `UPDATE tbl_user SET name = $1, email = $2, password_hash = $3, role = $4, club_id = $5 WHERE id = $6`,
		user.Name, user.Email, user.PasswordHash, user.Role, user.ClubID, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// --- Clubs ---

func (r *PostgresRepository) CreateClub(ctx context.Context, club model.Club) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tbl_club (id, name, description, faculty_advisor_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		club.ID, club.Name, club.Description, club.FacultyAdvisorID, club.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateClubName
	}
	return err
}

func (r *PostgresRepository) GetClubByID(ctx context.Context, id uuid.UUID) (model.Club, error) {
	var club model.Club
	err := r.db.QueryRow(ctx, `SELECT id, name, description, faculty_advisor_id, created_at FROM tbl_club WHERE id = $1`, id).
		Scan(&club.ID, &club.Name, &club.Description, &club.FacultyAdvisorID, &club.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Club{}, ErrClubNotFound
		}
		return model.Club{}, err
	}
	return club, nil
}

func (r *PostgresRepository) ListClubs(ctx context.Context) ([]model.Club, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, faculty_advisor_id, created_at FROM tbl_club ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		var club model.Club
		if err := rows.Scan(&club.ID, &club.Name, &club.Description, &club.FacultyAdvisorID, &club.CreatedAt); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

func (r *PostgresRepository) UpdateClub(ctx context.Context, club model.Club) error {
	tag, err := r.db.Exec(ctx, `UPDATE tbl_club SET name = $1, description = $2, faculty_advisor_id = $3 WHERE id = $4`,
		club.Name, club.Description, club.FacultyAdvisorID, club.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateClubName
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClubNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteClub(ctx context.Context, id uuid.UUID) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tbl_event WHERE club_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrClubHasEvents
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM tbl_club_member WHERE club_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM tbl_club WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrClubNotFound
	}
	return nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member model.ClubMember) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tbl_club_member (id, club_id, user_id, joined_at) VALUES ($1, $2, $3, $4)`,
		member.ID, member.ClubID, member.UserID, member.JoinedAt)
	if isUniqueViolation(err) {
		return ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tbl_club_member WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, clubID uuid.UUID) ([]model.ClubMemberDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, u.email, m.joined_at
		FROM tbl_club_member m
		JOIN tbl_user u ON u.id = m.user_id
		WHERE m.club_id = $1
		ORDER BY m.joined_at`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.ClubMemberDetail
	for rows.Next() {
		var m model.ClubMemberDetail
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// --- Events ---

const eventColumns = `id, club_id, title, description, category, venue, event_date, event_time, seat_limit, registration_deadline, status, poster_url, qr_secret, created_by, created_at`

func scanEvent(row pgx.Row) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.ClubID, &e.Title, &e.Description, &e.Category, &e.Venue, &e.Date, &e.Time,
		&e.SeatLimit, &e.RegistrationDeadline, &e.Status, &e.PosterURL, &e.Secret, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, ErrEventNotFound
		}
		return model.Event{}, err
	}
	return e, nil
}

func (r *PostgresRepository) CreateEvent(ctx context.Context, event model.Event) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tbl_event (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		event.ID, event.ClubID, event.Title, event.Description, event.Category, event.Venue, event.Date, event.Time,
		event.SeatLimit, event.RegistrationDeadline, event.Status, event.PosterURL, event.Secret, event.CreatedBy, event.CreatedAt)
	return err
}

func (r *PostgresRepository) GetEventByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	return scanEvent(r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM tbl_event WHERE id = $1`, id))
}

func (r *PostgresRepository) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM tbl_event WHERE 1=1`
	args := []any{}
	if filter.ClubID != nil {
		args = append(args, *filter.ClubID)
		query += fmt.Sprintf(" AND club_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += ` ORDER BY event_date DESC, event_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PostgresRepository) UpdateEvent(ctx context.Context, id uuid.UUID, update EventUpdate) (model.Event, error) {
	query := `UPDATE tbl_event SET id = id`
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}
	if update.Title != nil {
		set("title", *update.Title)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Category != nil {
		set("category", *update.Category)
	}
	if update.Venue != nil {
		set("venue", *update.Venue)
	}
	if update.Date != nil {
		set("event_date", *update.Date)
	}
	if update.Time != nil {
		set("event_time", *update.Time)
	}
	if update.SeatLimit != nil {
		set("seat_limit", *update.SeatLimit)
	}
	if update.RegistrationDeadline != nil {
		set("registration_deadline", *update.RegistrationDeadline)
	}
	if update.PosterURL != nil {
		set("poster_url", *update.PosterURL)
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d RETURNING %s", len(args), eventColumns)

	return scanEvent(r.db.QueryRow(ctx, query, args...))
}

func (r *PostgresRepository) DecideEvent(ctx context.Context, id uuid.UUID, status model.EventStatus) (model.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx,
		`UPDATE tbl_event SET status = $1 WHERE id = $2 AND status = 'pending' RETURNING `+eventColumns, status, id))
	if err == nil {
		return event, nil
	}
	if !errors.Is(err, ErrEventNotFound) {
		return model.Event{}, err
	}

	// No pending row matched. Tell a missing event apart from a decided one.
	if _, getErr := r.GetEventByID(ctx, id); getErr != nil {
		return model.Event{}, getErr
	}
	return model.Event{}, ErrEventDecided
}

// --- Registrations ---

// CreateRegistration runs the whole guard chain inside one transaction with
// the event row locked, so two concurrent requests for the last seat cannot
// both pass the capacity check. The unique index on (event_id, user_id)
// stays the final authority against duplicates.
func (r *PostgresRepository) CreateRegistration(ctx context.Context, eventID, userID uuid.UUID) (model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Registration{}, err
	}
	defer tx.Rollback(ctx)

	var (
		status    model.EventStatus
		seatLimit *int
		deadline  *time.Time
	)
	err = tx.QueryRow(ctx, `SELECT status, seat_limit, registration_deadline FROM tbl_event WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&status, &seatLimit, &deadline)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Registration{}, ErrEventNotFound
		}
		return model.Registration{}, err
	}

	if status != model.EventStatusApproved {
		return model.Registration{}, ErrEventNotApproved
	}
	if deadline != nil && deadline.Before(time.Now()) {
		return model.Registration{}, ErrDeadlinePassed
	}
	if seatLimit != nil {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM tbl_registration WHERE event_id = $1`, eventID).Scan(&count); err != nil {
			return model.Registration{}, err
		}
		if count >= *seatLimit {
			return model.Registration{}, ErrEventFull
		}
	}

	reg := model.Registration{
		ID:           uuid.New(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	_, err = tx.Exec(ctx, `INSERT INTO tbl_registration (id, event_id, user_id, registered_at) VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.UserID, reg.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Registration{}, ErrAlreadyRegistered
		}
		return model.Registration{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Registration{}, err
	}
	return reg, nil
}

func (r *PostgresRepository) DeleteRegistration(ctx context.Context, eventID, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tbl_registration WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]model.RegistrationDetail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, u.email, reg.registered_at,
			EXISTS (SELECT 1 FROM tbl_attendance a WHERE a.event_id = reg.event_id AND a.user_id = reg.user_id) AS attended
		FROM tbl_registration reg
		JOIN tbl_user u ON u.id = reg.user_id
		WHERE reg.event_id = $1
		ORDER BY reg.registered_at`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.RegistrationDetail
	for rows.Next() {
		var d model.RegistrationDetail
		if err := rows.Scan(&d.UserID, &d.Name, &d.Email, &d.RegisteredAt, &d.Attended); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PostgresRepository) ListRegistrationsForUser(ctx context.Context, userID uuid.UUID) ([]model.UserRegistration, error) {
	rows, err := r.db.Query(ctx, `
		SELECT reg.id, reg.event_id, reg.user_id, reg.registered_at,
			e.title, e.event_date, e.event_time, e.venue, e.status, c.name
		FROM tbl_registration reg
		JOIN tbl_event e ON e.id = reg.event_id
		JOIN tbl_club c ON c.id = e.club_id
		WHERE reg.user_id = $1
		ORDER BY e.event_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.UserRegistration
	for rows.Next() {
		var ur model.UserRegistration
		if err := rows.Scan(&ur.ID, &ur.EventID, &ur.UserID, &ur.RegisteredAt,
			&ur.EventTitle, &ur.EventDate, &ur.EventTime, &ur.Venue, &ur.EventStatus, &ur.ClubName); err != nil {
			return nil, err
		}
		regs = append(regs, ur)
	}
	return regs, rows.Err()
}

// --- Attendance ---

// CreateAttendance locks the registration row for the duration of the write,
// so a concurrent cancellation cannot slip between the check and the insert.
func (r *PostgresRepository) CreateAttendance(ctx context.Context, eventID, userID uuid.UUID) (model.Attendance, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Attendance{}, err
	}
	defer tx.Rollback(ctx)

	var registrationID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM tbl_registration WHERE event_id = $1 AND user_id = $2 FOR UPDATE`, eventID, userID).
		Scan(&registrationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Attendance{}, ErrNotRegistered
		}
		return model.Attendance{}, err
	}

	att := model.Attendance{
		ID:       uuid.New(),
		EventID:  eventID,
		UserID:   userID,
		MarkedAt: time.Now(),
	}
	_, err = tx.Exec(ctx, `INSERT INTO tbl_attendance (id, event_id, user_id, marked_at) VALUES ($1, $2, $3, $4)`,
		att.ID, att.EventID, att.UserID, att.MarkedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Attendance{}, ErrAttendanceExists
		}
		return model.Attendance{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Attendance{}, err
	}
	return att, nil
}

// --- Reporting ---

func (r *PostgresRepository) DashboardSummary(ctx context.Context) (model.DashboardSummary, error) {
	var s model.DashboardSummary
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tbl_user WHERE role = 'student'),
			(SELECT COUNT(*) FROM tbl_club),
			(SELECT COUNT(*) FROM tbl_event WHERE status = 'approved'),
			(SELECT COUNT(*) FROM tbl_registration),
			(SELECT COUNT(*) FROM tbl_attendance)`).
		Scan(&s.TotalStudents, &s.TotalClubs, &s.TotalEvents, &s.TotalRegistrations, &s.TotalAttendance)
	return s, err
}

func (r *PostgresRepository) MostActiveClubs(ctx context.Context, limit int) ([]model.ClubActivity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name,
			COUNT(DISTINCT m.user_id) AS members,
			COUNT(DISTINCT e.id) AS events
		FROM tbl_club c
		LEFT JOIN tbl_club_member m ON m.club_id = c.id
		LEFT JOIN tbl_event e ON e.club_id = c.id AND e.status = 'approved'
		GROUP BY c.id, c.name
		ORDER BY members DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []model.ClubActivity
	for rows.Next() {
		var a model.ClubActivity
		if err := rows.Scan(&a.ClubID, &a.Name, &a.Members, &a.Events); err != nil {
			return nil, err
		}
		clubs = append(clubs, a)
	}
	return clubs, rows.Err()
}

func (r *PostgresRepository) EventsByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, COUNT(*)
		FROM tbl_event
		WHERE status = 'approved'
		GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) EventTurnout(ctx context.Context, limit int) ([]model.EventTurnout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.title, e.event_date,
			(SELECT COUNT(*) FROM tbl_registration WHERE event_id = e.id),
			(SELECT COUNT(*) FROM tbl_attendance WHERE event_id = e.id)
		FROM tbl_event e
		WHERE e.status = 'approved'
		ORDER BY e.event_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turnouts []model.EventTurnout
	for rows.Next() {
		var t model.EventTurnout
		if err := rows.Scan(&t.EventID, &t.Title, &t.Date, &t.Registered, &t.Attended); err != nil {
			return nil, err
		}
		turnouts = append(turnouts, t)
	}
	return turnouts, rows.Err()
}

func (r *PostgresRepository) ClubStats(ctx context.Context, clubID uuid.UUID) (model.ClubStats, error) {
	var s model.ClubStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM tbl_club_member WHERE club_id = $1),
			(SELECT COUNT(*) FROM tbl_event WHERE club_id = $1 AND status = 'approved'),
			(SELECT COUNT(*) FROM tbl_registration reg JOIN tbl_event e ON e.id = reg.event_id WHERE e.club_id = $1),
			(SELECT COUNT(*) FROM tbl_attendance a JOIN tbl_event e ON e.id = a.event_id WHERE e.club_id = $1)`, clubID).
		Scan(&s.Members, &s.Events, &s.Registrations, &s.Attendance)
	return s, err
}

func (r *PostgresRepository) ParticipationReport(ctx context.Context) ([]model.ParticipationRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, u.email,
			(SELECT COUNT(*) FROM tbl_registration WHERE user_id = u.id),
			(SELECT COUNT(*) FROM tbl_attendance WHERE user_id = u.id),
			(SELECT COUNT(*) FROM tbl_club_member WHERE user_id = u.id)
		FROM tbl_user u
		WHERE u.role = 'student'
		ORDER BY 5 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []model.ParticipationRow
	for rows.Next() {
		var p model.ParticipationRow
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.EventsRegistered, &p.EventsAttended, &p.ClubsJoined); err != nil {
			return nil, err
		}
		report = append(report, p)
	}
	return report, rows.Err()
}
