package analytics_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"clubhub/internal/analytics"
	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDataset builds one club with two students, an approved event with two
// registrations and one attendance mark, plus a pending event that must stay
// out of the approved-event counts.
func seedDataset(t *testing.T) (*repository.MemoryRepository, model.Club, model.User) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	club := model.Club{ID: uuid.New(), Name: "Robotics Club", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateClub(ctx, club))

	clubAdmin := model.User{
		ID: uuid.New(), Name: "Organizer", Email: "org@example.com",
		Role: model.RoleClubAdmin, ClubID: &club.ID, CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateUser(ctx, clubAdmin))

	students := make([]model.User, 2)
	for i := range students {
		students[i] = model.User{
			ID: uuid.New(), Name: "Student", Email: uuid.NewString() + "@example.com",
			Role: model.RoleStudent, CreatedAt: time.Now(),
		}
		require.NoError(t, repo.CreateUser(ctx, students[i]))
		require.NoError(t, repo.AddMember(ctx, model.ClubMember{
			ID: uuid.New(), ClubID: club.ID, UserID: students[i].ID, JoinedAt: time.Now(),
		}))
	}

	approved := model.Event{
		ID: uuid.New(), ClubID: club.ID, Title: "Robo Workshop",
		Category: model.CategoryWorkshop, Date: time.Now().AddDate(0, 0, 5),
		Status: model.EventStatusApproved, Secret: "secret", CreatedBy: clubAdmin.ID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateEvent(ctx, approved))

	pending := approved
	pending.ID = uuid.New()
	pending.Title = "Unapproved Event"
	pending.Status = model.EventStatusPending
	require.NoError(t, repo.CreateEvent(ctx, pending))

	for _, s := range students {
		_, err := repo.CreateRegistration(ctx, approved.ID, s.ID)
		require.NoError(t, err)
	}
	_, err := repo.CreateAttendance(ctx, approved.ID, students[0].ID)
	require.NoError(t, err)

	return repo, club, clubAdmin
}

func newReporter(repo *repository.MemoryRepository) *analytics.Reporter {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return analytics.NewReporter(logger, repo)
}

func TestDashboard(t *testing.T) {
	repo, club, clubAdmin := seedDataset(t)
	reporter := newReporter(repo)
	superAdmin := model.User{ID: uuid.New(), Role: model.RoleSuperAdmin}

	d, err := reporter.Dashboard(context.Background(), superAdmin)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Summary.TotalStudents)
	assert.Equal(t, 1, d.Summary.TotalClubs)
	assert.Equal(t, 1, d.Summary.TotalEvents, "pending events stay out of the count")
	assert.Equal(t, 2, d.Summary.TotalRegistrations)
	assert.Equal(t, 1, d.Summary.TotalAttendance)

	require.Len(t, d.MostActiveClubs, 1)
	assert.Equal(t, club.ID, d.MostActiveClubs[0].ClubID)
	assert.Equal(t, 2, d.MostActiveClubs[0].Members)

	require.Len(t, d.EventsByCategory, 1)
	assert.Equal(t, model.CategoryWorkshop, d.EventsByCategory[0].Category)

	require.Len(t, d.Turnout, 1)
	assert.Equal(t, 2, d.Turnout[0].Registered)
	assert.Equal(t, 1, d.Turnout[0].Attended)

	assert.Nil(t, d.ClubStats, "no club section for system admins")

	t.Run("club_admin_gets_club_section", func(t *testing.T) {
		d, err := reporter.Dashboard(context.Background(), clubAdmin)
		require.NoError(t, err)
		require.NotNil(t, d.ClubStats)
		assert.Equal(t, 2, d.ClubStats.Members)
		assert.Equal(t, 1, d.ClubStats.Events)
		assert.Equal(t, 2, d.ClubStats.Registrations)
		assert.Equal(t, 1, d.ClubStats.Attendance)
	})
}

func TestParticipation(t *testing.T) {
	repo, _, clubAdmin := seedDataset(t)
	reporter := newReporter(repo)
	superAdmin := model.User{ID: uuid.New(), Role: model.RoleSuperAdmin}

	_, err := reporter.Participation(context.Background(), clubAdmin)
	assert.ErrorIs(t, err, analytics.ErrForbidden)

	rows, err := reporter.Participation(context.Background(), superAdmin)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by events attended, so the student who checked in comes first.
	assert.Equal(t, 1, rows[0].EventsAttended)
	assert.Equal(t, 1, rows[0].EventsRegistered)
	assert.Equal(t, 1, rows[0].ClubsJoined)
	assert.Equal(t, 0, rows[1].EventsAttended)
}
