package event_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"clubhub/internal/event"
	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(repo *repository.MemoryRepository) *event.Ledger {
	return event.NewLedger(testLogger(), repo)
}

func TestRegisterGuards(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")
	student := seedUser(t, repo, model.RoleStudent, nil)

	t.Run("unknown_event", func(t *testing.T) {
		_, err := ledger.Register(context.Background(), uuid.New(), student.ID)
		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})

	t.Run("pending_event_refused", func(t *testing.T) {
		pending := seedEvent(t, repo, club.ID, model.EventStatusPending, nil)
		_, err := ledger.Register(context.Background(), pending.ID, student.ID)
		assert.ErrorIs(t, err, repository.ErrEventNotApproved)
	})

	t.Run("rejected_event_refused", func(t *testing.T) {
		rejected := seedEvent(t, repo, club.ID, model.EventStatusRejected, nil)
		_, err := ledger.Register(context.Background(), rejected.ID, student.ID)
		assert.ErrorIs(t, err, repository.ErrEventNotApproved)
	})

	t.Run("deadline_passed", func(t *testing.T) {
		closed := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
			e.RegistrationDeadline = ptrTime(time.Now().Add(-time.Hour))
		})
		_, err := ledger.Register(context.Background(), closed.ID, student.ID)
		assert.ErrorIs(t, err, repository.ErrDeadlinePassed)
	})

	t.Run("event_full", func(t *testing.T) {
		full := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
			e.SeatLimit = ptrInt(1)
		})
		first := seedUser(t, repo, model.RoleStudent, nil)
		_, err := ledger.Register(context.Background(), full.ID, first.ID)
		require.NoError(t, err)

		_, err = ledger.Register(context.Background(), full.ID, student.ID)
		assert.ErrorIs(t, err, repository.ErrEventFull)
	})

	t.Run("duplicate_registration", func(t *testing.T) {
		open := seedEvent(t, repo, club.ID, model.EventStatusApproved, nil)
		_, err := ledger.Register(context.Background(), open.ID, student.ID)
		require.NoError(t, err)

		_, err = ledger.Register(context.Background(), open.ID, student.ID)
		assert.ErrorIs(t, err, repository.ErrAlreadyRegistered)
	})

	t.Run("open_event_accepts", func(t *testing.T) {
		open := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
			e.SeatLimit = ptrInt(100)
			e.RegistrationDeadline = ptrTime(time.Now().Add(48 * time.Hour))
		})
		reg, err := ledger.Register(context.Background(), open.ID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, open.ID, reg.EventID)
		assert.Equal(t, student.ID, reg.UserID)
		assert.False(t, reg.RegisteredAt.IsZero())
	})
}

func TestUnregisterFreesSeat(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")
	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
		e.SeatLimit = ptrInt(1)
	})
	first := seedUser(t, repo, model.RoleStudent, nil)
	second := seedUser(t, repo, model.RoleStudent, nil)

	_, err := ledger.Register(context.Background(), seeded.ID, first.ID)
	require.NoError(t, err)
	_, err = ledger.Register(context.Background(), seeded.ID, second.ID)
	require.ErrorIs(t, err, repository.ErrEventFull)

	require.NoError(t, ledger.Unregister(context.Background(), seeded.ID, first.ID))

	_, err = ledger.Register(context.Background(), seeded.ID, second.ID)
	assert.NoError(t, err)
}

func TestUnregisterWithoutRegistration(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")
	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, nil)
	student := seedUser(t, repo, model.RoleStudent, nil)

	err := ledger.Unregister(context.Background(), seeded.ID, student.ID)
	assert.ErrorIs(t, err, repository.ErrRegistrationNotFound)
}

func TestListForEvent(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")
	otherClub := seedClub(t, repo, "Chess Club")
	clubAdmin := seedUser(t, repo, model.RoleClubAdmin, &club.ID)
	outsider := seedUser(t, repo, model.RoleClubAdmin, &otherClub.ID)
	student := seedUser(t, repo, model.RoleStudent, nil)
	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, nil)

	_, err := ledger.Register(context.Background(), seeded.ID, student.ID)
	require.NoError(t, err)
	_, err = repo.CreateAttendance(context.Background(), seeded.ID, student.ID)
	require.NoError(t, err)

	t.Run("outside_admin_refused", func(t *testing.T) {
		_, err := ledger.ListForEvent(context.Background(), outsider, seeded.ID)
		assert.ErrorIs(t, err, event.ErrForbidden)
	})

	t.Run("student_refused", func(t *testing.T) {
		_, err := ledger.ListForEvent(context.Background(), student, seeded.ID)
		assert.ErrorIs(t, err, event.ErrForbidden)
	})

	t.Run("club_admin_sees_attendance_flag", func(t *testing.T) {
		details, err := ledger.ListForEvent(context.Background(), clubAdmin, seeded.ID)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, student.ID, details[0].UserID)
		assert.True(t, details[0].Attended)
	})
}

func TestListForUser(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")
	student := seedUser(t, repo, model.RoleStudent, nil)
	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
		e.Title = "Soldering 101"
	})

	_, err := ledger.Register(context.Background(), seeded.ID, student.ID)
	require.NoError(t, err)

	regs, err := ledger.ListForUser(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Soldering 101", regs[0].EventTitle)
	assert.Equal(t, club.Name, regs[0].ClubName)
	assert.Equal(t, model.EventStatusApproved, regs[0].EventStatus)
}

// Many callers racing for few seats must produce exactly seat-limit
// registrations, with every loser seeing the capacity error.
func TestConcurrentRegistrations(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ledger := newLedger(repo)
	club := seedClub(t, repo, "Electronics Club")

	const userCount = 20
	const seatLimit = 5

	seeded := seedEvent(t, repo, club.ID, model.EventStatusApproved, func(e *model.Event) {
		e.SeatLimit = ptrInt(seatLimit)
	})

	users := make([]model.User, userCount)
	for i := range users {
		users[i] = seedUser(t, repo, model.RoleStudent, nil)
	}

	var wg sync.WaitGroup
	var successCount, fullCount, otherCount int64

	wg.Add(userCount)
	for i := 0; i < userCount; i++ {
		go func(userID uuid.UUID) {
			defer wg.Done()
			_, err := ledger.Register(context.Background(), seeded.ID, userID)
			switch {
			case err == nil:
				atomic.AddInt64(&successCount, 1)
			case err == repository.ErrEventFull:
				atomic.AddInt64(&fullCount, 1)
			default:
				atomic.AddInt64(&otherCount, 1)
			}
		}(users[i].ID)
	}
	wg.Wait()

	assert.EqualValues(t, seatLimit, successCount)
	assert.EqualValues(t, userCount-seatLimit, fullCount)
	assert.Zero(t, otherCount)

	details, err := repo.ListRegistrationsForEvent(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Len(t, details, seatLimit)
}
