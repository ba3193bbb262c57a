package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"clubhub/internal/config"
	"clubhub/internal/database"
	"clubhub/internal/event"
	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "changeme123"

// Seeds a demo dataset: one admin, one club with its admin and members, and a
// couple of events in different approval states. Safe to re-run; it bails out
// when the admin account already exists.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg := config.NewConfig()

	db, err := database.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	if _, err := repo.GetUserByEmail(ctx, "admin@clubhub.test"); err == nil {
		logger.Info("Demo data already present, nothing to do")
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	clubID := uuid.New()
	if err := repo.CreateClub(ctx, model.Club{
		ID:          clubID,
		Name:        "Robotics Club",
		Description: "Builds and races autonomous robots.",
		CreatedAt:   time.Now(),
	}); err != nil {
		return err
	}

	admin := model.User{
		ID:           uuid.New(),
		Name:         "System Admin",
		Email:        "admin@clubhub.test",
		PasswordHash: string(hash),
		Role:         model.RoleSuperAdmin,
		CreatedAt:    time.Now(),
	}
	organizer := model.User{
		ID:           uuid.New(),
		Name:         "Rhea Kapoor",
		Email:        "rhea@clubhub.test",
		PasswordHash: string(hash),
		Role:         model.RoleClubAdmin,
		ClubID:       &clubID,
		CreatedAt:    time.Now(),
	}
	students := []model.User{
		{ID: uuid.New(), Name: "Omar Haddad", Email: "omar@clubhub.test", PasswordHash: string(hash), Role: model.RoleStudent, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Mei Lin", Email: "mei@clubhub.test", PasswordHash: string(hash), Role: model.RoleStudent, CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "Jonas Weber", Email: "jonas@clubhub.test", PasswordHash: string(hash), Role: model.RoleStudent, CreatedAt: time.Now()},
	}

	for _, u := range append([]model.User{admin, organizer}, students...) {
		if err := repo.CreateUser(ctx, u); err != nil {
			return err
		}
	}
	for _, s := range students {
		if err := repo.AddMember(ctx, model.ClubMember{
			ID:       uuid.New(),
			ClubID:   clubID,
			UserID:   s.ID,
			JoinedAt: time.Now(),
		}); err != nil {
			return err
		}
	}

	events := event.NewManager(logger, repo, validator.New())

	seatLimit := 50
	deadline := time.Now().AddDate(0, 0, 12)
	approved, err := events.Create(ctx, admin, event.CreateEventParams{
		ClubID:               clubID,
		Title:                "Line Follower Workshop",
		Description:          "Hands-on session on building a line-following robot.",
		Category:             model.CategoryWorkshop,
		Venue:                "Lab B-204",
		Date:                 time.Now().AddDate(0, 0, 14),
		SeatLimit:            &seatLimit,
		RegistrationDeadline: &deadline,
	})
	if err != nil {
		return err
	}

	pending, err := events.Create(ctx, organizer, event.CreateEventParams{
		ClubID:      clubID,
		Title:       "Inter-College Robo Race",
		Description: "Annual robot race against neighbouring colleges.",
		Category:    model.CategoryCompetition,
		Venue:       "Main Auditorium",
		Date:        time.Now().AddDate(0, 1, 0),
	})
	if err != nil {
		return err
	}

	for _, s := range students {
		if _, err := repo.CreateRegistration(ctx, approved.ID, s.ID); err != nil {
			return err
		}
	}

	logger.Info("Demo data created",
		"admin", admin.Email,
		"organizer", organizer.Email,
		"students", len(students),
		"approved_event", approved.Title,
		"pending_event", pending.Title,
		"password", seedPassword,
	)
	return nil
}
