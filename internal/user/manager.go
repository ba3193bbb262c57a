package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrForbidden = errors.New("not allowed for this caller")

	// ErrInvalidRole means a role outside the known set was requested.
	ErrInvalidRole = errors.New("role must be super_admin, club_admin or student")
)

// Manager covers the user directory: account creation, listing, lookup and
// role assignment.
type Manager struct {
	logger   *slog.Logger
	repo     repository.Repository
	validate *validator.Validator
}

func NewManager(logger *slog.Logger, repo repository.Repository, validate *validator.Validator) *Manager {
	return &Manager{logger: logger, repo: repo, validate: validate}
}

type CreateUserParams struct {
	Name     string     `json:"name" validate:"required,max=255"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     model.Role `json:"role" validate:"required"`
	ClubID   *uuid.UUID `json:"club_id"`
}

// Create provisions an account with a bcrypt-hashed password. System admin
// only; a club id, when given, must point at an existing club.
func (m *Manager) Create(ctx context.Context, actor model.User, params CreateUserParams) (model.User, error) {
	if err := m.validate.Validate(params); err != nil {
		return model.User{}, err
	}
	if actor.Role != model.RoleSuperAdmin {
		return model.User{}, ErrForbidden
	}
	if !model.ValidRole(params.Role) {
		return model.User{}, ErrInvalidRole
	}
	if params.ClubID != nil {
		if _, err := m.repo.GetClubByID(ctx, *params.ClubID); err != nil {
			return model.User{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		ClubID:       params.ClubID,
		CreatedAt:    time.Now(),
	}
	if err := m.repo.CreateUser(ctx, user); err != nil {
		return model.User{}, err
	}

	m.logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (m *Manager) Get(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return m.repo.GetUserByID(ctx, userID)
}

// List returns the directory, optionally narrowed to one role.
func (m *Manager) List(ctx context.Context, actor model.User, role *model.Role) ([]model.User, error) {
	if actor.Role == model.RoleStudent {
		return nil, ErrForbidden
	}
	return m.repo.ListUsers(ctx, role)
}

// AssignRole sets a user's role and, for club admins, the club they manage.
// System admin only.
func (m *Manager) AssignRole(ctx context.Context, actor model.User, userID uuid.UUID, role model.Role, clubID *uuid.UUID) (model.User, error) {
	if actor.Role != model.RoleSuperAdmin {
		return model.User{}, ErrForbidden
	}
	if !model.ValidRole(role) {
		return model.User{}, ErrInvalidRole
	}

	user, err := m.repo.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if clubID != nil {
		if _, err := m.repo.GetClubByID(ctx, *clubID); err != nil {
			return model.User{}, err
		}
	}

	user.Role = role
	user.ClubID = clubID
	if err := m.repo.UpdateUser(ctx, user); err != nil {
		return model.User{}, err
	}

	m.logger.Info("Role assigned", "user_id", userID, "role", role)
	return user, nil
}
