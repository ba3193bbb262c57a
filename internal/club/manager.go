package club

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/validator"

	"github.com/google/uuid"
)

// ErrForbidden means the caller may not manage the targeted club.
var ErrForbidden = errors.New("not allowed for this caller")

// Manager handles club records and membership. Plain record management; the
// event core only reads club existence and ownership from it.
type Manager struct {
	logger   *slog.Logger
	repo     repository.Repository
	validate *validator.Validator
}

func NewManager(logger *slog.Logger, repo repository.Repository, validate *validator.Validator) *Manager {
	return &Manager{logger: logger, repo: repo, validate: validate}
}

type CreateClubParams struct {
	Name             string     `json:"name" validate:"required,max=255"`
	Description      string     `json:"description"`
	FacultyAdvisorID *uuid.UUID `json:"faculty_advisor_id"`
}

func (m *Manager) Create(ctx context.Context, actor model.User, params CreateClubParams) (model.Club, error) {
	if err := m.validate.Validate(params); err != nil {
		return model.Club{}, err
	}
	if actor.Role != model.RoleSuperAdmin {
		return model.Club{}, ErrForbidden
	}

	club := model.Club{
		ID:               uuid.New(),
		Name:             params.Name,
		Description:      params.Description,
		FacultyAdvisorID: params.FacultyAdvisorID,
		CreatedAt:        time.Now(),
	}
	if err := m.repo.CreateClub(ctx, club); err != nil {
		return model.Club{}, err
	}

	m.logger.Info("Club created", "club_id", club.ID, "name", club.Name)
	return club, nil
}

func (m *Manager) Get(ctx context.Context, clubID uuid.UUID) (model.Club, error) {
	return m.repo.GetClubByID(ctx, clubID)
}

func (m *Manager) List(ctx context.Context) ([]model.Club, error) {
	return m.repo.ListClubs(ctx)
}

type UpdateClubParams struct {
	Name             *string    `json:"name" validate:"omitempty,max=255"`
	Description      *string    `json:"description"`
	FacultyAdvisorID *uuid.UUID `json:"faculty_advisor_id"`
}

func (m *Manager) Update(ctx context.Context, actor model.User, clubID uuid.UUID, params UpdateClubParams) (model.Club, error) {
	if err := m.validate.Validate(params); err != nil {
		return model.Club{}, err
	}
	if !actor.ManagesClub(clubID) {
		return model.Club{}, ErrForbidden
	}

	club, err := m.repo.GetClubByID(ctx, clubID)
	if err != nil {
		return model.Club{}, err
	}
	if params.Name != nil {
		club.Name = *params.Name
	}
	if params.Description != nil {
		club.Description = *params.Description
	}
	if params.FacultyAdvisorID != nil {
		club.FacultyAdvisorID = params.FacultyAdvisorID
	}
	if err := m.repo.UpdateClub(ctx, club); err != nil {
		return model.Club{}, err
	}
	return club, nil
}

// Delete removes a club without members. Clubs that still own events are
// refused, so event history can never be orphaned.
func (m *Manager) Delete(ctx context.Context, actor model.User, clubID uuid.UUID) error {
	if actor.Role != model.RoleSuperAdmin {
		return ErrForbidden
	}
	if err := m.repo.DeleteClub(ctx, clubID); err != nil {
		return err
	}

	m.logger.Info("Club deleted", "club_id", clubID)
	return nil
}

func (m *Manager) Join(ctx context.Context, clubID, userID uuid.UUID) (model.ClubMember, error) {
	if _, err := m.repo.GetClubByID(ctx, clubID); err != nil {
		return model.ClubMember{}, err
	}

	member := model.ClubMember{
		ID:       uuid.New(),
		ClubID:   clubID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	if err := m.repo.AddMember(ctx, member); err != nil {
		return model.ClubMember{}, err
	}

	m.logger.Info("Member joined club", "club_id", clubID, "user_id", userID)
	return member, nil
}

func (m *Manager) Leave(ctx context.Context, clubID, userID uuid.UUID) error {
	return m.repo.RemoveMember(ctx, clubID, userID)
}

func (m *Manager) Members(ctx context.Context, clubID uuid.UUID) ([]model.ClubMemberDetail, error) {
	if _, err := m.repo.GetClubByID(ctx, clubID); err != nil {
		return nil, err
	}
	return m.repo.ListMembers(ctx, clubID)
}
