package analytics

import (
	"context"
	"errors"
	"log/slog"

	"clubhub/internal/model"
	"clubhub/internal/repository"
)

var ErrForbidden = errors.New("not allowed for this caller")

const (
	activeClubsLimit = 10
	turnoutLimit     = 20
)

// Reporter assembles the participation dashboards. Read-only over the same
// store the core writes to.
type Reporter struct {
	logger *slog.Logger
	repo   repository.Repository
}

func NewReporter(logger *slog.Logger, repo repository.Repository) *Reporter {
	return &Reporter{logger: logger, repo: repo}
}

type Dashboard struct {
	MostActiveClubs  []model.ClubActivity   `json:"most_active_clubs"`
	Summary          model.DashboardSummary `json:"summary"`
	EventsByCategory []model.CategoryCount  `json:"events_by_category"`
	Turnout          []model.EventTurnout   `json:"attendance_vs_registration"`
	ClubStats        *model.ClubStats       `json:"club_stats,omitempty"`
}

func (r *Reporter) Dashboard(ctx context.Context, actor model.User) (Dashboard, error) {
	var d Dashboard
	var err error

	if d.MostActiveClubs, err = r.repo.MostActiveClubs(ctx, activeClubsLimit); err != nil {
		return Dashboard{}, err
	}
	if d.Summary, err = r.repo.DashboardSummary(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.EventsByCategory, err = r.repo.EventsByCategory(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.Turnout, err = r.repo.EventTurnout(ctx, turnoutLimit); err != nil {
		return Dashboard{}, err
	}

	if actor.Role == model.RoleClubAdmin && actor.ClubID != nil {
		stats, err := r.repo.ClubStats(ctx, *actor.ClubID)
		if err != nil {
			return Dashboard{}, err
		}
		d.ClubStats = &stats
	}

	return d, nil
}

// Participation returns per-student registration/attendance counts. System
// admin only.
func (r *Reporter) Participation(ctx context.Context, actor model.User) ([]model.ParticipationRow, error) {
	if actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	return r.repo.ParticipationReport(ctx)
}
