package api

import (
	"log/slog"
	"os"
	"time"

	"clubhub/internal/analytics"
	"clubhub/internal/club"
	"clubhub/internal/event"
	"clubhub/internal/middleware"
	"clubhub/internal/model"
	"clubhub/internal/repository"
	"clubhub/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type Handler struct {
	logger   *slog.Logger
	store    *session.Store
	repo     repository.Repository
	events   *event.Manager
	ledger   *event.Ledger
	verifier *event.Verifier
	clubs    *club.Manager
	users    *user.Manager
	reporter *analytics.Reporter
}

func NewHandler(
	logger *slog.Logger,
	store *session.Store,
	repo repository.Repository,
	events *event.Manager,
	ledger *event.Ledger,
	verifier *event.Verifier,
	clubs *club.Manager,
	users *user.Manager,
	reporter *analytics.Reporter,
) *Handler {
	return &Handler{
		logger:   logger,
		store:    store,
		repo:     repo,
		events:   events,
		ledger:   ledger,
		verifier: verifier,
		clubs:    clubs,
		users:    users,
		reporter: reporter,
	}
}

// Health returns the health status of the application.
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.repo.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   os.Getenv("VERSION"),
	})
}

// RegisterRoutes wires the HTTP surface. Event and club reads are public;
// everything else sits behind the session middleware, with role gates where
// only organizers or system admins may act.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api")

	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)

	api.Get("/events", h.ListEvents)
	api.Get("/events/:id", h.GetEvent)
	api.Get("/clubs", h.ListClubs)
	api.Get("/clubs/:id", h.GetClub)

	authed := api.Group("", middleware.Authenticated(h.store, h.repo))

	organizer := middleware.RequireRole(model.RoleClubAdmin, model.RoleSuperAdmin)
	admin := middleware.RequireRole(model.RoleSuperAdmin)

	authed.Post("/events", organizer, h.CreateEvent)
	authed.Patch("/events/:id", organizer, h.UpdateEvent)
	authed.Patch("/events/:id/decision", admin, h.DecideEvent)
	authed.Get("/events/:id/qr", organizer, h.IssueProof)
	authed.Get("/events/:id/registrations", organizer, h.ListEventRegistrations)

	authed.Post("/events/:id/registrations", h.Register)
	authed.Delete("/events/:id/registrations", h.Unregister)
	authed.Post("/events/:id/attend", h.MarkAttendance)
	authed.Get("/registrations/my", h.MyRegistrations)

	authed.Post("/clubs", admin, h.CreateClub)
	authed.Patch("/clubs/:id", organizer, h.UpdateClub)
	authed.Delete("/clubs/:id", admin, h.DeleteClub)
	authed.Post("/clubs/:id/members", h.JoinClub)
	authed.Delete("/clubs/:id/members", h.LeaveClub)

	authed.Post("/users", admin, h.CreateUser)
	authed.Get("/users", organizer, h.ListUsers)
	authed.Get("/users/:id", h.GetUser)
	authed.Patch("/users/:id/role", admin, h.AssignRole)

	authed.Get("/analytics/dashboard", h.Dashboard)
	authed.Get("/analytics/participation", admin, h.Participation)
}
