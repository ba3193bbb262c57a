package middleware

import (
	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const userLocal = "current_user"

// Authenticated resolves the session to a user record and stores it in
// Locals. Establishing the session (login) happens upstream; everything
// behind this middleware only sees an already-identified caller.
func Authenticated(store *session.Store, repo repository.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "session error"})
		}

		rawID, ok := sess.Get("user_id").(string)
		if !ok || rawID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		user, err := repo.GetUserByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run behind
// Authenticated.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(userLocal).(model.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "code": "INSUFFICIENT_ROLE"})
	}
}

// CurrentUser returns the authenticated caller stored by Authenticated.
func CurrentUser(c *fiber.Ctx) model.User {
	user, _ := c.Locals(userLocal).(model.User)
	return user
}
