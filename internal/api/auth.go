package api

import (
	"errors"

	"clubhub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login establishes the session the rest of the API relies on. This is the
// whole authentication surface; password resets, verification and the like
// live outside this service.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	user, err := h.repo.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
		}
		return h.fail(c, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return h.fail(c, err)
	}
	sess.Set("user_id", user.ID.String())
	if err := sess.Save(); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(user)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}
