package api

import (
	"clubhub/internal/middleware"
	"clubhub/internal/model"
	"clubhub/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var params user.CreateUserParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	created, err := h.users.Create(c.Context(), middleware.CurrentUser(c), params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		r := model.Role(raw)
		if !model.ValidRole(r) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role", "code": "VALIDATION"})
		}
		role = &r
	}

	users, err := h.users.List(c.Context(), middleware.CurrentUser(c), role)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(users)
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id", "code": "VALIDATION"})
	}

	found, err := h.users.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(found)
}

type assignRoleRequest struct {
	Role   model.Role `json:"role"`
	ClubID *uuid.UUID `json:"club_id"`
}

func (h *Handler) AssignRole(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id", "code": "VALIDATION"})
	}
	var req assignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	updated, err := h.users.AssignRole(c.Context(), middleware.CurrentUser(c), id, req.Role, req.ClubID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}
