package api

import (
	"clubhub/internal/club"
	"clubhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateClub(c *fiber.Ctx) error {
	var params club.CreateClubParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	created, err := h.clubs.Create(c.Context(), middleware.CurrentUser(c), params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) GetClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club id", "code": "VALIDATION"})
	}

	found, err := h.clubs.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	members, err := h.clubs.Members(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"club": found, "members": members})
}

func (h *Handler) ListClubs(c *fiber.Ctx) error {
	clubs, err := h.clubs.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(clubs)
}

func (h *Handler) UpdateClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club id", "code": "VALIDATION"})
	}
	var params club.UpdateClubParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	updated, err := h.clubs.Update(c.Context(), middleware.CurrentUser(c), id, params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club id", "code": "VALIDATION"})
	}

	if err := h.clubs.Delete(c.Context(), middleware.CurrentUser(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "club deleted"})
}

func (h *Handler) JoinClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club id", "code": "VALIDATION"})
	}

	member, err := h.clubs.Join(c.Context(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *Handler) LeaveClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club id", "code": "VALIDATION"})
	}

	if err := h.clubs.Leave(c.Context(), id, middleware.CurrentUser(c).ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "left club"})
}
