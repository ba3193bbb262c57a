package api

import (
	"clubhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}

	reg, err := h.ledger.Register(c.Context(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reg)
}

func (h *Handler) Unregister(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}

	if err := h.ledger.Unregister(c.Context(), id, middleware.CurrentUser(c).ID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "registration cancelled"})
}

func (h *Handler) ListEventRegistrations(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}

	list, err := h.ledger.ListForEvent(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) MyRegistrations(c *fiber.Ctx) error {
	list, err := h.ledger.ListForUser(c.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}
