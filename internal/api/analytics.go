package api

import (
	"clubhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.reporter.Dashboard(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dashboard)
}

func (h *Handler) Participation(c *fiber.Ctx) error {
	report, err := h.reporter.Participation(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}
