package api

import (
	"encoding/base64"

	"clubhub/internal/event"
	"clubhub/internal/middleware"
	"clubhub/internal/model"
	"clubhub/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var params event.CreateEventParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	created, err := h.events.Create(c.Context(), middleware.CurrentUser(c), params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}
	var params event.UpdateEventParams
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	updated, err := h.events.Update(c.Context(), middleware.CurrentUser(c), id, params)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}
	found, err := h.events.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(found)
}

func (h *Handler) ListEvents(c *fiber.Ctx) error {
	var filter repository.EventFilter
	if raw := c.Query("club_id"); raw != "" {
		clubID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid club_id", "code": "VALIDATION"})
		}
		filter.ClubID = &clubID
	}
	if raw := c.Query("status"); raw != "" {
		status := model.EventStatus(raw)
		if !model.ValidEventStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status", "code": "VALIDATION"})
		}
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := model.EventCategory(raw)
		if !model.ValidCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category", "code": "VALIDATION"})
		}
		filter.Category = &category
	}

	events, err := h.events.List(c.Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(events)
}

type decisionRequest struct {
	Status model.EventStatus `json:"status"`
}

func (h *Handler) DecideEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}
	var req decisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "code": "VALIDATION"})
	}

	decided, err := h.events.Decide(c.Context(), middleware.CurrentUser(c), id, req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(decided)
}

// IssueProof returns the event's proof token as a QR data URL plus the raw
// payload. The only endpoint that ever surfaces the event secret.
func (h *Handler) IssueProof(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}

	issue, err := h.verifier.IssueProof(c.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"qr":      "data:image/png;base64," + base64.StdEncoding.EncodeToString(issue.PNG),
		"payload": issue.Payload,
	})
}

type attendRequest struct {
	QRData string `json:"qr_data"`
}

func (h *Handler) MarkAttendance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event id", "code": "VALIDATION"})
	}
	var req attendRequest
	if err := c.BodyParser(&req); err != nil || req.QRData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "qr_data required", "code": "VALIDATION"})
	}

	att, err := h.verifier.Mark(c.Context(), id, middleware.CurrentUser(c).ID, req.QRData)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "attendance marked", "marked_at": att.MarkedAt})
}
