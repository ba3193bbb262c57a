package api

import (
	"errors"

	"clubhub/internal/analytics"
	"clubhub/internal/club"
	"clubhub/internal/event"
	"clubhub/internal/repository"
	"clubhub/internal/user"
	"clubhub/internal/validator"

	"github.com/gofiber/fiber/v2"
)

// classify maps a domain error to an HTTP status and a stable machine code.
// Every distinct failure the core can produce surfaces as its own code so
// clients can render an actionable message.
func classify(err error) (int, string) {
	switch {
	case validator.IsValidationError(err):
		return fiber.StatusBadRequest, "VALIDATION"

	case errors.Is(err, event.ErrForbidden),
		errors.Is(err, club.ErrForbidden),
		errors.Is(err, user.ErrForbidden),
		errors.Is(err, analytics.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"

	case errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrClubNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrRegistrationNotFound),
		errors.Is(err, repository.ErrMembershipNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, repository.ErrEventNotApproved):
		return fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, repository.ErrEventDecided):
		return fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, repository.ErrDeadlinePassed):
		return fiber.StatusConflict, "DEADLINE_EXPIRED"
	case errors.Is(err, repository.ErrEventFull):
		return fiber.StatusConflict, "CAPACITY_EXCEEDED"

	case errors.Is(err, repository.ErrAlreadyRegistered),
		errors.Is(err, repository.ErrAttendanceExists),
		errors.Is(err, repository.ErrDuplicateClubName),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrAlreadyMember):
		return fiber.StatusConflict, "DUPLICATE"

	case errors.Is(err, repository.ErrClubHasEvents):
		return fiber.StatusConflict, "CLUB_HAS_EVENTS"

	case errors.Is(err, event.ErrMalformedProof):
		return fiber.StatusBadRequest, "MALFORMED_PROOF"
	case errors.Is(err, event.ErrProofEventMismatch):
		return fiber.StatusBadRequest, "PROOF_MISMATCH"
	case errors.Is(err, event.ErrInvalidProof):
		return fiber.StatusBadRequest, "INVALID_PROOF"
	case errors.Is(err, repository.ErrNotRegistered):
		return fiber.StatusBadRequest, "NOT_REGISTERED"
	case errors.Is(err, event.ErrInvalidDecision),
		errors.Is(err, user.ErrInvalidRole):
		return fiber.StatusBadRequest, "VALIDATION"
	}

	return fiber.StatusInternalServerError, "SERVER_ERROR"
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Error("Request failed", "error", err, "method", c.Method(), "path", c.Path())
		return c.Status(status).JSON(fiber.Map{"error": "internal server error", "code": code})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}
