package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain"
)

// atOrNow converts a millisecond epoch timestamp into a time.Time,
// defaulting to wall-clock now when the caller omits it.
func atOrNow(ms int64) time.Time {
	if ms == 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}

// mapError translates a domain error into the matching HTTP status and
// body, mirroring InventoryHandler's err == domain.ErrX chain.
func mapError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_INVENTORY",
			"message":      "insufficient_inventory",
			"availableQty": insufficient.AvailableQty.String(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidMinMax),
		errors.Is(err, domain.ErrZoneRequired),
		errors.Is(err, domain.ErrSKURequired),
		errors.Is(err, domain.ErrSourceMismatch),
		errors.Is(err, domain.ErrSourceEqualsDestination):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrZoneNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownEPC),
		errors.Is(err, domain.ErrTaskNotOpen),
		errors.Is(err, domain.ErrStaffNotEligibleForZone),
		errors.Is(err, domain.ErrZoneNotOrderable),
		errors.Is(err, domain.ErrNoInventoryMoved):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "BUSINESS", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
