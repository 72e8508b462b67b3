package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// StaffHandler exposes shift toggling; assignment itself is automatic
// (C12) and has no direct HTTP entry point.
type StaffHandler struct {
	eng *engine.Engine
}

func NewStaffHandler(eng *engine.Engine) *StaffHandler {
	return &StaffHandler{eng: eng}
}

// SetStaffShift toggles a staff member's on-shift flag.
func (h *StaffHandler) SetStaffShift(c *fiber.Ctx) error {
	id := c.Params("id")
	var in setStaffShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if err := h.eng.SetStaffShift(id, in.OnShift, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: "updated"})
}
