package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// LocationHandler exposes location master-data CRUD.
type LocationHandler struct {
	eng *engine.Engine
}

func NewLocationHandler(eng *engine.Engine) *LocationHandler {
	return &LocationHandler{eng: eng}
}

// UpsertLocation creates or replaces a location's master data.
func (h *LocationHandler) UpsertLocation(c *fiber.Ctx) error {
	var in upsertLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	loc := entity.Location{
		ID:              in.ID,
		Name:            in.Name,
		Colour:          in.Colour,
		IsSalesLocation: in.IsSalesLocation,
		Sources:         in.Sources,
	}
	if err := h.eng.UpsertLocation(loc, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// DeleteLocationSource removes a source from a location's ordered source
// list, cancelling any open task pointing at it.
func (h *LocationHandler) DeleteLocationSource(c *fiber.Ctx) error {
	id := c.Params("id")
	var in deleteLocationSourceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if err := h.eng.DeleteLocationSource(id, in.SourceID, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: "removed"})
}
