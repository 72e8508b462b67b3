package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/domain/entity"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// ReceivingHandler exposes receiving-order creation and confirmation (C9).
type ReceivingHandler struct {
	eng *engine.Engine
}

func NewReceivingHandler(eng *engine.Engine) *ReceivingHandler {
	return &ReceivingHandler{eng: eng}
}

// CreateReceivingOrder opens an inbound order.
func (h *ReceivingHandler) CreateReceivingOrder(c *fiber.Ctx) error {
	var in createReceivingOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	order, err := h.eng.CreateReceivingOrder(in.SourceID, in.DestinationID, in.SKUID, entity.Source(in.Source), in.Qty, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// ConfirmReceivingOrder applies a receiving order's transfer.
func (h *ReceivingHandler) ConfirmReceivingOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var in confirmReceivingOrderRequest
	_ = c.BodyParser(&in)
	result, err := h.eng.ConfirmReceivingOrder(id, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: string(result)})
}

// ReceivingList returns receiving orders, optionally filtered by
// destination.
func (h *ReceivingHandler) ReceivingList(c *fiber.Ctx) error {
	return c.JSON(h.eng.ReceivingList(c.Query("destinationId")))
}
