package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// CartHandler exposes sales ingestion and the customer basket flow (C11).
type CartHandler struct {
	eng *engine.Engine
}

func NewCartHandler(eng *engine.Engine) *CartHandler {
	return &CartHandler{eng: eng}
}

// IngestSalesEvent applies a SALE or RETURN.
func (h *CartHandler) IngestSalesEvent(c *fiber.Ctx) error {
	var in ingestSalesEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	result, err := h.eng.IngestSalesEvent(in.SKUID, in.LocationID, engine.SalesEventType(in.EventType), in.Qty, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: string(result)})
}

// AddCustomerItem reserves stock into a customer's cart.
func (h *CartHandler) AddCustomerItem(c *fiber.Ctx) error {
	var in addCustomerItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	item, err := h.eng.AddCustomerItem(in.CustomerID, in.LocationID, in.SKUID, in.Qty, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveCustomerItem releases a cart reservation.
func (h *CartHandler) RemoveCustomerItem(c *fiber.Ctx) error {
	var in removeCustomerItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	if err := h.eng.RemoveCustomerItem(in.BasketItemID, atOrNow(in.Timestamp)); err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: "removed"})
}

// CheckoutCustomer sells every IN_CART item for a customer.
func (h *CartHandler) CheckoutCustomer(c *fiber.Ctx) error {
	var in checkoutCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	items, err := h.eng.CheckoutCustomer(in.CustomerID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}
