package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// ReadModelHandler exposes the dashboard, zone detail, audit log, and
// flow timeline read models. Every response is a defensive copy handed
// back by the engine, never live state.
type ReadModelHandler struct {
	eng *engine.Engine
}

func NewReadModelHandler(eng *engine.Engine) *ReadModelHandler {
	return &ReadModelHandler{eng: eng}
}

// Dashboard returns the per-location summary.
func (h *ReadModelHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.eng.Dashboard())
}

// ZoneDetail returns inventory rows, recent RFID reads, and open tasks
// for one location.
func (h *ReadModelHandler) ZoneDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	rows, reads, tasks, ok := h.eng.ZoneDetail(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: "zone_not_found"})
	}
	return c.JSON(fiber.Map{"inventory": rows, "recentReads": reads, "openTasks": tasks})
}

// AuditLog returns the audit trail, optionally filtered to one task or
// order id via the ?taskId= query param.
func (h *ReadModelHandler) AuditLog(c *fiber.Ctx) error {
	return c.JSON(h.eng.AuditLog(c.Query("taskId")))
}

// FlowTimeline returns the audit trail annotated with location names,
// newest first, optionally capped by ?limit=.
func (h *ReadModelHandler) FlowTimeline(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	return c.JSON(h.eng.FlowTimeline(limit))
}
