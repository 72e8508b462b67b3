package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// PresenceHandler exposes RFID ingestion and forced zone sweeps (C2, C3).
type PresenceHandler struct {
	eng *engine.Engine
}

func NewPresenceHandler(eng *engine.Engine) *PresenceHandler {
	return &PresenceHandler{eng: eng}
}

// IngestRFIDRead handles a single raw antenna read.
func (h *PresenceHandler) IngestRFIDRead(c *fiber.Ctx) error {
	var in ingestRFIDReadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	read := engine.RFIDRead{
		EPC:       in.EPC,
		AntennaID: in.AntennaID,
		Timestamp: atOrNow(in.Timestamp),
	}
	if in.RSSI != 0 {
		rssi := in.RSSI
		read.RSSI = &rssi
	}
	outcome, err := h.eng.IngestRFIDRead(read)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: string(outcome)})
}

// ForceZoneSweep re-evaluates presence for every EPC bound to a zone.
func (h *PresenceHandler) ForceZoneSweep(c *fiber.Ctx) error {
	var in forceZoneSweepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	n, err := h.eng.ForceZoneSweep(in.LocationID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"status": "accepted", "epcsRefreshed": n})
}
