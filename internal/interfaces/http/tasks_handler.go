package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pedroblancopascual-accenture/adaptive-retail-sim/internal/engine"
)

// TasksHandler exposes the replenishment task lifecycle (C8, C10).
type TasksHandler struct {
	eng *engine.Engine
}

func NewTasksHandler(eng *engine.Engine) *TasksHandler {
	return &TasksHandler{eng: eng}
}

// AssignTask explicitly assigns staff to an open task.
func (h *TasksHandler) AssignTask(c *fiber.Ctx) error {
	id := c.Params("id")
	var in assignTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	task, err := h.eng.AssignTask(id, in.StaffID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(task)
}

// StartTask transitions a task to IN_PROGRESS.
func (h *TasksHandler) StartTask(c *fiber.Ctx) error {
	id := c.Params("id")
	var in startTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	task, err := h.eng.StartTask(id, in.StaffID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(task)
}

// ConfirmTask executes the task's transfer, retrying candidate sources on
// zero movement.
func (h *TasksHandler) ConfirmTask(c *fiber.Ctx) error {
	id := c.Params("id")
	var in confirmTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
	}
	result, err := h.eng.ConfirmTask(id, in.Qty, in.ConfirmedBy, in.OverrideSourceZoneID, atOrNow(in.Timestamp))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(StatusResponse{Status: string(result)})
}

// TaskList returns a filtered view of tasks.
func (h *TasksHandler) TaskList(c *fiber.Ctx) error {
	f := engine.TaskListFilter{
		DestinationID: c.Query("destinationId"),
		OnlyOpen:      c.Query("onlyOpen") == "true",
	}
	return c.JSON(h.eng.TaskList(f))
}
