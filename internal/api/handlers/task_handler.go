package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"clipflow/internal/service"
	"clipflow/internal/transfer"
)

type TaskHandler struct {
	s service.TaskService
}

func NewTaskHandler(service service.TaskService) *TaskHandler {
	return &TaskHandler{s: service}
}

// NextTask claims the next due task for the calling device. Responds 204
// when the pool has nothing for it.
func (h *TaskHandler) NextTask(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("worker_id", 0)

	task, err := h.s.ClaimNext(c.Context(), userID, int64(workerId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if task == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

func (h *TaskHandler) ListReceipts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("worker_id", 0)

	receipts, err := h.s.Receipts(c.Context(), userID, int64(workerId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(receipts)
}

func (h *TaskHandler) CompleteTask(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("worker_id", 0)

	var tc transfer.TaskCompletion
	if err := c.BodyParser(&tc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	err := h.s.Complete(c.Context(), userID, int64(workerId), &tc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Task completion recorded",
	})
}
