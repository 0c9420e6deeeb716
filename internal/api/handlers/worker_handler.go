package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"clipflow/internal/service"
	"clipflow/internal/transfer"
)

type WorkerHandler struct {
	s service.WorkerService
}

func NewWorkerHandler(service service.WorkerService) *WorkerHandler {
	return &WorkerHandler{s: service}
}

func (h *WorkerHandler) RegisterWorker(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var reg transfer.WorkerRegistration
	if err := c.BodyParser(&reg); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	workerID, err := h.s.Register(c.Context(), userID, &reg)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"worker_id": workerID,
	})
}

func (h *WorkerHandler) ListWorkers(c *fiber.Ctx) error {
	userID := GetUserID(c)

	workers, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list workers",
		})
	}

	return c.Status(fiber.StatusOK).JSON(workers)
}

func (h *WorkerHandler) Heartbeat(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("id", 0)

	err := h.s.Heartbeat(c.Context(), userID, int64(workerId))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *WorkerHandler) SetWorkerStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("id", 0)
	status := c.Query("status")

	err := h.s.SetStatus(c.Context(), userID, int64(workerId), status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *WorkerHandler) RemoveWorker(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workerId := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(workerId))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove worker",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
