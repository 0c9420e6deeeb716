package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"clipflow/internal/queue"
	"clipflow/internal/service"
	"clipflow/internal/transfer"
)

type BatchHandler struct {
	s           service.BatchService
	AsynqClient *asynq.Client
}

func NewBatchHandler(service service.BatchService, asynqClient *asynq.Client) *BatchHandler {
	return &BatchHandler{s: service, AsynqClient: asynqClient}
}

// PreviewBatch computes the schedule without persisting anything, so the
// app can show slot cards and the quality badge before the user commits.
func (h *BatchHandler) PreviewBatch(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.BatchScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	preview, err := h.s.Preview(c.Context(), userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(preview)
}

func (h *BatchHandler) CreateBatch(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.BatchScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	created, delays, err := h.s.Create(c.Context(), userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// The batch is already committed, so enqueue failures must not abort
	// the loop. Posts left without a task get picked up by the overdue
	// sweep once their scheduled time passes.
	for i, postID := range created.PostIDs {
		err = queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: postID}, delays[i])
		if err != nil {
			slog.Error(err.Error(), slog.Int64("post_id", postID))
		}
	}

	return c.Status(fiber.StatusOK).JSON(created)
}
