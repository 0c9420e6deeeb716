package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"clipflow/internal/service"
)

type VideoHandler struct {
	s service.MediaService
}

func NewVideoHandler(service service.MediaService) *VideoHandler {
	return &VideoHandler{s: service}
}

func (h *VideoHandler) UploadVideos(c *fiber.Ctx) error {
	userID := GetUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	assetIDs, err := h.s.Upload(c.Context(), userID, files)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"asset_ids": assetIDs,
	})
}

func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	userID := GetUserID(c)

	assets, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list videos",
		})
	}

	return c.Status(fiber.StatusOK).JSON(assets)
}

func (h *VideoHandler) RemoveVideo(c *fiber.Ctx) error {
	userID := GetUserID(c)
	assetId := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(assetId))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove video",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
