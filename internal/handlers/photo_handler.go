package handlers

import (
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/plantlady/plantlady-api/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// PhotoHandler serves photo upload, metadata and gallery endpoints.
// Image bytes come in as multipart form files and go out via the blob
// store path.
type PhotoHandler struct {
	photoService *services.PhotoService
	blobs        *storage.PhotoStore
}

func NewPhotoHandler(photoService *services.PhotoService, blobs *storage.PhotoStore) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, blobs: blobs}
}

// readFormFile pulls the named multipart file into memory.
func readFormFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Ext(fileHeader.Filename), nil
}

// Upload handles POST /photos - multipart form with a "file" part plus
// batch_id, optional event_id and caption fields.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	batchID := formUint(c, "batch_id")
	if batchID == 0 {
		batchID = queryID(c, "batch_id")
	}
	if batchID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "batch_id is required",
		})
	}

	var eventID *uint
	if v := formUint(c, "event_id"); v != 0 {
		eventID = &v
	}

	data, ext, err := readFormFile(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or unreadable file",
		})
	}

	photo, err := h.photoService.Upload(batchID, eventID, userID, data, ext, c.FormValue("caption"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		case errors.Is(err, services.ErrEventBatchMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Event not found or doesn't belong to this batch",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to upload photo",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	photos, err := h.photoService.List(
		queryID(c, "batch_id"),
		queryID(c, "event_id"),
		queryID(c, "user_id"),
		limit, offset,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list photos",
		})
	}
	return c.JSON(photos)
}

func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo ID",
		})
	}

	photo, err := h.photoService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Photo not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load photo",
		})
	}
	return c.JSON(photo)
}

// File handles GET /photos/:id/file - streams the stored image bytes.
func (h *PhotoHandler) File(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo ID",
		})
	}

	photo, err := h.photoService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Photo not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load photo",
		})
	}

	if !h.blobs.Exists(photo.Filename) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo file missing",
		})
	}
	return c.SendFile(h.blobs.Path(photo.Filename))
}

func (h *PhotoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo ID",
		})
	}

	var req struct {
		Caption *string    `json:"caption"`
		TakenAt *time.Time `json:"taken_at"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	photo, err := h.photoService.UpdateMeta(id, req.Caption, req.TakenAt)
	if err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Photo not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update photo",
		})
	}
	return c.JSON(photo)
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo ID",
		})
	}

	if err := h.photoService.Delete(id); err != nil {
		if errors.Is(err, services.ErrPhotoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Photo not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete photo",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Gallery handles GET /batches/:id/photos - newest first.
func (h *PhotoHandler) Gallery(c *fiber.Ctx) error {
	batchID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	photos, err := h.photoService.Gallery(batchID)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load gallery",
		})
	}
	return c.JSON(photos)
}
