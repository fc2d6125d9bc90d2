package handlers

import (
	"errors"
	"io"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IdentifyHandler struct {
	identifyService *services.IdentifyService
}

func NewIdentifyHandler(identifyService *services.IdentifyService) *IdentifyHandler {
	return &IdentifyHandler{identifyService: identifyService}
}

// Identify handles POST /identify - multipart image in the "file"
// part, identified via the vision API. An unconfigured service is 503
// and an upstream failure 502; the result is never silently defaulted.
func (h *IdentifyHandler) Identify(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing image file",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unreadable image file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unreadable image file",
		})
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	ident, err := h.identifyService.Identify(userID, data, mediaType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIdentifyUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant identification is not configured",
			})
		case errors.Is(err, services.ErrIdentifyFailed):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant identification failed",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to identify plant",
			})
		}
	}
	return c.JSON(ident)
}
