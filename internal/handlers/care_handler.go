package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/plantlady/plantlady-api/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// CareHandler serves houseplant tracking: individual plants, their
// care schedules and the care event log.
type CareHandler struct {
	careService *services.CareService
	blobs       *storage.PhotoStore
}

func NewCareHandler(careService *services.CareService, blobs *storage.PhotoStore) *CareHandler {
	return &CareHandler{careService: careService, blobs: blobs}
}

// --- Plants ---

func (h *CareHandler) CreatePlant(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreatePlantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.CommonName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "common_name is required",
		})
	}

	plant, err := h.careService.CreatePlant(userID, &models.IndividualPlant{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Location:       req.Location,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create plant",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(plant)
}

func (h *CareHandler) ListPlants(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, offset := pagination(c)
	plants, err := h.careService.ListPlants(userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list plants",
		})
	}
	return c.JSON(plants)
}

func (h *CareHandler) GetPlant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	plant, err := h.careService.GetPlant(id)
	if err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load plant",
		})
	}
	return c.JSON(plant)
}

func (h *CareHandler) UpdatePlant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	var req dto.CreatePlantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	plant, err := h.careService.UpdatePlant(id, &models.IndividualPlant{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Location:       req.Location,
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update plant",
		})
	}
	return c.JSON(plant)
}

func (h *CareHandler) DeletePlant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	if err := h.careService.DeletePlant(id); err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete plant",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Schedules ---

// UpsertSchedule handles PUT /plants/:id/schedules - replaces the
// schedule for the given care type.
func (h *CareHandler) UpsertSchedule(c *fiber.Ctx) error {
	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.FrequencyDays < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "frequency_days must be positive",
		})
	}

	schedule, err := h.careService.UpsertSchedule(plantID, req.CareType, req.FrequencyDays)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		case errors.Is(err, services.ErrInvalidCareType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid care type",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to save schedule",
			})
		}
	}
	return c.JSON(schedule)
}

func (h *CareHandler) ListSchedules(c *fiber.Ctx) error {
	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	schedules, err := h.careService.ListSchedules(plantID)
	if err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list schedules",
		})
	}
	return c.JSON(schedules)
}

// --- Care events ---

func (h *CareHandler) LogCareEvent(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	var req dto.CreateCareEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.EventDate.IsZero() {
		req.EventDate = time.Now().UTC()
	}

	event, err := h.careService.LogCareEvent(plantID, userID, req.CareType, req.EventDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		case errors.Is(err, services.ErrInvalidCareType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid care type",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to log care event",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *CareHandler) ListCareEvents(c *fiber.Ctx) error {
	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	limit, offset := pagination(c)
	events, err := h.careService.ListCareEvents(plantID, limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list care events",
		})
	}
	return c.JSON(events)
}

// AttachCarePhoto handles POST /plants/:id/care-events/:eventId/photo
// with a multipart "file" part.
func (h *CareHandler) AttachCarePhoto(c *fiber.Ctx) error {
	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid care event ID",
		})
	}

	data, ext, err := readFormFile(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or unreadable file",
		})
	}

	filename, err := h.blobs.Store(data, ext)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store photo",
		})
	}

	event, err := h.careService.AttachCarePhoto(plantID, eventID, filename)
	if err != nil {
		// The care event was missing; remove the blob we just wrote.
		if rmErr := h.blobs.Delete(filename); rmErr != nil {
			slog.Warn("failed to remove orphaned blob", "filename", filename, "error", rmErr)
		}
		if errors.Is(err, services.ErrCareEventNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Care event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to attach photo",
		})
	}
	return c.JSON(event)
}

// DueStatus handles GET /plants/:id/care-status - per-schedule due
// state derived from the care log.
func (h *CareHandler) DueStatus(c *fiber.Ctx) error {
	plantID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid plant ID",
		})
	}

	statuses, err := h.careService.DueStatus(plantID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrPlantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Plant not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute care status",
		})
	}
	return c.JSON(statuses)
}
