package handlers

import (
	"errors"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// PlantHandler serves the variety catalog and plant batch endpoints.
type PlantHandler struct {
	plantService *services.PlantService
	eventService *services.EventService
	photoService *services.PhotoService
}

func NewPlantHandler(plantService *services.PlantService, eventService *services.EventService, photoService *services.PhotoService) *PlantHandler {
	return &PlantHandler{
		plantService: plantService,
		eventService: eventService,
		photoService: photoService,
	}
}

// --- Varieties ---

func (h *PlantHandler) CreateVariety(c *fiber.Ctx) error {
	var req dto.CreateVarietyRequest
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

	variety, err := h.plantService.CreateVariety(&models.PlantVariety{
		CommonName:      req.CommonName,
		ScientificName:  req.ScientificName,
		Category:        req.Category,
		FloweringSeason: req.FloweringSeason,
		DaysToGerminate: req.DaysToGerminate,
		DaysToMature:    req.DaysToMature,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrVarietyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Variety with this name already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create variety",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(variety)
}

func (h *PlantHandler) ListVarieties(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	varieties, err := h.plantService.ListVarieties(c.Query("category"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list varieties",
		})
	}
	return c.JSON(varieties)
}

func (h *PlantHandler) GetVariety(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid variety ID",
		})
	}

	variety, err := h.plantService.GetVariety(id)
	if err != nil {
		if errors.Is(err, services.ErrVarietyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Variety not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load variety",
		})
	}
	return c.JSON(variety)
}

func (h *PlantHandler) UpdateVariety(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid variety ID",
		})
	}

	var req dto.CreateVarietyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	variety, err := h.plantService.UpdateVariety(id, &models.PlantVariety{
		CommonName:      req.CommonName,
		ScientificName:  req.ScientificName,
		Category:        req.Category,
		FloweringSeason: req.FloweringSeason,
		DaysToGerminate: req.DaysToGerminate,
		DaysToMature:    req.DaysToMature,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrVarietyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Variety not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update variety",
		})
	}
	return c.JSON(variety)
}

func (h *PlantHandler) DeleteVariety(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid variety ID",
		})
	}

	if err := h.plantService.DeleteVariety(id); err != nil {
		switch {
		case errors.Is(err, services.ErrVarietyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Variety not found",
			})
		case errors.Is(err, services.ErrVarietyHasBatches):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Cannot delete variety with existing plant batches",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete variety",
			})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Batches ---

func (h *PlantHandler) CreateBatch(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	batch, err := h.plantService.CreateBatch(userID, &models.PlantBatch{
		VarietyID:      req.VarietyID,
		SeasonID:       req.SeasonID,
		SeedsCount:     req.SeedsCount,
		Packets:        req.Packets,
		Source:         req.Source,
		Location:       req.Location,
		StartDate:      req.StartDate,
		TransplantDate: req.TransplantDate,
		RepeatNextYear: req.RepeatNextYear,
		OutcomeNotes:   req.OutcomeNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVarietyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Variety not found",
			})
		case errors.Is(err, services.ErrSeasonNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create batch",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

func (h *PlantHandler) ListBatches(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	batches, err := h.plantService.ListBatches(
		queryID(c, "season_id"),
		queryID(c, "variety_id"),
		queryID(c, "user_id"),
		limit, offset,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list batches",
		})
	}
	return c.JSON(batches)
}

func (h *PlantHandler) GetBatch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	batch, err := h.plantService.GetBatch(id)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load batch",
		})
	}
	return c.JSON(batch)
}

func (h *PlantHandler) UpdateBatch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	var req dto.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	batch, err := h.plantService.UpdateBatch(id, &models.PlantBatch{
		SeedsCount:     req.SeedsCount,
		Packets:        req.Packets,
		Source:         req.Source,
		Location:       req.Location,
		StartDate:      req.StartDate,
		TransplantDate: req.TransplantDate,
		RepeatNextYear: req.RepeatNextYear,
		OutcomeNotes:   req.OutcomeNotes,
	})
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update batch",
		})
	}
	return c.JSON(batch)
}

// DeleteBatch cascades through the batch's events, photos and
// distributions, then clears photo blobs once the delete has
// committed.
func (h *PlantHandler) DeleteBatch(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	filenames, err := h.plantService.DeleteBatch(id)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete batch",
		})
	}

	h.photoService.CleanupBlobs(filenames)
	return c.SendStatus(fiber.StatusNoContent)
}

// BatchStatus handles GET /batches/:id/status - the lifecycle status
// derived from the event log, never stored.
func (h *PlantHandler) BatchStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	events, err := h.eventService.Timeline(id)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load events",
		})
	}

	status, ok := services.DeriveStatus(events)
	resp := fiber.Map{"batch_id": id, "status": nil}
	if ok {
		resp["status"] = status
	}
	return c.JSON(resp)
}
