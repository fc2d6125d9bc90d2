package handlers

import (
	"errors"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DistributionHandler struct {
	distributionService *services.DistributionService
	analyticsService    *services.AnalyticsService
}

func NewDistributionHandler(distributionService *services.DistributionService, analyticsService *services.AnalyticsService) *DistributionHandler {
	return &DistributionHandler{
		distributionService: distributionService,
		analyticsService:    analyticsService,
	}
}

func (h *DistributionHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateDistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	dist, err := h.distributionService.Create(userID, &models.Distribution{
		BatchID:   req.BatchID,
		Recipient: req.Recipient,
		Quantity:  req.Quantity,
		Type:      models.DistributionType(req.Type),
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBatchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		case errors.Is(err, services.ErrInvalidDistributionType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Type must be 'gift' or 'trade'",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to create distribution",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dist)
}

func (h *DistributionHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	dists, err := h.distributionService.List(
		queryID(c, "batch_id"),
		queryID(c, "user_id"),
		c.Query("type"),
		limit, offset,
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDistributionType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Type must be 'gift' or 'trade'",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list distributions",
		})
	}
	return c.JSON(dists)
}

func (h *DistributionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid distribution ID",
		})
	}

	dist, err := h.distributionService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrDistributionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Distribution not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load distribution",
		})
	}
	return c.JSON(dist)
}

func (h *DistributionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid distribution ID",
		})
	}

	var req dto.CreateDistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	dist, err := h.distributionService.Update(id, &models.Distribution{
		Recipient: req.Recipient,
		Quantity:  req.Quantity,
		Type:      models.DistributionType(req.Type),
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDistributionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Distribution not found",
			})
		case errors.Is(err, services.ErrInvalidDistributionType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Type must be 'gift' or 'trade'",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update distribution",
			})
		}
	}
	return c.JSON(dist)
}

func (h *DistributionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid distribution ID",
		})
	}

	if err := h.distributionService.Delete(id); err != nil {
		if errors.Is(err, services.ErrDistributionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Distribution not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete distribution",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BatchSummary handles GET /batches/:id/distributions/summary.
func (h *DistributionHandler) BatchSummary(c *fiber.Ctx) error {
	batchID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid batch ID",
		})
	}

	summary, err := h.analyticsService.DistributionSummary(batchID)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to summarize distributions",
		})
	}
	return c.JSON(summary)
}
