package handlers

import (
	"errors"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/middleware"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CostHandler struct {
	costService *services.CostService
}

func NewCostHandler(costService *services.CostService) *CostHandler {
	return &CostHandler{costService: costService}
}

func costFromRequest(req *dto.CreateCostRequest) *models.SeasonCost {
	cost := &models.SeasonCost{
		SeasonID: req.SeasonID,
		ItemName: req.ItemName,
		Cost:     req.Cost,
		Category: req.Category,
		Notes:    req.Notes,
	}
	cost.Quantity = req.Quantity
	if cost.Quantity == nil {
		one := 1
		cost.Quantity = &one
	}
	cost.IsOneTime = true
	if req.IsOneTime != nil {
		cost.IsOneTime = *req.IsOneTime
	}
	return cost
}

func (h *CostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.ItemName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "item_name is required",
		})
	}

	cost, err := h.costService.Create(userID, costFromRequest(&req))
	if err != nil {
		if errors.Is(err, services.ErrSeasonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create cost entry",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cost)
}

func (h *CostHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	costs, err := h.costService.List(
		queryID(c, "season_id"),
		queryID(c, "user_id"),
		c.Query("category"),
		limit, offset,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list costs",
		})
	}
	return c.JSON(costs)
}

func (h *CostHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid cost ID",
		})
	}

	cost, err := h.costService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrCostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cost entry not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load cost entry",
		})
	}
	return c.JSON(cost)
}

func (h *CostHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid cost ID",
		})
	}

	var req dto.CreateCostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	cost, err := h.costService.Update(id, costFromRequest(&req))
	if err != nil {
		if errors.Is(err, services.ErrCostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cost entry not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update cost entry",
		})
	}
	return c.JSON(cost)
}

func (h *CostHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid cost ID",
		})
	}

	if err := h.costService.Delete(id); err != nil {
		if errors.Is(err, services.ErrCostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cost entry not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete cost entry",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
