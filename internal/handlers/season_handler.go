package handlers

import (
	"errors"
	"strconv"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SeasonHandler struct {
	seasonService    *services.SeasonService
	analyticsService *services.AnalyticsService
}

func NewSeasonHandler(seasonService *services.SeasonService, analyticsService *services.AnalyticsService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService, analyticsService: analyticsService}
}

func (h *SeasonHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSeasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "year is required",
		})
	}

	season, err := h.seasonService.Create(req.Year, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrSeasonExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Season for this year already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create season",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(season)
}

func (h *SeasonHandler) List(c *fiber.Ctx) error {
	seasons, err := h.seasonService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list seasons",
		})
	}
	return c.JSON(seasons)
}

// GetByYear handles GET /seasons/year/:year - lookup by growing year
// rather than row id.
func (h *SeasonHandler) GetByYear(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid year",
		})
	}

	season, err := h.seasonService.GetByYear(year)
	if err != nil {
		if errors.Is(err, services.ErrSeasonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load season",
		})
	}
	return c.JSON(season)
}

func (h *SeasonHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid season ID",
		})
	}

	season, err := h.seasonService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrSeasonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load season",
		})
	}
	return c.JSON(season)
}

func (h *SeasonHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid season ID",
		})
	}

	var req dto.CreateSeasonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	season, err := h.seasonService.Update(id, req.Year, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrSeasonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update season",
		})
	}
	return c.JSON(season)
}

func (h *SeasonHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid season ID",
		})
	}

	if err := h.seasonService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrSeasonNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		case errors.Is(err, services.ErrSeasonHasDependents):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Cannot delete season with existing batches or costs",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete season",
			})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CostTotal handles GET /seasons/:id/costs/total - exact decimal sum
// with per-category breakdown.
func (h *SeasonHandler) CostTotal(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid season ID",
		})
	}

	total, err := h.analyticsService.SeasonTotal(id)
	if err != nil {
		if errors.Is(err, services.ErrSeasonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Season not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute season total",
		})
	}
	return c.JSON(total)
}
