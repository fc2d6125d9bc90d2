package handlers

import (
	"errors"

	"github.com/plantlady/plantlady-api/internal/dto"
	"github.com/plantlady/plantlady-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService      *services.AuthService
	analyticsService *services.AnalyticsService
}

func NewAuthHandler(authService *services.AuthService, analyticsService *services.AnalyticsService) *AuthHandler {
	return &AuthHandler{authService: authService, analyticsService: analyticsService}
}

// Login handles POST /auth/login - verifies the PIN and returns a
// session token with the matching user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.PINLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, token, err := h.authService.Login(req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPIN) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid PIN",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Login failed",
		})
	}

	return c.JSON(dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:           user.ID,
			Name:         user.Name,
			DisplayColor: user.DisplayColor,
		},
	})
}

// ListUsers handles GET /users - the pre-login user picker.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}

	responses := make([]dto.UserResponse, len(users))
	for i, u := range users {
		responses[i] = dto.UserResponse{
			ID:           u.ID,
			Name:         u.Name,
			DisplayColor: u.DisplayColor,
		}
	}
	return c.JSON(responses)
}

// UserStats handles GET /users/:id/stats - batch count, event count
// and the current activity streak.
func (h *AuthHandler) UserStats(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	stats, err := h.analyticsService.UserStats(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}
	return c.JSON(stats)
}
