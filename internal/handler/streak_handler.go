package handler

import (
	"study-track/internal/logger"
	"study-track/internal/middleware"
	"study-track/internal/service"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// StreakHandler handles streak read requests
type StreakHandler struct {
	streakService service.StreakService
}

// NewStreakHandler creates a new StreakHandler instance
func NewStreakHandler(streakService service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// GetMyStreaks retrieves both streak families of the authenticated user.
// @Summary Get My Streaks
// @Description Retrieves the logged-in user's login and study streaks with current, longest, and display level. Streaks are recomputed from the activity log on read.
// @Tags streaks
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStreaksResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/streak [get]
func (h *StreakHandler) GetMyStreaks(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyStreaks", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	response, err := h.streakService.GetUserStreaks(c.Context(), userID)
	if err != nil {
		appLogger.Error("Failed to get streaks", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(response)
}
