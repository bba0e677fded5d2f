package handler

import (
	"study-track/internal/logger"
	"study-track/internal/service"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler handles leaderboard page requests
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard retrieves a contiguous range of leaderboard entries.
// @Summary Get Leaderboard
// @Description Retrieves leaderboard entries for the requested rank range. Ranks beyond the real user population are filled with synthetic entries.
// @Tags leaderboard
// @Produce json
// @Param start query int false "First rank of the range, 1-based (default 1)"
// @Param end query int false "Last rank of the range, inclusive (default start+9, max range 100)"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Invalid range"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	appLogger := logger.Get()

	// Set by ValidateLeaderboardParams middleware.
	start, _ := c.Locals("validated_start").(int)
	end, _ := c.Locals("validated_end").(int)
	if start == 0 {
		start, end = 1, 10
	}

	response, err := h.leaderboardService.GetLeaderboard(c.Context(), start, end)
	if err != nil {
		appLogger.Error("Failed to get leaderboard",
			zap.Int("start", start),
			zap.Int("end", end),
			zap.Error(err))
		return err
	}

	if response.Degraded {
		appLogger.Warn("Leaderboard served from synthetic fallback", zap.Int("start", start), zap.Int("end", end))
	}
	return c.JSON(response)
}
