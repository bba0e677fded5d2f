package handler

import (
	"strconv"
	"study-track/internal/domain"
	"study-track/internal/dto"
	"study-track/internal/logger"
	"study-track/internal/middleware"
	"study-track/internal/service"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// BadgeHandler handles the badge catalog and evaluation surfaces
type BadgeHandler struct {
	badgeService      service.BadgeService
	evaluationService service.EvaluationService
}

// NewBadgeHandler creates a new BadgeHandler instance
func NewBadgeHandler(badgeService service.BadgeService, evaluationService service.EvaluationService) *BadgeHandler {
	return &BadgeHandler{
		badgeService:      badgeService,
		evaluationService: evaluationService,
	}
}

// GetMyBadges retrieves the badge collection of the authenticated user.
// @Summary Get My Badges
// @Description Retrieves the logged-in user's badges. By default only earned badges are returned; show_all includes unearned badges with their progress.
// @Tags badges
// @Security ApiKeyAuth
// @Produce json
// @Param show_all query bool false "Include unearned badges with progress (default false)"
// @Success 200 {object} dto.BadgeListResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /badges [get]
func (h *BadgeHandler) GetMyBadges(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyBadges", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	showAll, _ := strconv.ParseBool(c.Query("show_all", "false"))

	response, err := h.badgeService.GetBadges(c.Context(), userID, showAll)
	if err != nil {
		appLogger.Error("Failed to get badges", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(response)
}

// CheckBadges runs a full badge evaluation for the authenticated user.
// @Summary Check Badges
// @Description Evaluates all badge rules for the logged-in user. Tries the remote evaluator first and falls back to local evaluation when the remote is unavailable.
// @Tags badges
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param check body dto.CheckBadgesRequest true "Triggering Activity Context"
// @Success 200 {object} dto.EvaluationResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Evaluation failed"
// @Router /activities/check [post]
func (h *BadgeHandler) CheckBadges(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for CheckBadges", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.CheckBadgesRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse check badges request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
		})
	}

	activityType, err := domain.ParseActivityType(req.ActivityType)
	if err != nil {
		return err
	}

	// The raw bearer token is forwarded so the remote evaluator can
	// authenticate the same user.
	authToken, _ := c.Locals(middleware.AuthTokenKey).(string)

	response, err := h.evaluationService.CheckAll(c.Context(), userID, activityType, domain.Metadata(req.Metadata), authToken)
	if err != nil {
		appLogger.Error("Badge evaluation failed",
			zap.String("userID", userID),
			zap.String("activityType", req.ActivityType),
			zap.Error(err))
		return err
	}

	appLogger.Info("Badge evaluation completed",
		zap.String("userID", userID),
		zap.String("source", response.Source),
		zap.Int("newBadges", response.BadgeCount))
	return c.JSON(response)
}
