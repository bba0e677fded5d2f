package handler

import (
	"strconv"
	"study-track/internal/dto"
	"study-track/internal/logger"
	"study-track/internal/middleware" // For UserIDKey and ErrorResponse
	"study-track/internal/service"
	"study-track/internal/validation"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles activity ingestion and history requests
type ActivityHandler struct {
	activityService service.ActivityService
	validator       *validation.Validator
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		validator:       validation.NewValidator(),
	}
}

// RecordActivity records a new activity event for the authenticated user.
// @Summary Record Activity
// @Description Appends one activity event to the user's log and refreshes the affected streak.
// @Tags activities
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param activity body dto.RecordActivityRequest true "Activity Event"
// @Success 201 {object} dto.ActivityResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /activities [post]
func (h *ActivityHandler) RecordActivity(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for RecordActivity", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse record activity request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
		})
	}

	if errors := h.validator.ValidateRecordActivityRequest(req.ActivityType); len(errors) > 0 {
		return errors // Handled by ErrorHandler middleware
	}

	response, err := h.activityService.RecordActivity(c.Context(), userID, req)
	if err != nil {
		appLogger.Error("Failed to record activity",
			zap.String("userID", userID),
			zap.String("activityType", req.ActivityType),
			zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetMyActivities retrieves the activity history of the authenticated user.
// @Summary Get My Activities
// @Description Retrieves a paginated list of the logged-in user's activity events, newest first.
// @Tags activities
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 20, max 100)"
// @Param offset query int false "Number of items to skip (default 0)"
// @Success 200 {object} dto.ActivityListResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/activities [get]
func (h *ActivityHandler) GetMyActivities(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyActivities", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	response, err := h.activityService.GetRecentActivities(c.Context(), userID, limit, offset)
	if err != nil {
		appLogger.Error("Failed to get activities", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(response)
}

// GetMyActivityStats retrieves aggregate activity counts for the authenticated user.
// @Summary Get My Activity Stats
// @Description Retrieves lifetime activity totals per activity type for the logged-in user.
// @Tags activities
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.ActivityStatsResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/activities/stats [get]
func (h *ActivityHandler) GetMyActivityStats(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyActivityStats", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	response, err := h.activityService.GetActivityStats(c.Context(), userID)
	if err != nil {
		appLogger.Error("Failed to get activity stats", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(response)
}
