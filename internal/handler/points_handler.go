package handler

import (
	"strconv"
	"study-track/internal/dto"
	"study-track/internal/logger"
	"study-track/internal/middleware"
	"study-track/internal/service"
	"study-track/internal/validation"

	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// PointsHandler handles points awarding and ledger requests
type PointsHandler struct {
	pointsService service.PointsService
	validator     *validation.Validator
}

// NewPointsHandler creates a new PointsHandler instance
func NewPointsHandler(pointsService service.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
		validator:     validation.NewValidator(),
	}
}

// AwardPoints awards points to the authenticated user.
// @Summary Award Points
// @Description Records a points transaction, updates the user's total, and triggers a badge check.
// @Tags points
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param award body dto.AwardPointsRequest true "Points Award"
// @Success 200 {object} dto.PointsResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /points [post]
func (h *PointsHandler) AwardPoints(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for AwardPoints", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	var req dto.AwardPointsRequest
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse award points request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Request body is not valid JSON", Status: fiber.StatusBadRequest,
		})
	}

	if errors := h.validator.ValidateAwardPointsRequest(req.Points, req.Reason); len(errors) > 0 {
		return errors // Handled by ErrorHandler middleware
	}

	response, err := h.pointsService.AwardPoints(c.Context(), userID, req)
	if err != nil {
		appLogger.Error("Failed to award points",
			zap.String("userID", userID),
			zap.Int("points", req.Points),
			zap.Error(err))
		return err
	}

	appLogger.Info("Points awarded",
		zap.String("userID", userID),
		zap.Int("points", req.Points),
		zap.Int("totalPoints", response.TotalPoints),
		zap.Int("rank", response.Rank))
	return c.JSON(response)
}

// GetMyTransactions retrieves the points ledger of the authenticated user.
// @Summary Get My Points Transactions
// @Description Retrieves a paginated list of the logged-in user's points transactions, newest first.
// @Tags points
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Number of items per page (default 20, max 100)"
// @Param offset query int false "Number of items to skip (default 0)"
// @Success 200 {array} dto.PointsTransactionResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/points/transactions [get]
func (h *PointsHandler) GetMyTransactions(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyTransactions", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	response, err := h.pointsService.GetTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		appLogger.Error("Failed to get points transactions", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(response)
}

// GetMyRank retrieves the current leaderboard position of the authenticated user.
// @Summary Get My Rank
// @Description Retrieves the logged-in user's 1-based rank and the ranked population size. Rank 0 means unranked.
// @Tags points
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /users/me/rank [get]
func (h *PointsHandler) GetMyRank(c *fiber.Ctx) error {
	appLogger := logger.Get()
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		appLogger.Warn("User ID not found in context for GetMyRank", zap.String("path", c.Path()))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_USER_CONTEXT", Message: "User ID not found in context", Status: fiber.StatusUnauthorized,
		})
	}

	rank, size, err := h.pointsService.GetRank(c.Context(), userID)
	if err != nil {
		appLogger.Error("Failed to get rank", zap.String("userID", userID), zap.Error(err))
		return err
	}

	return c.JSON(fiber.Map{"rank": rank, "total_users": size})
}
