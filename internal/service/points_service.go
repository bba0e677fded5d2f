package service

import (
	"context"
	"fmt"
	"time"

	"study-track/internal/domain"
	"study-track/internal/dto"
	"study-track/internal/logger"

	"go.uber.org/zap"
)

// PointsService owns the points ledger and the post-award bookkeeping: the
// cached total, the leaderboard trigger event, and the badge re-check.
type PointsService interface {
	AwardPoints(ctx context.Context, userID string, req dto.AwardPointsRequest) (*dto.PointsResponse, error)
	GetTransactions(ctx context.Context, userID string, limit, offset int) ([]dto.PointsTransactionResponse, error)
	// GetRank returns the user's 1-based rank and the ranked population.
	GetRank(ctx context.Context, userID string) (rank, size int, err error)
}

type pointsServiceImpl struct {
	pointsRepo   domain.PointsRepository
	userRepo     domain.UserRepository
	activityRepo domain.ActivityRepository
	badgeService BadgeService
	txManager    domain.TransactionManager
}

// NewPointsService creates a new PointsService.
func NewPointsService(
	pointsRepo domain.PointsRepository,
	userRepo domain.UserRepository,
	activityRepo domain.ActivityRepository,
	badgeService BadgeService,
	txManager domain.TransactionManager,
) PointsService {
	return &pointsServiceImpl{
		pointsRepo:   pointsRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		badgeService: badgeService,
		txManager:    txManager,
	}
}

// AwardPoints appends a ledger entry and bumps the cached total in one
// transaction. The leaderboard trigger event and the badge re-check run
// after commit; both are best-effort and the award stands without them.
func (s *pointsServiceImpl) AwardPoints(ctx context.Context, userID string, req dto.AwardPointsRequest) (*dto.PointsResponse, error) {
	l := logger.Get()

	tx := &domain.PointsTransaction{
		UserID:   userID,
		Points:   req.Points,
		Reason:   req.Reason,
		Metadata: domain.Metadata(req.Metadata),
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.pointsRepo.CreateTransaction(txCtx, tx); err != nil {
			return err
		}
		return s.userRepo.AddPoints(txCtx, userID, tx.Points)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to award points to user %s: %w", userID, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user " + userID)
	}

	rank, size, err := s.rankOf(ctx, user)
	if err != nil {
		return nil, err
	}

	// The rank change is itself an activity: it feeds the leaderboard badge
	// rules on the next evaluation.
	event := &domain.ActivityEvent{
		UserID: userID,
		Type:   domain.ActivityLeaderboardUpdated,
		Metadata: domain.Metadata{
			"position":    rank,
			"total_users": size,
		},
		Timestamp: time.Now(),
	}
	if err := s.activityRepo.CreateActivity(ctx, event); err != nil {
		l.Warn("Failed to record leaderboard update event",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	if _, err := s.badgeService.EvaluateLocally(ctx, userID); err != nil {
		l.Warn("Badge re-check after points award failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	return &dto.PointsResponse{TotalPoints: user.TotalPoints, Rank: rank}, nil
}

func (s *pointsServiceImpl) rankOf(ctx context.Context, user *domain.User) (int, int, error) {
	size, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return 0, 0, err
	}
	if user.TotalPoints <= 0 {
		return 0, size, nil
	}
	ahead, err := s.userRepo.CountUsersWithMorePoints(ctx, user.TotalPoints)
	if err != nil {
		return 0, 0, err
	}
	return ahead + 1, size, nil
}

// GetTransactions returns a page of the user's ledger, newest first.
func (s *pointsServiceImpl) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]dto.PointsTransactionResponse, error) {
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if offset < 0 {
		offset = 0
	}

	txs, err := s.pointsRepo.GetTransactionsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.PointsTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, dto.PointsTransactionResponse{
			ID:        tx.ID,
			Points:    tx.Points,
			Reason:    tx.Reason,
			Metadata:  tx.Metadata,
			CreatedAt: tx.CreatedAt,
		})
	}
	return resp, nil
}

// GetRank returns the user's current rank and the ranked population.
func (s *pointsServiceImpl) GetRank(ctx context.Context, userID string) (int, int, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if user == nil {
		return 0, 0, domain.NewNotFoundError("user " + userID)
	}
	return s.rankOf(ctx, user)
}
