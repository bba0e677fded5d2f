package handler_test

import (
	"context"
	"study-track/internal/domain"
	"study-track/internal/dto"
	"time"
)

// --- Manual Mocks ---

// MockActivityService
type MockActivityService struct {
	RecordActivityFunc      func(ctx context.Context, userID string, req dto.RecordActivityRequest) (*dto.ActivityResponse, error)
	GetRecentActivitiesFunc func(ctx context.Context, userID string, limit, offset int) (*dto.ActivityListResponse, error)
	GetActivityStatsFunc    func(ctx context.Context, userID string) (*dto.ActivityStatsResponse, error)
}

func (m *MockActivityService) RecordActivity(ctx context.Context, userID string, req dto.RecordActivityRequest) (*dto.ActivityResponse, error) {
	if m.RecordActivityFunc != nil {
		return m.RecordActivityFunc(ctx, userID, req)
	}
	panic("MockActivityService.RecordActivityFunc not implemented")
}
func (m *MockActivityService) GetRecentActivities(ctx context.Context, userID string, limit, offset int) (*dto.ActivityListResponse, error) {
	if m.GetRecentActivitiesFunc != nil {
		return m.GetRecentActivitiesFunc(ctx, userID, limit, offset)
	}
	panic("MockActivityService.GetRecentActivitiesFunc not implemented")
}
func (m *MockActivityService) GetActivityStats(ctx context.Context, userID string) (*dto.ActivityStatsResponse, error) {
	if m.GetActivityStatsFunc != nil {
		return m.GetActivityStatsFunc(ctx, userID)
	}
	panic("MockActivityService.GetActivityStatsFunc not implemented")
}

// MockBadgeService
type MockBadgeService struct {
	EvaluateLocallyFunc  func(ctx context.Context, userID string) (*domain.Evaluation, error)
	AwardBadgeByNameFunc func(ctx context.Context, userID, badgeName string) (bool, error)
	GetBadgesFunc        func(ctx context.Context, userID string, showAll bool) (*dto.BadgeListResponse, error)
}

func (m *MockBadgeService) EvaluateLocally(ctx context.Context, userID string) (*domain.Evaluation, error) {
	if m.EvaluateLocallyFunc != nil {
		return m.EvaluateLocallyFunc(ctx, userID)
	}
	panic("MockBadgeService.EvaluateLocallyFunc not implemented")
}
func (m *MockBadgeService) AwardBadgeByName(ctx context.Context, userID, badgeName string) (bool, error) {
	if m.AwardBadgeByNameFunc != nil {
		return m.AwardBadgeByNameFunc(ctx, userID, badgeName)
	}
	panic("MockBadgeService.AwardBadgeByNameFunc not implemented")
}
func (m *MockBadgeService) GetBadges(ctx context.Context, userID string, showAll bool) (*dto.BadgeListResponse, error) {
	if m.GetBadgesFunc != nil {
		return m.GetBadgesFunc(ctx, userID, showAll)
	}
	panic("MockBadgeService.GetBadgesFunc not implemented")
}

// MockEvaluationService
type MockEvaluationService struct {
	CheckAllFunc func(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*dto.EvaluationResponse, error)
}

func (m *MockEvaluationService) CheckAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*dto.EvaluationResponse, error) {
	if m.CheckAllFunc != nil {
		return m.CheckAllFunc(ctx, userID, activityType, metadata, authToken)
	}
	panic("MockEvaluationService.CheckAllFunc not implemented")
}

// MockPointsService
type MockPointsService struct {
	AwardPointsFunc     func(ctx context.Context, userID string, req dto.AwardPointsRequest) (*dto.PointsResponse, error)
	GetTransactionsFunc func(ctx context.Context, userID string, limit, offset int) ([]dto.PointsTransactionResponse, error)
	GetRankFunc         func(ctx context.Context, userID string) (int, int, error)
}

func (m *MockPointsService) AwardPoints(ctx context.Context, userID string, req dto.AwardPointsRequest) (*dto.PointsResponse, error) {
	if m.AwardPointsFunc != nil {
		return m.AwardPointsFunc(ctx, userID, req)
	}
	panic("MockPointsService.AwardPointsFunc not implemented")
}
func (m *MockPointsService) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]dto.PointsTransactionResponse, error) {
	if m.GetTransactionsFunc != nil {
		return m.GetTransactionsFunc(ctx, userID, limit, offset)
	}
	panic("MockPointsService.GetTransactionsFunc not implemented")
}
func (m *MockPointsService) GetRank(ctx context.Context, userID string) (int, int, error) {
	if m.GetRankFunc != nil {
		return m.GetRankFunc(ctx, userID)
	}
	panic("MockPointsService.GetRankFunc not implemented")
}

// MockLeaderboardService
type MockLeaderboardService struct {
	GetLeaderboardFunc func(ctx context.Context, start, end int) (*dto.LeaderboardResponse, error)
}

func (m *MockLeaderboardService) GetLeaderboard(ctx context.Context, start, end int) (*dto.LeaderboardResponse, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, start, end)
	}
	panic("MockLeaderboardService.GetLeaderboardFunc not implemented")
}

// MockStreakService
type MockStreakService struct {
	GetUserStreaksFunc func(ctx context.Context, userID string) (*dto.UserStreaksResponse, error)
	RefreshFamilyFunc  func(ctx context.Context, userID string, family domain.StreakFamily, now time.Time) (domain.StreakSummary, error)
}

func (m *MockStreakService) GetUserStreaks(ctx context.Context, userID string) (*dto.UserStreaksResponse, error) {
	if m.GetUserStreaksFunc != nil {
		return m.GetUserStreaksFunc(ctx, userID)
	}
	panic("MockStreakService.GetUserStreaksFunc not implemented")
}
func (m *MockStreakService) RefreshFamily(ctx context.Context, userID string, family domain.StreakFamily, now time.Time) (domain.StreakSummary, error) {
	if m.RefreshFamilyFunc != nil {
		return m.RefreshFamilyFunc(ctx, userID, family, now)
	}
	panic("MockStreakService.RefreshFamilyFunc not implemented")
}
