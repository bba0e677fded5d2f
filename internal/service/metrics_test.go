package service

import (
	"context"
	"testing"
	"time"

	"study-track/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_Collect(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	badgeRepo := new(MockBadgeRepository)
	userRepo := new(MockUserRepository)
	ruleSet := domain.DefaultRuleSet()
	collector := NewMetricsCollector(activityRepo, badgeRepo, userRepo, ruleSet)

	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	activityRepo.On("CountByType", mock.Anything, "user1").Return(map[domain.ActivityType]int{
		domain.ActivityLogin:          6,
		domain.ActivityTextSummarized: 4,
	}, nil)
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", []domain.ActivityType{domain.ActivityLogin}).
		Return(daysBack(now, 2, 1, 0), nil)
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", domain.StudyStreakActivityTypes()).
		Return(daysBack(now, 0), nil)
	badgeRepo.On("CountEarned", mock.Anything, "user1").Return(2, nil)
	userRepo.On("GetUserByID", mock.Anything, "user1").
		Return(&domain.User{ID: "user1", TotalPoints: 120}, nil)
	userRepo.On("CountUsers", mock.Anything).Return(30, nil)
	userRepo.On("CountUsersWithMorePoints", mock.Anything, 120).Return(6, nil)

	metrics, err := collector.Collect(context.Background(), "user1", now)

	require.NoError(t, err)
	assert.Equal(t, 6, metrics.Counts[domain.ActivityLogin])
	assert.Equal(t, domain.StreakSummary{Current: 3, Longest: 3}, metrics.LoginStreak)
	assert.Equal(t, domain.StreakSummary{Current: 1, Longest: 1}, metrics.StudyStreak)
	assert.Equal(t, 2, metrics.EarnedBadgeCount)
	assert.Equal(t, ruleSet.Len(), metrics.TotalBadgeCount)
	assert.Equal(t, 7, metrics.LeaderboardRank)
	assert.Equal(t, 30, metrics.LeaderboardSize)
}

func TestMetricsCollector_Collect_UserNotFound(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	badgeRepo := new(MockBadgeRepository)
	userRepo := new(MockUserRepository)
	collector := NewMetricsCollector(activityRepo, badgeRepo, userRepo, domain.DefaultRuleSet())

	activityRepo.On("CountByType", mock.Anything, "ghost").Return(map[domain.ActivityType]int{}, nil)
	activityRepo.On("GetActivityTimestamps", mock.Anything, "ghost", mock.Anything).Return([]time.Time{}, nil)
	badgeRepo.On("CountEarned", mock.Anything, "ghost").Return(0, nil)
	userRepo.On("GetUserByID", mock.Anything, "ghost").Return(nil, nil)
	userRepo.On("CountUsers", mock.Anything).Return(30, nil)

	metrics, err := collector.Collect(context.Background(), "ghost", time.Now())

	assert.Nil(t, metrics)
	assert.Error(t, err)
}

func TestMetricsCollector_Collect_ZeroPointsUnranked(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	badgeRepo := new(MockBadgeRepository)
	userRepo := new(MockUserRepository)
	collector := NewMetricsCollector(activityRepo, badgeRepo, userRepo, domain.DefaultRuleSet())

	activityRepo.On("CountByType", mock.Anything, "user1").Return(map[domain.ActivityType]int{}, nil)
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", mock.Anything).Return([]time.Time{}, nil)
	badgeRepo.On("CountEarned", mock.Anything, "user1").Return(0, nil)
	userRepo.On("GetUserByID", mock.Anything, "user1").Return(&domain.User{ID: "user1", TotalPoints: 0}, nil)
	userRepo.On("CountUsers", mock.Anything).Return(30, nil)

	metrics, err := collector.Collect(context.Background(), "user1", time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, metrics.LeaderboardRank)
	userRepo.AssertNotCalled(t, "CountUsersWithMorePoints", mock.Anything, mock.Anything)
}
