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

func daysBack(now time.Time, offsets ...int) []time.Time {
	times := make([]time.Time, 0, len(offsets))
	for _, d := range offsets {
		times = append(times, now.AddDate(0, 0, -d))
	}
	return times
}

func TestStreakService_RefreshFamily_ComputesAndPersists(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	streakRepo := new(MockStreakRepository)
	svc := NewStreakService(activityRepo, streakRepo)

	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	// Five consecutive days ending today.
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", []domain.ActivityType{domain.ActivityLogin}).
		Return(daysBack(now, 4, 3, 2, 1, 0), nil)
	streakRepo.On("UpsertStreak", mock.Anything, mock.MatchedBy(func(r *domain.StreakRecord) bool {
		return r.UserID == "user1" &&
			r.Family == domain.StreakFamilyLogin &&
			r.CurrentStreak == 5 &&
			r.LongestStreak == 5
	})).Return(nil)

	summary, err := svc.RefreshFamily(context.Background(), "user1", domain.StreakFamilyLogin, now)

	require.NoError(t, err)
	assert.Equal(t, domain.StreakSummary{Current: 5, Longest: 5}, summary)
	streakRepo.AssertExpectations(t)
}

func TestStreakService_RefreshFamily_StudyUsesStudyTypes(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	streakRepo := new(MockStreakRepository)
	svc := NewStreakService(activityRepo, streakRepo)

	now := time.Now().UTC()
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", domain.StudyStreakActivityTypes()).
		Return([]time.Time{}, nil)
	streakRepo.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)

	summary, err := svc.RefreshFamily(context.Background(), "user1", domain.StreakFamilyStudy, now)

	require.NoError(t, err)
	assert.Equal(t, domain.StreakSummary{}, summary)
	activityRepo.AssertExpectations(t)
}

func TestStreakService_GetUserStreaks_LevelsAndMilestones(t *testing.T) {
	activityRepo := new(MockActivityRepository)
	streakRepo := new(MockStreakRepository)
	svc := NewStreakService(activityRepo, streakRepo)

	now := time.Now().UTC()
	// 8 consecutive login days -> silver; no study activity -> bronze.
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", []domain.ActivityType{domain.ActivityLogin}).
		Return(daysBack(now, 7, 6, 5, 4, 3, 2, 1, 0), nil)
	activityRepo.On("GetActivityTimestamps", mock.Anything, "user1", domain.StudyStreakActivityTypes()).
		Return([]time.Time{}, nil)
	streakRepo.On("UpsertStreak", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.GetUserStreaks(context.Background(), "user1")

	require.NoError(t, err)
	assert.Equal(t, "login", resp.Login.Family)
	assert.Equal(t, 8, resp.Login.Current)
	assert.Equal(t, "silver", resp.Login.Level)
	assert.Equal(t, 14, resp.Login.NextMilestone)

	assert.Equal(t, "study", resp.Study.Family)
	assert.Equal(t, 0, resp.Study.Current)
	assert.Equal(t, "bronze", resp.Study.Level)
	assert.Equal(t, 3, resp.Study.NextMilestone)
}
