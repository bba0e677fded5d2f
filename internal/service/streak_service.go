package service

import (
	"context"
	"fmt"
	"time"

	"study-track/internal/domain"
	"study-track/internal/dto"
)

// StreakService computes streaks from the activity log and maintains the
// persisted per-family records.
type StreakService interface {
	// GetUserStreaks recomputes both streak families from the raw log and
	// returns them with display levels. The stored records are refreshed as
	// a side effect so stale state self-heals on read.
	GetUserStreaks(ctx context.Context, userID string) (*dto.UserStreaksResponse, error)
	// RefreshFamily recomputes one family and persists the record. Called
	// after ingesting an activity that belongs to the family.
	RefreshFamily(ctx context.Context, userID string, family domain.StreakFamily, now time.Time) (domain.StreakSummary, error)
}

type streakServiceImpl struct {
	activityRepo domain.ActivityRepository
	streakRepo   domain.StreakRepository
}

// NewStreakService creates a new StreakService.
func NewStreakService(activityRepo domain.ActivityRepository, streakRepo domain.StreakRepository) StreakService {
	return &streakServiceImpl{
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
	}
}

func familyTypes(family domain.StreakFamily) []domain.ActivityType {
	if family == domain.StreakFamilyLogin {
		return []domain.ActivityType{domain.ActivityLogin}
	}
	return domain.StudyStreakActivityTypes()
}

// RefreshFamily recomputes the family's streak from timestamps and upserts
// the stored record.
func (s *streakServiceImpl) RefreshFamily(ctx context.Context, userID string, family domain.StreakFamily, now time.Time) (domain.StreakSummary, error) {
	times, err := s.activityRepo.GetActivityTimestamps(ctx, userID, familyTypes(family))
	if err != nil {
		return domain.StreakSummary{}, fmt.Errorf("failed to load %s activity for user %s: %w", family, userID, err)
	}

	summary := domain.ComputeStreak(times, now, domain.AnchorToday)

	var lastDay time.Time
	if len(times) > 0 {
		lastDay = times[len(times)-1].UTC().Truncate(24 * time.Hour)
	}

	record := &domain.StreakRecord{
		UserID:           userID,
		Family:           family,
		CurrentStreak:    summary.Current,
		LongestStreak:    summary.Longest,
		LastActivityDate: lastDay,
	}
	if err := s.streakRepo.UpsertStreak(ctx, record); err != nil {
		return domain.StreakSummary{}, err
	}
	return summary, nil
}

// GetUserStreaks returns both families with display levels.
func (s *streakServiceImpl) GetUserStreaks(ctx context.Context, userID string) (*dto.UserStreaksResponse, error) {
	now := time.Now()

	login, err := s.RefreshFamily(ctx, userID, domain.StreakFamilyLogin, now)
	if err != nil {
		return nil, err
	}
	study, err := s.RefreshFamily(ctx, userID, domain.StreakFamilyStudy, now)
	if err != nil {
		return nil, err
	}

	return &dto.UserStreaksResponse{
		Login: toStreakResponse(domain.StreakFamilyLogin, login),
		Study: toStreakResponse(domain.StreakFamilyStudy, study),
	}, nil
}

func toStreakResponse(family domain.StreakFamily, summary domain.StreakSummary) dto.StreakResponse {
	level, milestone := domain.StreakLevel(summary.Current)
	return dto.StreakResponse{
		Family:        string(family),
		Current:       summary.Current,
		Longest:       summary.Longest,
		Level:         level,
		NextMilestone: milestone,
	}
}
