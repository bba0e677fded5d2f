package service

import (
	"context"
	"fmt"
	"time"

	"study-track/internal/domain"

	"golang.org/x/sync/errgroup"
)

// MetricsCollector aggregates everything the badge rule set thresholds over
// into one I/O-free snapshot. The individual reads are independent, so they
// run concurrently.
type MetricsCollector struct {
	activityRepo domain.ActivityRepository
	badgeRepo    domain.BadgeRepository
	userRepo     domain.UserRepository
	ruleSet      *domain.BadgeRuleSet
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector(
	activityRepo domain.ActivityRepository,
	badgeRepo domain.BadgeRepository,
	userRepo domain.UserRepository,
	ruleSet *domain.BadgeRuleSet,
) *MetricsCollector {
	return &MetricsCollector{
		activityRepo: activityRepo,
		badgeRepo:    badgeRepo,
		userRepo:     userRepo,
		ruleSet:      ruleSet,
	}
}

// Collect builds the metrics snapshot for one user as of now. Streaks are
// recomputed from the raw activity log rather than trusted from stored state.
func (c *MetricsCollector) Collect(ctx context.Context, userID string, now time.Time) (*domain.UserMetrics, error) {
	metrics := &domain.UserMetrics{
		TotalBadgeCount: c.ruleSet.Len(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := c.activityRepo.CountByType(gctx, userID)
		if err != nil {
			return fmt.Errorf("activity counts: %w", err)
		}
		metrics.Counts = counts
		return nil
	})

	g.Go(func() error {
		times, err := c.activityRepo.GetActivityTimestamps(gctx, userID, []domain.ActivityType{domain.ActivityLogin})
		if err != nil {
			return fmt.Errorf("login timestamps: %w", err)
		}
		metrics.LoginStreak = domain.ComputeStreak(times, now, domain.AnchorToday)
		return nil
	})

	g.Go(func() error {
		times, err := c.activityRepo.GetActivityTimestamps(gctx, userID, domain.StudyStreakActivityTypes())
		if err != nil {
			return fmt.Errorf("study timestamps: %w", err)
		}
		metrics.StudyStreak = domain.ComputeStreak(times, now, domain.AnchorToday)
		return nil
	})

	g.Go(func() error {
		earned, err := c.badgeRepo.CountEarned(gctx, userID)
		if err != nil {
			return fmt.Errorf("earned badges: %w", err)
		}
		metrics.EarnedBadgeCount = earned
		return nil
	})

	g.Go(func() error {
		user, err := c.userRepo.GetUserByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("user: %w", err)
		}
		if user == nil {
			return domain.NewNotFoundError("user " + userID)
		}
		size, err := c.userRepo.CountUsers(gctx)
		if err != nil {
			return fmt.Errorf("user count: %w", err)
		}
		// A user with no points yet has not entered the leaderboard.
		if user.TotalPoints > 0 {
			ahead, err := c.userRepo.CountUsersWithMorePoints(gctx, user.TotalPoints)
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}
			metrics.LeaderboardRank = ahead + 1
		}
		metrics.LeaderboardSize = size
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}
