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

// BadgeService owns the local badge evaluation path and the badge read
// surface.
type BadgeService interface {
	// EvaluateLocally runs the full rule set against fresh metrics and
	// persists awards and progress. Safe to call repeatedly: awards are
	// idempotent and progress only moves forward.
	EvaluateLocally(ctx context.Context, userID string) (*domain.Evaluation, error)
	// AwardBadgeByName idempotently awards one badge and re-checks the
	// collector badges, which may newly qualify from the bumped count.
	AwardBadgeByName(ctx context.Context, userID, badgeName string) (bool, error)
	GetBadges(ctx context.Context, userID string, showAll bool) (*dto.BadgeListResponse, error)
}

type badgeServiceImpl struct {
	badgeRepo domain.BadgeRepository
	collector *MetricsCollector
	txManager domain.TransactionManager
	ruleSet   *domain.BadgeRuleSet
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(
	badgeRepo domain.BadgeRepository,
	collector *MetricsCollector,
	txManager domain.TransactionManager,
	ruleSet *domain.BadgeRuleSet,
) BadgeService {
	return &badgeServiceImpl{
		badgeRepo: badgeRepo,
		collector: collector,
		txManager: txManager,
		ruleSet:   ruleSet,
	}
}

// EvaluateLocally collects metrics, applies every rule, and persists the
// outcome in one transaction. Collector badges get a second pass inside the
// same transaction so a burst of first-pass awards counts immediately.
func (s *badgeServiceImpl) EvaluateLocally(ctx context.Context, userID string) (*domain.Evaluation, error) {
	l := logger.Get()

	metrics, err := s.collector.Collect(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to collect metrics for user %s: %w", userID, err)
	}

	catalog, err := s.badgeRepo.GetAllBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}
	byName := make(map[string]*domain.BadgeDefinition, len(catalog))
	for _, b := range catalog {
		byName[b.Name] = b
	}

	decisions := s.ruleSet.Evaluate(*metrics)

	evaluation := &domain.Evaluation{Source: domain.SourceLocal}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		newlyEarned := 0
		for _, d := range decisions {
			badge, ok := byName[d.BadgeName]
			if !ok {
				l.Warn("Rule references a badge missing from the catalog",
					zap.String("badge_name", d.BadgeName))
				continue
			}
			awarded, err := s.applyDecision(txCtx, userID, badge, d)
			if err != nil {
				return err
			}
			if awarded {
				newlyEarned++
				evaluation.NewBadges = append(evaluation.NewBadges, domain.AwardedBadge{ID: badge.ID, Name: badge.Name})
			}
			evaluation.Results = append(evaluation.Results, domain.AwardResult{BadgeName: d.BadgeName, Awarded: d.ShouldEarn})
		}

		if newlyEarned == 0 {
			return nil
		}

		// Second pass: the collector badges threshold the earned count,
		// which the first pass just changed.
		metrics.EarnedBadgeCount += newlyEarned
		for _, d := range s.ruleSet.EvaluateCollectors(*metrics) {
			if !d.ShouldEarn {
				continue
			}
			badge, ok := byName[d.BadgeName]
			if !ok {
				continue
			}
			awarded, err := s.badgeRepo.UpsertAward(txCtx, userID, badge.ID, time.Now())
			if err != nil {
				return err
			}
			if awarded {
				evaluation.NewBadges = append(evaluation.NewBadges, domain.AwardedBadge{ID: badge.ID, Name: badge.Name})
				markAwarded(evaluation.Results, d.BadgeName)
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.NewEvaluationFailedError(err)
	}

	if len(evaluation.NewBadges) > 0 {
		l.Info("Badges awarded",
			zap.String("user_id", userID),
			zap.Int("count", len(evaluation.NewBadges)))
	}
	return evaluation, nil
}

func (s *badgeServiceImpl) applyDecision(ctx context.Context, userID string, badge *domain.BadgeDefinition, d domain.BadgeDecision) (bool, error) {
	if d.ShouldEarn {
		return s.badgeRepo.UpsertAward(ctx, userID, badge.ID, time.Now())
	}
	if d.ProgressPercent > 0 {
		if err := s.badgeRepo.UpsertProgress(ctx, userID, badge.ID, d.ProgressPercent); err != nil {
			return false, err
		}
	}
	return false, nil
}

func markAwarded(results []domain.AwardResult, badgeName string) {
	for i := range results {
		if results[i].BadgeName == badgeName {
			results[i].Awarded = true
			return
		}
	}
}

// AwardBadgeByName awards a single badge by catalog name, then re-checks the
// collector badges against the new earned count, all in one transaction.
func (s *badgeServiceImpl) AwardBadgeByName(ctx context.Context, userID, badgeName string) (bool, error) {
	badge, err := s.badgeRepo.GetBadgeByName(ctx, badgeName)
	if err != nil {
		return false, err
	}

	var awarded bool
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		awarded, err = s.badgeRepo.UpsertAward(txCtx, userID, badge.ID, time.Now())
		if err != nil {
			return err
		}
		if !awarded {
			return nil
		}

		earned, err := s.badgeRepo.CountEarned(txCtx, userID)
		if err != nil {
			return err
		}
		collectorMetrics := domain.UserMetrics{
			EarnedBadgeCount: earned,
			TotalBadgeCount:  s.ruleSet.Len(),
		}
		catalog, err := s.badgeRepo.GetAllBadges(txCtx)
		if err != nil {
			return err
		}
		byName := make(map[string]*domain.BadgeDefinition, len(catalog))
		for _, b := range catalog {
			byName[b.Name] = b
		}
		for _, d := range s.ruleSet.EvaluateCollectors(collectorMetrics) {
			if !d.ShouldEarn {
				continue
			}
			collectorBadge, ok := byName[d.BadgeName]
			if !ok {
				continue
			}
			if _, err := s.badgeRepo.UpsertAward(txCtx, userID, collectorBadge.ID, time.Now()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return awarded, nil
}

// GetBadges returns the badge page. With showAll the whole catalog comes
// back including unearned badges with partial progress; without it only
// earned badges.
func (s *badgeServiceImpl) GetBadges(ctx context.Context, userID string, showAll bool) (*dto.BadgeListResponse, error) {
	views, err := s.badgeRepo.GetUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges for user %s: %w", userID, err)
	}

	resp := &dto.BadgeListResponse{TotalCount: len(views)}
	for _, v := range views {
		if v.IsEarned {
			resp.EarnedCount++
		}
		if !showAll && !v.IsEarned {
			continue
		}
		resp.Badges = append(resp.Badges, dto.BadgeResponse{
			ID:          v.Badge.ID,
			Name:        v.Badge.Name,
			Description: v.Badge.Description,
			ImageURL:    v.Badge.ImageURL,
			Category:    v.Badge.Category,
			IsEarned:    v.IsEarned,
			Progress:    v.Progress,
			EarnedAt:    v.EarnedAt,
		})
	}
	return resp, nil
}
