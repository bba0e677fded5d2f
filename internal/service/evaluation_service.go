package service

import (
	"context"
	"errors"
	"time"

	"study-track/internal/domain"
	"study-track/internal/dto"
	"study-track/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EvaluationService orchestrates badge evaluation: remote first when a
// remote evaluator is configured, local fallback otherwise or on remote
// failure. A local persistence failure is terminal, not retried.
type EvaluationService interface {
	CheckAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*dto.EvaluationResponse, error)
}

type evaluationServiceImpl struct {
	remote        domain.RemoteEvaluator // nil when no remote is configured
	badgeService  BadgeService
	remoteTimeout time.Duration
	group         singleflight.Group
}

// NewEvaluationService creates a new EvaluationService. Pass a nil remote to
// run every evaluation locally.
func NewEvaluationService(remote domain.RemoteEvaluator, badgeService BadgeService, remoteTimeout time.Duration) EvaluationService {
	return &evaluationServiceImpl{
		remote:        remote,
		badgeService:  badgeService,
		remoteTimeout: remoteTimeout,
	}
}

// CheckAll evaluates every badge for the user. Concurrent calls for the same
// user collapse into one evaluation via singleflight; evaluation is
// idempotent, so sharing a result between callers is safe.
func (s *evaluationServiceImpl) CheckAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*dto.EvaluationResponse, error) {
	result, err, _ := s.group.Do(userID, func() (interface{}, error) {
		return s.checkAll(ctx, userID, activityType, metadata, authToken)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.EvaluationResponse), nil
}

func (s *evaluationServiceImpl) checkAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*dto.EvaluationResponse, error) {
	l := logger.Get()

	if s.remote != nil {
		remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		evaluation, err := s.remote.CheckAll(remoteCtx, userID, activityType, metadata, authToken)
		cancel()
		if err == nil {
			return toEvaluationResponse(evaluation), nil
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.ErrUnauthorized {
			l.Warn("Remote evaluator rejected credentials, falling back to local evaluation",
				zap.String("user_id", userID))
		} else {
			l.Warn("Remote evaluation failed, falling back to local evaluation",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	evaluation, err := s.badgeService.EvaluateLocally(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(evaluation), nil
}

func toEvaluationResponse(e *domain.Evaluation) *dto.EvaluationResponse {
	resp := &dto.EvaluationResponse{
		Success:    true,
		Source:     string(e.Source),
		BadgeCount: len(e.NewBadges),
		NewBadges:  make([]dto.AwardedBadgeResponse, 0, len(e.NewBadges)),
		Results:    make([]dto.BadgeCheckResult, 0, len(e.Results)),
	}
	for _, b := range e.NewBadges {
		resp.NewBadges = append(resp.NewBadges, dto.AwardedBadgeResponse{ID: b.ID, Name: b.Name})
	}
	for _, r := range e.Results {
		resp.Results = append(resp.Results, dto.BadgeCheckResult{BadgeName: r.BadgeName, Earned: r.Awarded})
	}
	return resp
}
