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

const (
	DefaultActivityPageSize = 20
	MaxActivityPageSize     = 100
)

// ActivityService owns activity ingestion and the activity read surface.
type ActivityService interface {
	// RecordActivity validates and appends one event, then refreshes the
	// streak family the event belongs to, if any.
	RecordActivity(ctx context.Context, userID string, req dto.RecordActivityRequest) (*dto.ActivityResponse, error)
	GetRecentActivities(ctx context.Context, userID string, limit, offset int) (*dto.ActivityListResponse, error)
	GetActivityStats(ctx context.Context, userID string) (*dto.ActivityStatsResponse, error)
}

type activityServiceImpl struct {
	activityRepo  domain.ActivityRepository
	streakService StreakService
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo domain.ActivityRepository, streakService StreakService) ActivityService {
	return &activityServiceImpl{
		activityRepo:  activityRepo,
		streakService: streakService,
	}
}

// RecordActivity appends the event and refreshes the affected streak family.
// A streak refresh failure does not fail the ingestion: the event is already
// durable and the next refresh self-heals.
func (s *activityServiceImpl) RecordActivity(ctx context.Context, userID string, req dto.RecordActivityRequest) (*dto.ActivityResponse, error) {
	l := logger.Get()

	activityType, err := domain.ParseActivityType(req.ActivityType)
	if err != nil {
		return nil, err
	}

	event := &domain.ActivityEvent{
		UserID:    userID,
		Type:      activityType,
		Metadata:  domain.Metadata(req.Metadata),
		Timestamp: time.Now(),
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.CreateActivity(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	if family, ok := streakFamilyFor(activityType); ok {
		if _, err := s.streakService.RefreshFamily(ctx, userID, family, event.Timestamp); err != nil {
			l.Warn("Failed to refresh streak after activity",
				zap.String("user_id", userID),
				zap.String("family", string(family)),
				zap.Error(err))
		}
	}

	return &dto.ActivityResponse{
		ID:           event.ID,
		ActivityType: string(event.Type),
		Metadata:     event.Metadata,
		CreatedAt:    event.Timestamp,
	}, nil
}

func streakFamilyFor(t domain.ActivityType) (domain.StreakFamily, bool) {
	switch {
	case t == domain.ActivityLogin:
		return domain.StreakFamilyLogin, true
	case domain.IsStreakActivity(t):
		return domain.StreakFamilyStudy, true
	}
	return "", false
}

// GetRecentActivities returns a page of the user's history, newest first.
func (s *activityServiceImpl) GetRecentActivities(ctx context.Context, userID string, limit, offset int) (*dto.ActivityListResponse, error) {
	if limit <= 0 {
		limit = DefaultActivityPageSize
	}
	if limit > MaxActivityPageSize {
		limit = MaxActivityPageSize
	}
	if offset < 0 {
		offset = 0
	}

	events, err := s.activityRepo.GetActivitiesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.activityRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ActivityListResponse{
		Activities: make([]dto.ActivityResponse, 0, len(events)),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}
	for _, e := range events {
		resp.Activities = append(resp.Activities, dto.ActivityResponse{
			ID:           e.ID,
			ActivityType: string(e.Type),
			Metadata:     e.Metadata,
			CreatedAt:    e.Timestamp,
		})
	}
	return resp, nil
}

// GetActivityStats summarizes the user's lifetime activity.
func (s *activityServiceImpl) GetActivityStats(ctx context.Context, userID string) (*dto.ActivityStatsResponse, error) {
	counts, err := s.activityRepo.CountByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ActivityStatsResponse{CountsByType: make(map[string]int, len(counts))}
	for t, n := range counts {
		resp.CountsByType[string(t)] = n
		resp.TotalActivities += n
	}
	return resp, nil
}
