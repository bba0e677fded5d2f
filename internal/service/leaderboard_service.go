package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"study-track/internal/cache"
	"study-track/internal/domain"
	"study-track/internal/dto"
	"study-track/internal/logger"

	"go.uber.org/zap"
)

const (
	// MaxLeaderboardRange bounds how many rows one request may ask for.
	MaxLeaderboardRange = 100

	leaderboardServiceName = "leaderboard"
)

// LeaderboardService serves ranked pages. Ranks no real user occupies are
// filled with deterministic synthetic entries so the board always looks
// populated, and pages are cached in Redis.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, start, end int) (*dto.LeaderboardResponse, error)
}

type leaderboardServiceImpl struct {
	userRepo  domain.UserRepository
	generator domain.SyntheticRankGenerator
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewLeaderboardService creates a new LeaderboardService. A nil cache
// disables caching.
func NewLeaderboardService(
	userRepo domain.UserRepository,
	generator domain.SyntheticRankGenerator,
	cacheAdapter domain.Cache,
	cacheTTL time.Duration,
) LeaderboardService {
	return &leaderboardServiceImpl{
		userRepo:  userRepo,
		generator: generator,
		cache:     cacheAdapter,
		cacheTTL:  cacheTTL,
	}
}

// GetLeaderboard returns the inclusive rank range [start, end].
func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context, start, end int) (*dto.LeaderboardResponse, error) {
	if start < 1 {
		return nil, domain.NewInvalidInputError("start must be at least 1")
	}
	if end < start {
		return nil, domain.NewInvalidInputError("end must not be below start")
	}
	if end-start+1 > MaxLeaderboardRange {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("range must not exceed %d entries", MaxLeaderboardRange))
	}

	l := logger.Get()
	cacheKey := cache.GenerateCacheKey(leaderboardServiceName, "page", fmt.Sprintf("%d-%d", start, end))

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.LeaderboardResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			l.Warn("Corrupt leaderboard cache entry, rebuilding", zap.String("key", cacheKey))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Leaderboard cache read failed", zap.Error(err))
		}
	}

	resp := s.buildPage(ctx, start, end)

	// Degraded pages carry fabricated data and must not outlive the outage.
	if s.cache == nil || resp.Degraded {
		return resp, nil
	}
	payload, err := json.Marshal(resp)
	if err == nil {
		err = s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL)
	}
	if err != nil {
		l.Warn("Leaderboard cache write failed", zap.Error(err))
	}
	return resp, nil
}

// buildPage ranks real users by points and fills the remaining ranks with
// synthetic entries. A real user without points keeps their name but shows
// generated points, flagged synthetic. When the store errors or holds no
// users the whole page is generated and the response is marked degraded;
// a page is always end-start+1 entries with non-increasing points.
func (s *leaderboardServiceImpl) buildPage(ctx context.Context, start, end int) *dto.LeaderboardResponse {
	resp := &dto.LeaderboardResponse{
		Start:   start,
		End:     end,
		Entries: make([]dto.LeaderboardEntryResponse, 0, end-start+1),
	}

	users, err := s.userRepo.ListByPoints(ctx, end)
	if err != nil {
		logger.Get().Warn("Leaderboard store unavailable, serving synthetic page",
			zap.Int("start", start),
			zap.Int("end", end),
			zap.Error(err))
		users = nil
	}
	if err != nil || len(users) == 0 {
		resp.Degraded = true
	}

	prevPoints := 0
	havePrev := false
	for rank := start; rank <= end; rank++ {
		var entry dto.LeaderboardEntryResponse
		if rank <= len(users) {
			user := users[rank-1]
			if user.TotalPoints > 0 {
				entry = dto.LeaderboardEntryResponse{
					UserID:   user.ID,
					Username: user.Username,
					Points:   user.TotalPoints,
					Rank:     rank,
				}
			} else {
				generated := s.generator.Entry(rank)
				entry = dto.LeaderboardEntryResponse{
					UserID:    user.ID,
					Username:  user.Username,
					Points:    generated.Points,
					Rank:      rank,
					Synthetic: true,
				}
			}
		} else {
			generated := s.generator.Entry(rank)
			entry = dto.LeaderboardEntryResponse{
				Username:  generated.Username,
				Points:    generated.Points,
				Rank:      rank,
				Synthetic: true,
			}
		}
		// A generated entry never outranks the points one rank above it.
		if entry.Synthetic && havePrev && entry.Points > prevPoints {
			entry.Points = prevPoints
		}
		prevPoints = entry.Points
		havePrev = true
		resp.Entries = append(resp.Entries, entry)
	}
	return resp
}
