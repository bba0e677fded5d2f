package service

import (
	"context"
	"time"

	"study-track/internal/domain"
	"study-track/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) CreateActivity(ctx context.Context, event *domain.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockActivityRepository) GetActivitiesByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.ActivityEvent, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityEvent), args.Error(1)
}

func (m *MockActivityRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockActivityRepository) CountByType(ctx context.Context, userID string) (map[domain.ActivityType]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ActivityType]int), args.Error(1)
}

func (m *MockActivityRepository) GetActivityTimestamps(ctx context.Context, userID string, types []domain.ActivityType) ([]time.Time, error) {
	args := m.Called(ctx, userID, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

// --- MockBadgeRepository ---
type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) CreateBadge(ctx context.Context, badge *domain.BadgeDefinition) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *MockBadgeRepository) GetAllBadges(ctx context.Context) ([]*domain.BadgeDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BadgeDefinition), args.Error(1)
}

func (m *MockBadgeRepository) GetBadgeByName(ctx context.Context, name string) (*domain.BadgeDefinition, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BadgeDefinition), args.Error(1)
}

func (m *MockBadgeRepository) GetUserBadges(ctx context.Context, userID string) ([]*domain.UserBadgeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserBadgeView), args.Error(1)
}

func (m *MockBadgeRepository) CountEarned(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBadgeRepository) UpsertAward(ctx context.Context, userID, badgeID string, earnedAt time.Time) (bool, error) {
	args := m.Called(ctx, userID, badgeID, earnedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeRepository) UpsertProgress(ctx context.Context, userID, badgeID string, progress int) error {
	args := m.Called(ctx, userID, badgeID, progress)
	return args.Error(0)
}

// --- MockStreakRepository ---
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) GetStreak(ctx context.Context, userID string, family domain.StreakFamily) (*domain.StreakRecord, error) {
	args := m.Called(ctx, userID, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakRecord), args.Error(1)
}

func (m *MockStreakRepository) UpsertStreak(ctx context.Context, record *domain.StreakRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- MockPointsRepository ---
type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPointsRepository) GetTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.PointsTransaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PointsTransaction), args.Error(1)
}

func (m *MockPointsRepository) SumPointsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockUserRepository) ListByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CountUsersWithMorePoints(ctx context.Context, points int) (int, error) {
	args := m.Called(ctx, points)
	return args.Int(0), args.Error(1)
}

// --- MockTransactionManager ---
// Runs the function directly; the transactional context is the caller's.
// Set Err to fail the transaction before fn runs.
type MockTransactionManager struct {
	Err error
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

// --- MockRemoteEvaluator ---
type MockRemoteEvaluator struct {
	mock.Mock
}

func (m *MockRemoteEvaluator) CheckAll(ctx context.Context, userID string, activityType domain.ActivityType, metadata domain.Metadata, authToken string) (*domain.Evaluation, error) {
	args := m.Called(ctx, userID, activityType, metadata, authToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) HSet(ctx context.Context, key string, field string, value string) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

// --- MockBadgeService ---
type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) EvaluateLocally(ctx context.Context, userID string) (*domain.Evaluation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *MockBadgeService) AwardBadgeByName(ctx context.Context, userID, badgeName string) (bool, error) {
	args := m.Called(ctx, userID, badgeName)
	return args.Bool(0), args.Error(1)
}

func (m *MockBadgeService) GetBadges(ctx context.Context, userID string, showAll bool) (*dto.BadgeListResponse, error) {
	args := m.Called(ctx, userID, showAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BadgeListResponse), args.Error(1)
}

// --- MockStreakService ---
type MockStreakService struct {
	mock.Mock
}

func (m *MockStreakService) GetUserStreaks(ctx context.Context, userID string) (*dto.UserStreaksResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserStreaksResponse), args.Error(1)
}

func (m *MockStreakService) RefreshFamily(ctx context.Context, userID string, family domain.StreakFamily, now time.Time) (domain.StreakSummary, error) {
	args := m.Called(ctx, userID, family, now)
	return args.Get(0).(domain.StreakSummary), args.Error(1)
}
