package domain

import (
	"context"
	"time"
)

// ActivityRepository persists and queries the append-only activity log.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, event *ActivityEvent) error
	GetActivitiesByUser(ctx context.Context, userID string, limit, offset int) ([]*ActivityEvent, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// CountByType returns lifetime per-type activity counts for the user.
	CountByType(ctx context.Context, userID string) (map[ActivityType]int, error)
	// GetActivityTimestamps returns the raw timestamps of the user's
	// activities restricted to the given types, for streak computation.
	GetActivityTimestamps(ctx context.Context, userID string, types []ActivityType) ([]time.Time, error)
}

// BadgeRepository persists the badge catalog and per-user badge state.
type BadgeRepository interface {
	CreateBadge(ctx context.Context, badge *BadgeDefinition) error
	GetAllBadges(ctx context.Context) ([]*BadgeDefinition, error)
	GetBadgeByName(ctx context.Context, name string) (*BadgeDefinition, error)
	// GetUserBadges returns the full catalog joined with the user's state;
	// badges the user has no row for come back with zero progress.
	GetUserBadges(ctx context.Context, userID string) ([]*UserBadgeView, error)
	CountEarned(ctx context.Context, userID string) (int, error)
	// UpsertAward marks the badge earned with progress 100. Idempotent: an
	// already-earned badge is left untouched and the call reports awarded=false.
	UpsertAward(ctx context.Context, userID, badgeID string, earnedAt time.Time) (awarded bool, err error)
	// UpsertProgress records partial progress without earning. It never
	// downgrades an earned badge.
	UpsertProgress(ctx context.Context, userID, badgeID string, progress int) error
}

// StreakRepository persists computed streak state per (user, family).
type StreakRepository interface {
	GetStreak(ctx context.Context, userID string, family StreakFamily) (*StreakRecord, error)
	// UpsertStreak writes the record, preserving the Longest >= Current
	// invariant against whatever is already stored.
	UpsertStreak(ctx context.Context, record *StreakRecord) error
}

// PointsRepository persists the append-only points ledger.
type PointsRepository interface {
	CreateTransaction(ctx context.Context, tx *PointsTransaction) error
	GetTransactionsByUser(ctx context.Context, userID string, limit, offset int) ([]*PointsTransaction, error)
	SumPointsByUser(ctx context.Context, userID string) (int, error)
}

// UserRepository persists users and the cached points total.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	// AddPoints atomically bumps the cached total by delta.
	AddPoints(ctx context.Context, userID string, delta int) error
	// ListByPoints returns the top users ordered by total points descending,
	// ties broken by ID ascending for a stable ranking.
	ListByPoints(ctx context.Context, limit int) ([]*User, error)
	CountUsers(ctx context.Context) (int, error)
	// CountUsersWithMorePoints supports 1-based rank derivation: rank is the
	// returned count plus one.
	CountUsersWithMorePoints(ctx context.Context, points int) (int, error)
}
