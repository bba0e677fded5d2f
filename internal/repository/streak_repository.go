package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"study-track/internal/domain"
	"study-track/internal/repository/models"
	"study-track/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxStreakRepository implements domain.StreakRepository using sqlx.
type sqlxStreakRepository struct {
	db *sqlx.DB
}

// NewSQLXStreakRepository creates a new instance of sqlxStreakRepository.
func NewSQLXStreakRepository(db *sqlx.DB) domain.StreakRepository {
	return &sqlxStreakRepository{db: db}
}

func toDomainStreak(m *models.UserStreak) *domain.StreakRecord {
	if m == nil {
		return nil
	}
	return &domain.StreakRecord{
		ID:               m.ID,
		UserID:           m.UserID,
		Family:           domain.StreakFamily(m.StreakFamily),
		CurrentStreak:    m.CurrentStreak,
		LongestStreak:    m.LongestStreak,
		LastActivityDate: m.LastActivityDate,
	}
}

// GetStreak returns the stored streak for (user, family), nil when none exists.
func (r *sqlxStreakRepository) GetStreak(ctx context.Context, userID string, family domain.StreakFamily) (*domain.StreakRecord, error) {
	executor := GetExecutor(ctx, r.db)

	var row models.UserStreak
	query := `SELECT ID, USER_ID, STREAK_FAMILY, CURRENT_STREAK, LONGEST_STREAK, LAST_ACTIVITY_DATE, CREATED_AT, UPDATED_AT
	          FROM user_streaks WHERE USER_ID = :1 AND STREAK_FAMILY = :2`

	if err := executor.GetContext(ctx, &row, query, userID, string(family)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s streak for user %s: %w", family, userID, err)
	}
	return toDomainStreak(&row), nil
}

// UpsertStreak writes the record. GREATEST on the longest column keeps the
// stored longest from ever shrinking, even against a stale compute.
func (r *sqlxStreakRepository) UpsertStreak(ctx context.Context, record *domain.StreakRecord) error {
	executor := GetExecutor(ctx, r.db)

	longest := util.MaxInt(record.LongestStreak, record.CurrentStreak)
	now := time.Now()

	query := `MERGE INTO user_streaks us
	          USING (SELECT :1 AS USER_ID, :2 AS STREAK_FAMILY FROM dual) src
	          ON (us.USER_ID = src.USER_ID AND us.STREAK_FAMILY = src.STREAK_FAMILY)
	          WHEN MATCHED THEN UPDATE SET
	              us.CURRENT_STREAK = :3,
	              us.LONGEST_STREAK = GREATEST(us.LONGEST_STREAK, :4),
	              us.LAST_ACTIVITY_DATE = :5,
	              us.UPDATED_AT = :6
	          WHEN NOT MATCHED THEN INSERT
	              (ID, USER_ID, STREAK_FAMILY, CURRENT_STREAK, LONGEST_STREAK, LAST_ACTIVITY_DATE, CREATED_AT, UPDATED_AT)
	              VALUES (:7, src.USER_ID, src.STREAK_FAMILY, :3, :4, :5, :6, :6)`

	_, err := executor.ExecContext(ctx, query,
		record.UserID,
		string(record.Family),
		record.CurrentStreak,
		longest,
		record.LastActivityDate,
		now,
		util.NewULID(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s streak for user %s: %w", record.Family, record.UserID, err)
	}
	return nil
}
