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

// sqlxBadgeRepository implements domain.BadgeRepository using sqlx.
type sqlxBadgeRepository struct {
	db *sqlx.DB
}

// NewSQLXBadgeRepository creates a new instance of sqlxBadgeRepository.
func NewSQLXBadgeRepository(db *sqlx.DB) domain.BadgeRepository {
	return &sqlxBadgeRepository{db: db}
}

func toDomainBadge(m *models.Badge) *domain.BadgeDefinition {
	if m == nil {
		return nil
	}
	return &domain.BadgeDefinition{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		ImageURL:    m.ImageURL.String,
		Category:    m.Category.String,
	}
}

// CreateBadge inserts a catalog badge. Used by the seeder.
func (r *sqlxBadgeRepository) CreateBadge(ctx context.Context, badge *domain.BadgeDefinition) error {
	executor := GetExecutor(ctx, r.db)

	id := badge.ID
	if id == "" {
		id = util.NewULID()
	}
	now := time.Now()

	query := `INSERT INTO badges (ID, NAME, DESCRIPTION, IMAGE_URL, CATEGORY, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	_, err := executor.ExecContext(ctx, query,
		id,
		badge.Name,
		util.StringToNullString(badge.Description),
		util.StringToNullString(badge.ImageURL),
		util.StringToNullString(badge.Category),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create badge %q: %w", badge.Name, err)
	}
	badge.ID = id
	return nil
}

// GetAllBadges returns the full catalog ordered by name.
func (r *sqlxBadgeRepository) GetAllBadges(ctx context.Context) ([]*domain.BadgeDefinition, error) {
	executor := GetExecutor(ctx, r.db)

	var rows []models.Badge
	query := `SELECT ID, NAME, DESCRIPTION, IMAGE_URL, CATEGORY, CREATED_AT, UPDATED_AT
	          FROM badges ORDER BY NAME ASC`
	if err := executor.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}

	badges := make([]*domain.BadgeDefinition, 0, len(rows))
	for i := range rows {
		badges = append(badges, toDomainBadge(&rows[i]))
	}
	return badges, nil
}

// GetBadgeByName looks up a catalog badge by its unique name.
func (r *sqlxBadgeRepository) GetBadgeByName(ctx context.Context, name string) (*domain.BadgeDefinition, error) {
	executor := GetExecutor(ctx, r.db)

	var row models.Badge
	query := `SELECT ID, NAME, DESCRIPTION, IMAGE_URL, CATEGORY, CREATED_AT, UPDATED_AT
	          FROM badges WHERE NAME = :1`
	if err := executor.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewBadgeNotFoundError(name)
		}
		return nil, fmt.Errorf("failed to get badge by name %q: %w", name, err)
	}
	return toDomainBadge(&row), nil
}

// GetUserBadges returns the full catalog joined with the user's state.
// Catalog badges the user has no row for come back unearned at progress 0.
func (r *sqlxBadgeRepository) GetUserBadges(ctx context.Context, userID string) ([]*domain.UserBadgeView, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT b.ID AS BADGE_ID, b.NAME, b.DESCRIPTION, b.IMAGE_URL, b.CATEGORY,
	                 ub.IS_EARNED, ub.PROGRESS, ub.EARNED_AT
	          FROM badges b
	          LEFT JOIN user_badges ub ON ub.BADGE_ID = b.ID AND ub.USER_ID = :1
	          ORDER BY b.NAME ASC`

	var rows []models.UserBadgeRow
	if err := executor.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user badges for %s: %w", userID, err)
	}

	views := make([]*domain.UserBadgeView, 0, len(rows))
	for _, row := range rows {
		view := &domain.UserBadgeView{
			Badge: domain.BadgeDefinition{
				ID:          row.BadgeID,
				Name:        row.Name,
				Description: row.Description.String,
				ImageURL:    row.ImageURL.String,
				Category:    row.Category.String,
			},
			IsEarned: row.IsEarned.Valid && row.IsEarned.Bool,
			Progress: int(row.Progress.Int64),
			EarnedAt: util.NullTimeToPtr(row.EarnedAt),
		}
		views = append(views, view)
	}
	return views, nil
}

// CountEarned returns how many badges the user has earned.
func (r *sqlxBadgeRepository) CountEarned(ctx context.Context, userID string) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	query := `SELECT COUNT(*) FROM user_badges WHERE USER_ID = :1 AND IS_EARNED = 1`
	if err := executor.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count earned badges for user %s: %w", userID, err)
	}
	return total, nil
}

// UpsertAward marks the badge earned with progress 100. The matched update is
// restricted to unearned rows, so the earned flag is one-way, EARNED_AT is
// set exactly once, and the merged row count reports whether this call earned
// the badge. Concurrent callers race to a single awarded=true.
func (r *sqlxBadgeRepository) UpsertAward(ctx context.Context, userID, badgeID string, earnedAt time.Time) (bool, error) {
	executor := GetExecutor(ctx, r.db)

	now := time.Now()
	query := `MERGE INTO user_badges ub
	          USING (SELECT :1 AS USER_ID, :2 AS BADGE_ID FROM dual) src
	          ON (ub.USER_ID = src.USER_ID AND ub.BADGE_ID = src.BADGE_ID)
	          WHEN MATCHED THEN UPDATE SET
	              ub.IS_EARNED = 1, ub.PROGRESS = 100, ub.EARNED_AT = :3, ub.UPDATED_AT = :4
	              WHERE ub.IS_EARNED = 0
	          WHEN NOT MATCHED THEN INSERT
	              (ID, USER_ID, BADGE_ID, IS_EARNED, PROGRESS, EARNED_AT, NOTIFICATION_SHOWN, CREATED_AT, UPDATED_AT)
	              VALUES (:5, src.USER_ID, src.BADGE_ID, 1, 100, :3, 0, :4, :4)`

	result, err := executor.ExecContext(ctx, query, userID, badgeID, earnedAt, now, util.NewULID())
	if err != nil {
		return false, fmt.Errorf("failed to award badge %s to user %s: %w", badgeID, userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read award result for user %s: %w", userID, err)
	}
	return affected > 0, nil
}

// UpsertProgress records partial progress. An earned row is never touched and
// a stored value is only ever raised, so progress is monotone and 100 stays
// reserved for earns.
func (r *sqlxBadgeRepository) UpsertProgress(ctx context.Context, userID, badgeID string, progress int) error {
	executor := GetExecutor(ctx, r.db)

	progress = util.ClampInt(progress, 0, 99)
	now := time.Now()

	query := `MERGE INTO user_badges ub
	          USING (SELECT :1 AS USER_ID, :2 AS BADGE_ID FROM dual) src
	          ON (ub.USER_ID = src.USER_ID AND ub.BADGE_ID = src.BADGE_ID)
	          WHEN MATCHED THEN UPDATE SET
	              ub.PROGRESS = :3, ub.UPDATED_AT = :4
	              WHERE ub.IS_EARNED = 0 AND ub.PROGRESS < :3
	          WHEN NOT MATCHED THEN INSERT
	              (ID, USER_ID, BADGE_ID, IS_EARNED, PROGRESS, NOTIFICATION_SHOWN, CREATED_AT, UPDATED_AT)
	              VALUES (:5, src.USER_ID, src.BADGE_ID, 0, :3, 0, :4, :4)`

	if _, err := executor.ExecContext(ctx, query, userID, badgeID, progress, now, util.NewULID()); err != nil {
		return fmt.Errorf("failed to record badge progress for user %s: %w", userID, err)
	}
	return nil
}
