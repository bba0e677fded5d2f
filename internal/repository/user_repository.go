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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   util.NullTimeToPtr(m.DeletedAt),
	}
}

// CreateUser inserts a new user.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	executor := GetExecutor(ctx, r.db)

	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()

	query := `INSERT INTO users (ID, USERNAME, EMAIL, TOTAL_POINTS, CREATED_AT, UPDATED_AT)
	          VALUES (:1, :2, :3, :4, :5, :6)`

	if _, err := executor.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.TotalPoints, now, now); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their internal ID, nil when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	executor := GetExecutor(ctx, r.db)

	var row models.User
	query := `SELECT ID, USERNAME, EMAIL, TOTAL_POINTS, CREATED_AT, UPDATED_AT, DELETED_AT
	          FROM users WHERE ID = :1 AND DELETED_AT IS NULL`

	if err := executor.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&row), nil
}

// AddPoints bumps the cached points total by delta in one statement.
func (r *sqlxUserRepository) AddPoints(ctx context.Context, userID string, delta int) error {
	executor := GetExecutor(ctx, r.db)

	query := `UPDATE users SET TOTAL_POINTS = TOTAL_POINTS + :1, UPDATED_AT = :2
	          WHERE ID = :3 AND DELETED_AT IS NULL`

	result, err := executor.ExecContext(ctx, query, delta, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to add points for user %s: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("user " + userID)
	}
	return nil
}

// ListByPoints returns the top users ordered by total points descending,
// ties broken by ID ascending so ranks are stable between calls.
func (r *sqlxUserRepository) ListByPoints(ctx context.Context, limit int) ([]*domain.User, error) {
	executor := GetExecutor(ctx, r.db)

	query := `SELECT ID, USERNAME, EMAIL, TOTAL_POINTS, CREATED_AT, UPDATED_AT, DELETED_AT
	          FROM users WHERE DELETED_AT IS NULL
	          ORDER BY TOTAL_POINTS DESC, ID ASC
	          FETCH FIRST :1 ROWS ONLY`

	var rows []models.User
	if err := executor.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list users by points: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, toDomainUser(&rows[i]))
	}
	return users, nil
}

// CountUsers returns the number of active users.
func (r *sqlxUserRepository) CountUsers(ctx context.Context) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	query := `SELECT COUNT(*) FROM users WHERE DELETED_AT IS NULL`
	if err := executor.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// CountUsersWithMorePoints returns how many active users hold strictly more
// points; the caller derives a 1-based rank as count+1.
func (r *sqlxUserRepository) CountUsersWithMorePoints(ctx context.Context, points int) (int, error) {
	executor := GetExecutor(ctx, r.db)

	var total int
	query := `SELECT COUNT(*) FROM users WHERE DELETED_AT IS NULL AND TOTAL_POINTS > :1`
	if err := executor.GetContext(ctx, &total, query, points); err != nil {
		return 0, fmt.Errorf("failed to count users with more points: %w", err)
	}
	return total, nil
}
